package receiptocr

import (
	"regexp"
	"strings"
)

// CashParser targets cash payments recorded on printed official receipts and
// provisional receipt slips. Same amount and date/time grammar as the bank
// dialect; the reference grammar looks for OR-number labels instead, and there
// is never a bank to extract.
type CashParser struct{}

func (CashParser) Dialect() string { return DialectCash }

var (
	cashRefLabelRE = regexp.MustCompile(`(?i)\b(?:official\s+receipt|receipt)\s*(?:(?:no|number)\.?|#)?\s*[:#.]?\s*([0-9A-Za-z][0-9A-Za-z-]{3,19})`)
	// "O.R." / "OR#" style labels are matched case-sensitively: a lowercase
	// bare "or" is just the conjunction.
	orRefLabelRE  = regexp.MustCompile(`\bO\.?R\.?\s*(?:(?:[Nn]o|[Nn]umber)\.?|#)?\s*[:#.]?\s*([0-9][0-9A-Za-z-]{3,19})`)
	cashRefBareRE = regexp.MustCompile(`\b[0-9]{6,20}\b`)
)

func (CashParser) Parse(text string) ParsedFields {
	text = normalizeText(text)
	f := ParsedFields{RawText: text}
	if text == "" {
		return f
	}
	f.SuggestedAmount = findAmount(text)
	if ref := findCashRef(text); ref != "" {
		f.SuggestedRef = &ref
	}
	if dt, ambiguous, ok := findDateTime(text); ok {
		f.SuggestedDateTime = &dt
		f.DateAmbiguous = ambiguous
	}
	// Cash receipts carry no bank; SuggestedBank stays nil.
	return f
}

// findCashRef prefers labeled OR numbers, then any bare 6-20 digit run.
func findCashRef(text string) string {
	if m := cashRefLabelRE.FindStringSubmatch(text); len(m) == 2 && hasDigitRE.MatchString(m[1]) {
		return strings.ToUpper(m[1])
	}
	if m := orRefLabelRE.FindStringSubmatch(text); len(m) == 2 {
		return strings.ToUpper(m[1])
	}
	if m := cashRefBareRE.FindString(text); m != "" {
		return m
	}
	return ""
}
