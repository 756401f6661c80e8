package receiptocr

import (
	"regexp"
	"strings"
)

// BankParser targets bank-transfer confirmations: screenshots from mobile
// banking apps and InstaPay/PESONet slips that carry a bank name, a transfer
// amount and a reference number.
type BankParser struct{}

func (BankParser) Dialect() string { return DialectBank }

// Known local bank and e-wallet name variants as they appear on transfer
// confirmations, mapped to a canonical display name.
var bankNamePatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)\bbdo\b|\bbanco\s+de\s+oro\b`), "BDO"},
	{regexp.MustCompile(`(?i)\bbpi\b|\bbank\s+of\s+the\s+philippine\s+islands\b`), "BPI"},
	{regexp.MustCompile(`(?i)\bmetrobank\b|\bmetro\s+bank\b`), "Metrobank"},
	{regexp.MustCompile(`(?i)\blandbank\b|\bland\s+bank\b`), "Landbank"},
	{regexp.MustCompile(`(?i)\bpnb\b|\bphilippine\s+national\s+bank\b`), "PNB"},
	{regexp.MustCompile(`(?i)\bunionbank\b|\bunion\s+bank\b`), "UnionBank"},
	{regexp.MustCompile(`(?i)\bsecurity\s+bank\b`), "Security Bank"},
	{regexp.MustCompile(`(?i)\bchina\s*bank\b`), "Chinabank"},
	{regexp.MustCompile(`(?i)\brcbc\b`), "RCBC"},
	{regexp.MustCompile(`(?i)\beastwest\b|\beast\s+west\s+bank\b`), "EastWest"},
	{regexp.MustCompile(`(?i)\bgcash\b|\bg-cash\b`), "GCash"},
	{regexp.MustCompile(`(?i)\bpaymaya\b|\bmaya\b`), "Maya"},
}

var (
	bankRefLabelRE = regexp.MustCompile(`(?i)\b(?:ref(?:erence)?|txn|transaction)\b\s*(?:(?:no|number|id)\.?|#)?\s*[:#.]?\s*([A-Za-z0-9][A-Za-z0-9-]{5,24})`)
	// E-wallet and InstaPay trace numbers are long bare digit runs.
	bankRefBareRE = regexp.MustCompile(`\b[0-9]{10,16}\b`)
	hasDigitRE    = regexp.MustCompile(`[0-9]`)
)

func (BankParser) Parse(text string) ParsedFields {
	text = normalizeText(text)
	f := ParsedFields{RawText: text}
	if text == "" {
		return f
	}
	f.SuggestedAmount = findAmount(text)
	if ref := findBankRef(text); ref != "" {
		f.SuggestedRef = &ref
	}
	if dt, ambiguous, ok := findDateTime(text); ok {
		f.SuggestedDateTime = &dt
		f.DateAmbiguous = ambiguous
	}
	if bank := findBankName(text); bank != "" {
		f.SuggestedBank = &bank
	}
	return f
}

func findBankName(text string) string {
	for _, p := range bankNamePatterns {
		if p.re.MatchString(text) {
			return p.name
		}
	}
	return ""
}

// findBankRef prefers a labeled reference, then falls back to bank-style bare
// trace numbers. References must carry at least one digit; a pure word after a
// "ref" label is almost always OCR noise.
func findBankRef(text string) string {
	if m := bankRefLabelRE.FindStringSubmatch(text); len(m) == 2 && hasDigitRE.MatchString(m[1]) {
		return strings.ToUpper(m[1])
	}
	if m := bankRefBareRE.FindString(text); m != "" {
		return m
	}
	return ""
}
