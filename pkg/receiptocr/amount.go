package receiptocr

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount grammar shared by both dialects. Labeled amounts win, then
// currency-marked ones, then the largest plausible monetary-looking number as
// a last resort.
var (
	amountLabelRE    = regexp.MustCompile(`(?i)\b(?:transfer\s+amount|total\s+amount|amount|amt|total|sent)\b\s*[:=]?\s*(?:₱|php)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	currencyAmountRE = regexp.MustCompile(`(?i)(?:₱|\bphp\b)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	// Thousands-separated numbers like 1,250.00.
	groupedNumberRE = regexp.MustCompile(`\b[1-9][0-9]{0,2}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?\b`)
	// Bare 4-6 digit runs; shorter runs are too often quantities or line items,
	// longer runs are ids and phone numbers.
	bareNumberRE = regexp.MustCompile(`\b[1-9][0-9]{3,5}\b`)
)

var minPlausibleAmount = decimal.NewFromInt(100)

// findAmount locates the transfer/total amount in receipt text.
func findAmount(text string) *decimal.Decimal {
	if m := amountLabelRE.FindStringSubmatch(text); len(m) == 2 {
		if d, ok := parseAmount(m[1]); ok {
			return &d
		}
	}
	if m := currencyAmountRE.FindStringSubmatch(text); len(m) == 2 {
		if d, ok := parseAmount(m[1]); ok {
			return &d
		}
	}
	if d := largestPlausible(groupedNumberRE.FindAllString(text, -1)); d != nil {
		return d
	}
	return largestPlausible(bareNumberRE.FindAllString(text, -1))
}

func largestPlausible(raws []string) *decimal.Decimal {
	var best *decimal.Decimal
	for _, raw := range raws {
		d, ok := parseAmount(raw)
		if !ok || d.LessThan(minPlausibleAmount) {
			continue
		}
		if best == nil || d.GreaterThan(*best) {
			dd := d
			best = &dd
		}
	}
	return best
}

// parseAmount normalizes a matched substring (thousands commas stripped) into
// a positive decimal.
func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}
