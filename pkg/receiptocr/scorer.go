package receiptocr

// manualReviewFloor is the scoreReviewText value below which the suggestion is
// not trusted to prefill anything.
const manualReviewFloor = 30

// scoreSuggestion counts populated fields, weighing amount and reference
// higher: they are what staff actually verify a payment against.
func scoreSuggestion(f ParsedFields) int {
	s := 0
	if f.SuggestedAmount != nil {
		s += 3
	}
	if f.SuggestedRef != nil {
		s += 3
	}
	if f.SuggestedDateTime != nil {
		s++
	}
	if f.SuggestedBank != nil {
		s++
	}
	return s
}

// pickWinner returns the more complete of the two dialect parses. The bank
// parse wins ties. The winner is always one of the two inputs wholesale, never
// a merge.
func pickWinner(bank, cash ParsedFields) (ParsedFields, string) {
	if scoreSuggestion(bank) >= scoreSuggestion(cash) {
		return bank, DialectBank
	}
	return cash, DialectCash
}

// hasCoreField reports whether a parse found at least one of amount, ref or
// date-time. A bank-name hit alone does not count.
func hasCoreField(f ParsedFields) bool {
	return f.SuggestedAmount != nil || f.SuggestedRef != nil || f.SuggestedDateTime != nil
}

// needsManualReview gates the suggestion: too little receipt-like text, or no
// core field from either dialect, and the UI should fall back to blank manual
// entry.
func needsManualReview(rawText string, bank, cash ParsedFields) bool {
	if scoreReviewText(rawText) < manualReviewFloor {
		return true
	}
	return !hasCoreField(bank) && !hasCoreField(cash)
}
