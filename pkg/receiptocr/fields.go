package receiptocr

import "github.com/shopspring/decimal"

// Dialect names for the two receipt styles.
const (
	DialectBank = "bank"
	DialectCash = "cash"
)

// ParsedFields is the field-suggestion record shared by both dialects. Every
// field is independently optional: a parser may fill some and leave others nil,
// and no field implies another. RawText keeps the exact text that produced the
// parse for audit and debugging.
type ParsedFields struct {
	RawText           string           `json:"raw_text"`
	SuggestedAmount   *decimal.Decimal `json:"suggested_amount"`
	SuggestedRef      *string          `json:"suggested_ref"`
	SuggestedDateTime *string          `json:"suggested_date_time"`
	SuggestedBank     *string          `json:"suggested_bank"`
	// DateAmbiguous is set when a numeric date had both components <= 12 and
	// the month-first guess was applied. Callers may surface this instead of
	// trusting the guess.
	DateAmbiguous bool `json:"date_ambiguous,omitempty"`
}

// FieldParser is one receipt-text dialect. Parsers are pure functions of their
// text input: no I/O, no hidden state, identical text yields identical fields.
type FieldParser interface {
	Dialect() string
	Parse(text string) ParsedFields
}
