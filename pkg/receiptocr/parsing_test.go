package receiptocr

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBankParserTransferConfirmation(t *testing.T) {
	text := "Amount: PHP 1,250.00 Ref: ABC123456 Date: 2025-03-28 14:30"
	f := BankParser{}.Parse(text)
	if f.SuggestedAmount == nil || !f.SuggestedAmount.Equal(decimal.NewFromInt(1250)) {
		t.Fatalf("expected amount 1250 got %v", f.SuggestedAmount)
	}
	if f.SuggestedRef == nil || *f.SuggestedRef != "ABC123456" {
		t.Fatalf("expected ref ABC123456 got %v", f.SuggestedRef)
	}
	if f.SuggestedDateTime == nil || *f.SuggestedDateTime != "2025-03-28T14:30" {
		t.Fatalf("expected 2025-03-28T14:30 got %v", f.SuggestedDateTime)
	}
}

func TestCashParserOfficialReceipt(t *testing.T) {
	text := "Official Receipt No. 000123456 Total PHP 500.00 March 5, 2025 3:45 PM"
	f := CashParser{}.Parse(text)
	if f.SuggestedAmount == nil || !f.SuggestedAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected amount 500 got %v", f.SuggestedAmount)
	}
	if f.SuggestedRef == nil || *f.SuggestedRef != "000123456" {
		t.Fatalf("expected ref 000123456 got %v", f.SuggestedRef)
	}
	if f.SuggestedDateTime == nil || *f.SuggestedDateTime != "2025-03-05T15:45" {
		t.Fatalf("expected 2025-03-05T15:45 got %v", f.SuggestedDateTime)
	}
	if f.SuggestedBank != nil {
		t.Fatalf("cash parse must never carry a bank, got %v", *f.SuggestedBank)
	}
}

func TestParsersEmptyText(t *testing.T) {
	for _, p := range []FieldParser{BankParser{}, CashParser{}} {
		f := p.Parse("")
		if f.SuggestedAmount != nil || f.SuggestedRef != nil || f.SuggestedDateTime != nil || f.SuggestedBank != nil {
			t.Fatalf("%s parse of empty text produced fields: %+v", p.Dialect(), f)
		}
		if scoreSuggestion(f) != 0 {
			t.Fatalf("%s empty parse should score 0, got %d", p.Dialect(), scoreSuggestion(f))
		}
	}
}

func TestParsersAreIdempotent(t *testing.T) {
	text := "GCash Sent PHP 2,000.00 Ref No. 9012345678901 Apr 2, 2025 9:05 AM"
	for _, p := range []FieldParser{BankParser{}, CashParser{}} {
		a := p.Parse(text)
		b := p.Parse(text)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s parse not idempotent:\n%+v\n%+v", p.Dialect(), a, b)
		}
		// Round-trip: the recorded raw text reproduces the same parse.
		c := p.Parse(a.RawText)
		if !reflect.DeepEqual(a, c) {
			t.Fatalf("%s raw-text round trip diverged:\n%+v\n%+v", p.Dialect(), a, c)
		}
	}
}

func TestBankParserBankNameVariants(t *testing.T) {
	cases := map[string]string{
		"Transfer via BDO Online Banking":    "BDO",
		"banco de oro transfer confirmation": "BDO",
		"InstaPay from UnionBank account":    "UnionBank",
		"GCash Express Send":                 "GCash",
		"Security Bank mobile app":           "Security Bank",
	}
	for text, want := range cases {
		f := BankParser{}.Parse(text)
		if f.SuggestedBank == nil || *f.SuggestedBank != want {
			t.Fatalf("text %q: expected bank %q got %v", text, want, f.SuggestedBank)
		}
	}
}

func TestBankParserBareTraceRef(t *testing.T) {
	f := BankParser{}.Parse("InstaPay transfer PHP 750.00 trace 123456789012")
	if f.SuggestedRef == nil || *f.SuggestedRef != "123456789012" {
		t.Fatalf("expected bare trace ref, got %v", f.SuggestedRef)
	}
}

func TestCashParserORLabelVariants(t *testing.T) {
	cases := map[string]string{
		"O.R. No. 445566 Amount PHP 300.00": "445566",
		"OR# 20250012 Total ₱ 1,000.00":     "20250012",
		"Receipt No: 778899 PHP 150.00":     "778899",
	}
	for text, want := range cases {
		f := CashParser{}.Parse(text)
		if f.SuggestedRef == nil || *f.SuggestedRef != want {
			t.Fatalf("text %q: expected ref %q got %v", text, want, f.SuggestedRef)
		}
	}
}

func TestCashParserBareDigitFallback(t *testing.T) {
	f := CashParser{}.Parse("cash payment 20250311999 received amount php 450.00")
	if f.SuggestedRef == nil || *f.SuggestedRef != "20250311999" {
		t.Fatalf("expected bare digit ref fallback, got %v", f.SuggestedRef)
	}
}
