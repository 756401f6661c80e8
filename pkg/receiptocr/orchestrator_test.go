package receiptocr

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// stubEngine returns one fixed result for every image candidate and behaves as
// a pass-through for text inputs, like the real engine does.
type stubEngine struct {
	res RecognitionResult
}

func (e stubEngine) Recognize(in Input, mode SegMode) RecognitionResult {
	if in.IsText() {
		return RecognitionResult{Text: normalizeText(in.Text())}
	}
	return e.res
}

type stubRemote struct {
	res   RemoteResult
	err   error
	calls int
}

func (r *stubRemote) Recognize(ctx context.Context, image []byte) (RemoteResult, error) {
	r.calls++
	return r.res, r.err
}

const bankReceiptText = "Amount: PHP 1,250.00 Ref: ABC123456 Date: 2025-03-28 14:30"

func TestSuggestLocalConfidenceHighEnough(t *testing.T) {
	remote := &stubRemote{}
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 85, HasConfidence: true}}, remote)

	s := o.Suggest(context.Background(), ImageBytes([]byte("not-an-image")), false)
	if remote.calls != 0 {
		t.Fatalf("confident local result must not trigger the fallback")
	}
	if s.Source != SourceLocal || s.Confidence != 85 {
		t.Fatalf("expected local source at confidence 85, got %q %v", s.Source, s.Confidence)
	}
	if s.Winner.SuggestedAmount == nil || !s.Winner.SuggestedAmount.Equal(decimal.NewFromInt(1250)) {
		t.Fatalf("expected winning amount 1250, got %v", s.Winner.SuggestedAmount)
	}
	if s.WinnerDialect != DialectBank {
		t.Fatalf("expected bank winner, got %q", s.WinnerDialect)
	}
	if s.ShouldManual {
		t.Fatalf("clean confident parse should not be flagged for manual review")
	}
}

func TestSuggestThresholdBoundary(t *testing.T) {
	// Exactly at the threshold stays local; strictly below falls back.
	remote := &stubRemote{res: RemoteResult{Text: bankReceiptText, Confidence: 90}}

	o := NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 60, HasConfidence: true}}, remote)
	if s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false); s.Source != SourceLocal || remote.calls != 0 {
		t.Fatalf("confidence equal to the threshold must stay local, got %q calls=%d", s.Source, remote.calls)
	}

	o = NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 59.9, HasConfidence: true}}, remote)
	if s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false); s.Source != SourceRemote || remote.calls != 1 {
		t.Fatalf("confidence below the threshold must fall back, got %q calls=%d", s.Source, remote.calls)
	}
}

func TestSuggestRemoteResultReplacesLocal(t *testing.T) {
	remote := &stubRemote{res: RemoteResult{
		Text:       "Official Receipt No. 000123456 Total PHP 500.00",
		Confidence: 88,
	}}
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: "garbled", Confidence: 20, HasConfidence: true}}, remote)

	s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false)
	if s.Source != SourceRemote || s.Confidence != 88 {
		t.Fatalf("expected remote source at confidence 88, got %q %v", s.Source, s.Confidence)
	}
	if s.WinnerDialect != DialectCash {
		t.Fatalf("expected cash winner from OR text, got %q", s.WinnerDialect)
	}
	if s.Winner.SuggestedRef == nil || *s.Winner.SuggestedRef != "000123456" {
		t.Fatalf("expected remote ref 000123456, got %v", s.Winner.SuggestedRef)
	}
	if s.FallbackError != "" {
		t.Fatalf("successful fallback must not record an error: %q", s.FallbackError)
	}
}

func TestSuggestRemoteFailureKeepsLocal(t *testing.T) {
	remote := &stubRemote{err: errors.New("quota exceeded")}
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 20, HasConfidence: true}}, remote)

	s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false)
	if s.Source != SourceLocal {
		t.Fatalf("failed fallback must keep the local result, got %q", s.Source)
	}
	if s.FallbackError != "quota exceeded" {
		t.Fatalf("expected recorded fallback error, got %q", s.FallbackError)
	}
	if s.Winner.SuggestedAmount == nil {
		t.Fatalf("local fields must survive a failed fallback")
	}
}

func TestSuggestForceRemote(t *testing.T) {
	remote := &stubRemote{res: RemoteResult{Text: bankReceiptText, Confidence: 92}}
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 99, HasConfidence: true}}, remote)

	s := o.Suggest(context.Background(), ImageBytes([]byte("img")), true)
	if remote.calls != 1 || s.Source != SourceRemote {
		t.Fatalf("force flag must invoke the remote even at high confidence, got %q calls=%d", s.Source, remote.calls)
	}
}

func TestSuggestRemoteDisabled(t *testing.T) {
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: "x", Confidence: 5, HasConfidence: true}}, nil)
	s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false)
	if s.Source != SourceLocal || s.FallbackError != ErrRemoteDisabled.Error() {
		t.Fatalf("nil remote should degrade with the disabled sentinel, got %q %q", s.Source, s.FallbackError)
	}
}

func TestSuggestTextInputNeverGoesRemote(t *testing.T) {
	remote := &stubRemote{res: RemoteResult{Text: "should not be used", Confidence: 90}}
	o := NewOrchestrator(stubEngine{}, remote)

	// Pass-through text carries no confidence, so the threshold never trips.
	s := o.Suggest(context.Background(), RawText(bankReceiptText), false)
	if remote.calls != 0 || s.Source != SourceLocal {
		t.Fatalf("text input must stay local, got %q calls=%d", s.Source, remote.calls)
	}
	if s.Winner.SuggestedRef == nil || *s.Winner.SuggestedRef != "ABC123456" {
		t.Fatalf("text input should still be parsed, got %v", s.Winner.SuggestedRef)
	}

	// Even when forced, there is no image to send.
	s = o.Suggest(context.Background(), RawText(bankReceiptText), true)
	if remote.calls != 0 || s.FallbackError != ErrRemoteDisabled.Error() {
		t.Fatalf("forced remote on text input must report disabled, got calls=%d err=%q", remote.calls, s.FallbackError)
	}
}

func TestSuggestEmptyTextDegradesGracefully(t *testing.T) {
	o := NewOrchestrator(stubEngine{}, nil)
	s := o.Suggest(context.Background(), RawText(""), false)
	if s.Winner.SuggestedAmount != nil || s.Winner.SuggestedRef != nil ||
		s.Winner.SuggestedDateTime != nil || s.Winner.SuggestedBank != nil {
		t.Fatalf("empty text must yield all-nil fields: %+v", s.Winner)
	}
	if !s.ShouldManual {
		t.Fatalf("empty text must be flagged for manual review")
	}
}

func TestSetThreshold(t *testing.T) {
	remote := &stubRemote{res: RemoteResult{Text: bankReceiptText, Confidence: 90}}
	o := NewOrchestrator(stubEngine{RecognitionResult{Text: bankReceiptText, Confidence: 45, HasConfidence: true}}, remote)
	o.SetThreshold(40)

	if s := o.Suggest(context.Background(), ImageBytes([]byte("img")), false); s.Source != SourceLocal || remote.calls != 0 {
		t.Fatalf("lowered threshold should keep confidence 45 local, got %q calls=%d", s.Source, remote.calls)
	}
}
