package receiptocr

import (
	"context"
	"log"
)

// Suggestion is the top-level pipeline output. Winner always equals either
// Bank or Cash wholesale (WinnerDialect says which), never a merge of the two.
// FallbackError is informational: the pipeline never surfaces a hard failure,
// the worst case is an all-nil suggestion with ShouldManual set.
type Suggestion struct {
	RawText       string       `json:"raw_text"`
	Confidence    float64      `json:"confidence"`
	Bank          ParsedFields `json:"bank"`
	Cash          ParsedFields `json:"cash"`
	Winner        ParsedFields `json:"winner"`
	WinnerDialect string       `json:"winner_dialect"`
	ShouldManual  bool         `json:"should_manual"`
	Source        string       `json:"source"`
	FallbackError string       `json:"fallback_error,omitempty"`
}

const (
	SourceLocal  = "local"
	SourceRemote = "remote"

	// DefaultConfidenceThreshold is the local confidence below which the
	// remote fallback is attempted.
	DefaultConfidenceThreshold = 60.0
)

// Orchestrator runs the hybrid local-first pipeline: multi-variant local
// recognition, both dialect parses, winner selection, and an optional remote
// fallback when local confidence is too low.
type Orchestrator struct {
	recognizer *MultiVariantRecognizer
	remote     RemoteRecognizer // nil disables the fallback path
	bank       FieldParser
	cash       FieldParser
	threshold  float64
}

func NewOrchestrator(engine Engine, remote RemoteRecognizer) *Orchestrator {
	return &Orchestrator{
		recognizer: NewMultiVariantRecognizer(engine),
		remote:     remote,
		bank:       BankParser{},
		cash:       CashParser{},
		threshold:  DefaultConfidenceThreshold,
	}
}

// SetThreshold overrides the fallback threshold (0-100).
func (o *Orchestrator) SetThreshold(v float64) { o.threshold = v }

// shouldFallback is strict: a confidence equal to the threshold stays local.
// An engine that reports no confidence is treated as adequate.
func (o *Orchestrator) shouldFallback(res RecognitionResult) bool {
	return res.HasConfidence && res.Confidence < o.threshold
}

// Suggest produces field suggestions for one proof-of-payment input. It never
// returns an error: recognition failures degrade to empty text and remote
// failures degrade to the local result with FallbackError attached.
func (o *Orchestrator) Suggest(ctx context.Context, in Input, forceRemote bool) Suggestion {
	local := o.recognizer.Recognize(in)
	s := o.assemble(local.Text, local.Confidence, SourceLocal)

	if !forceRemote && !o.shouldFallback(local) {
		return s
	}
	if o.remote == nil || in.IsText() {
		s.FallbackError = ErrRemoteDisabled.Error()
		return s
	}
	remote, err := o.remote.Recognize(ctx, in.Bytes())
	if err != nil {
		// A low-confidence local suggestion beats no suggestion.
		log.Printf("receiptocr: remote fallback failed, keeping local result: %v", err)
		s.FallbackError = err.Error()
		return s
	}
	return o.assemble(remote.Text, remote.Confidence, SourceRemote)
}

func (o *Orchestrator) assemble(text string, confidence float64, source string) Suggestion {
	text = normalizeText(text)
	bank := o.bank.Parse(text)
	cash := o.cash.Parse(text)
	winner, dialect := pickWinner(bank, cash)
	return Suggestion{
		RawText:       text,
		Confidence:    confidence,
		Bank:          bank,
		Cash:          cash,
		Winner:        winner,
		WinnerDialect: dialect,
		ShouldManual:  needsManualReview(text, bank, cash),
		Source:        source,
	}
}
