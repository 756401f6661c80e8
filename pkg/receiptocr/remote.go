package receiptocr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RemoteResult is the contract of the server-hosted high-accuracy recognizer:
// text plus a confidence on the same 0-100 scale the local engine uses.
type RemoteResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	WordCount  int     `json:"word_count"`
}

// RemoteRecognizer is the one place this package crosses a process boundary.
// Implementations may fail with a regular error; the orchestrator catches it.
type RemoteRecognizer interface {
	Recognize(ctx context.Context, image []byte) (RemoteResult, error)
}

const defaultRemoteTimeout = 8 * time.Second

// GeminiRecognizer transcribes receipt images with the Gemini vision API.
type GeminiRecognizer struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewGeminiRecognizer(apiKey, model string) *GeminiRecognizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiRecognizer{apiKey: apiKey, model: model, timeout: defaultRemoteTimeout}
}

const transcribePrompt = "Transcribe every piece of text visible in this payment receipt image. " +
	"Return the raw text only, preserving numbers and punctuation exactly. No commentary."

func (g *GeminiRecognizer) Recognize(ctx context.Context, image []byte) (RemoteResult, error) {
	// The remote call has no caller-side timeout of its own; bound it here so
	// a hung request degrades like any other fallback failure.
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return RemoteResult{}, fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0)
	resp, err := model.GenerateContent(ctx,
		genai.Text(transcribePrompt),
		genai.Blob{MIMEType: http.DetectContentType(image), Data: image},
	)
	if err != nil {
		return RemoteResult{}, fmt.Errorf("gemini recognize: %w", err)
	}
	text := normalizeText(responseText(resp))
	if text == "" {
		return RemoteResult{}, errors.New("gemini returned empty transcript")
	}
	return RemoteResult{
		Text:       text,
		Confidence: estimateTranscriptConfidence(text),
		WordCount:  len(strings.Fields(text)),
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
				sb.WriteString(" ")
			}
		}
	}
	return sb.String()
}

// estimateTranscriptConfidence maps transcript quality onto the 0-100 scale.
// Gemini does not self-report a numeric confidence, so this derives one from
// word count and character mix; a clean vision transcript starts well above
// the local fallback threshold.
func estimateTranscriptConfidence(text string) float64 {
	conf := 70.0
	words := len(strings.Fields(text))
	if words >= 10 {
		conf += 10
	}
	if words >= 30 {
		conf += 5
	}
	if countDigits(text) > 0 {
		conf += 10
	}
	if conf > 95 {
		conf = 95
	}
	return conf
}
