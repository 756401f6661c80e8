package receiptocr

import (
	"github.com/otiai10/gosseract/v2"
)

// SegMode hints the engine about the text layout of the image.
type SegMode int

const (
	// SegSingleBlock treats the image as one uniform block of text.
	SegSingleBlock SegMode = iota
	// SegSparseText looks for scattered text in no particular order.
	SegSparseText
)

// RecognitionResult is the raw output of one engine invocation. Confidence is
// on a 0-100 scale and only meaningful when HasConfidence is set (text
// pass-through inputs report none).
type RecognitionResult struct {
	Text          string
	Confidence    float64
	HasConfidence bool
}

// Engine turns an input into text. Implementations must never fail hard: an
// internal recognizer error surfaces as an empty-text result so that a single
// bad variant cannot abort the candidate search.
type Engine interface {
	Recognize(in Input, mode SegMode) RecognitionResult
}

// TesseractEngine recognizes receipt images with a local Tesseract install via
// gosseract. A fresh client is created per call; the engine value itself only
// holds configuration and is safe for concurrent use.
type TesseractEngine struct {
	language string
}

func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{language: "eng"}
}

func (e *TesseractEngine) Recognize(in Input, mode SegMode) RecognitionResult {
	if in.IsText() {
		return RecognitionResult{Text: normalizeText(in.Text())}
	}
	if len(in.Bytes()) == 0 {
		return RecognitionResult{}
	}
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(e.language)
	psm := gosseract.PSM_SINGLE_BLOCK
	if mode == SegSparseText {
		psm = gosseract.PSM_SPARSE_TEXT
	}
	_ = client.SetPageSegMode(psm)
	if err := client.SetImageFromBytes(in.Bytes()); err != nil {
		return RecognitionResult{}
	}
	text, err := client.Text()
	if err != nil {
		return RecognitionResult{}
	}
	res := RecognitionResult{Text: normalizeText(text)}
	// Mean word confidence, same 0-100 scale Tesseract reports per word.
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		sum := 0.0
		for _, b := range boxes {
			sum += b.Confidence
		}
		res.Confidence = sum / float64(len(boxes))
		res.HasConfidence = true
	}
	return res
}
