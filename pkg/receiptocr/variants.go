package receiptocr

import (
	"log"
	"math"
)

// MultiVariantRecognizer maximizes the odds that at least one preprocessed
// rendition of the image yields clean text. It tries the original under both
// segmentation modes, then 90/180/270 degree rotations under both modes (up to
// 8 candidates), and keeps the single best text by scoreVariantText.
type MultiVariantRecognizer struct {
	engine Engine
}

func NewMultiVariantRecognizer(engine Engine) *MultiVariantRecognizer {
	return &MultiVariantRecognizer{engine: engine}
}

// Recognize runs the candidate search. Candidates run one at a time to bound
// peak CPU and memory on small hosts. Ties keep the first-found candidate, so
// the winner is deterministic regardless of timing.
//
// If every candidate yields empty text the result carries an empty string,
// never an error: downstream parsers treat empty text as "no fields found".
func (r *MultiVariantRecognizer) Recognize(in Input) RecognitionResult {
	if in.IsText() {
		return r.engine.Recognize(in, SegSingleBlock)
	}

	type candidate struct {
		in   Input
		mode SegMode
	}
	cands := []candidate{
		{in, SegSingleBlock},
		{in, SegSparseText},
	}
	if img, err := decodeImage(in.Bytes()); err == nil {
		for _, angle := range []int{90, 180, 270} {
			if b, ok := encodePNG(rotateVariant(img, angle)); ok {
				rin := ImageBytes(b)
				cands = append(cands, candidate{rin, SegSingleBlock}, candidate{rin, SegSparseText})
			}
		}
	} else {
		log.Printf("receiptocr: decode for rotation variants failed, trying original only: %v", err)
	}

	var best RecognitionResult
	bestScore := math.Inf(-1)
	for _, c := range cands {
		res := r.engine.Recognize(c.in, c.mode)
		if sc := scoreVariantText(res.Text); sc > bestScore {
			best = res
			bestScore = sc
		}
	}
	log.Printf("receiptocr: variant search done candidates=%d text=%q", len(cands), snippet(best.Text, 120))
	return best
}
