package receiptocr

// Input is the single value type accepted by the recognition layer. It carries
// either raw image bytes or already-extracted text (used for replay and tests,
// where recognition is a pass-through). The variant is resolved once at the
// engine boundary instead of type-sniffing in every layer.
type Input struct {
	bytes  []byte
	text   string
	isText bool
}

// ImageBytes wraps raw image data (file contents, upload body).
func ImageBytes(b []byte) Input { return Input{bytes: b} }

// RawText wraps text that skips recognition entirely.
func RawText(s string) Input { return Input{text: s, isText: true} }

func (in Input) IsText() bool  { return in.isText }
func (in Input) Text() string  { return in.text }
func (in Input) Bytes() []byte { return in.bytes }
