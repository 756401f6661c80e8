package receiptocr

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// decodeImage parses raw upload bytes for variant synthesis. EXIF orientation
// is honored so the synthesized rotations start from the displayed orientation.
func decodeImage(b []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
}

// rotateVariant redraws the image at the given angle with a mild contrast
// boost. Receipt photos are often sideways or upside down; the boost helps
// thermal-paper text survive the redraw.
func rotateVariant(img image.Image, angle int) image.Image {
	var out image.Image
	switch angle {
	case 90:
		out = imaging.Rotate90(img)
	case 180:
		out = imaging.Rotate180(img)
	case 270:
		out = imaging.Rotate270(img)
	default:
		out = img
	}
	return imaging.AdjustContrast(out, 12)
}

// encodePNG re-encodes a synthesized variant for the recognition engine.
func encodePNG(img image.Image) ([]byte, bool) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
