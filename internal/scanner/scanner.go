// Package scanner decodes product barcodes directly from image bytes.
package scanner

import (
	"bytes"
	"fmt"
	"image"

	// decoders for image formats accepted from sources
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ZXing scans retail barcodes (EAN-8, EAN-13, UPC-A, UPC-E) in images.
type ZXing struct {
	reader gozxing.Reader
}

// NewZXing returns new ZXing scanner.
func NewZXing() *ZXing {
	return &ZXing{
		reader: oned.NewMultiFormatUPCEANReader(nil),
	}
}

// Scan returns the barcode decoded from provided image bytes.
func (z *ZXing) Scan(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("can't decode image: %w", err)
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("can't build binary bitmap: %w", err)
	}

	result, err := z.reader.Decode(bitmap, nil)
	if err != nil {
		return "", fmt.Errorf("can't decode barcode: %w", err)
	}

	return result.GetText(), nil
}
