package scanner_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/semjacko/product-harvester/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitScan(t *testing.T) {
	const barcode = "8586013438303"

	scan := scanner.NewZXing()

	result, err := scan.Scan(barcodeImage(t, barcode))

	require.NoError(t, err, "should scan barcode")
	assert.Equal(t, barcode, result, "should decode correct barcode")
}

func TestUnitScanNoBarcode(t *testing.T) {
	scan := scanner.NewZXing()

	// blank image, nothing to decode
	matrix, err := gozxing.NewBitMatrix(200, 80)
	require.NoError(t, err, "can't create bit matrix")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix), "can't encode image")

	_, err = scan.Scan(buf.Bytes())
	assert.Error(t, err, "should return error for image without barcode")
}

func TestUnitScanInvalidImage(t *testing.T) {
	scan := scanner.NewZXing()

	_, err := scan.Scan([]byte("not an image"))
	assert.Error(t, err, "should return error for invalid image bytes")
}

// barcodeImage returns PNG bytes with provided barcode encoded as EAN-13.
func barcodeImage(t *testing.T, barcode string) []byte {
	t.Helper()

	matrix, err := oned.NewEAN13Writer().Encode(barcode, gozxing.BarcodeFormat_EAN_13, 200, 80, nil)
	require.NoError(t, err, "can't encode barcode")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix), "can't encode image")

	return buf.Bytes()
}
