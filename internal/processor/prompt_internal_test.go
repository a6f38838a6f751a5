package processor

import (
	"testing"

	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitParseProduct(t *testing.T) {
	tests := map[string]struct {
		rawOutput   string
		wantProduct models.Product
		wantErr     bool
	}{
		"plain json": {
			rawOutput: `{"name":"Banana","qty":1,"qty_unit":"kg","price":3.45,"barcode":"123","category":"jedlo"}`,
			wantProduct: models.Product{
				Name: "Banana", Quantity: 1, Unit: models.UnitKilogram, Price: 3.45, Barcode: "123", Category: "jedlo",
			},
		},
		"fenced json": {
			rawOutput: "```json\n{\"name\":\"Milk\",\"qty\":500,\"qty_unit\":\"ml\",\"price\":0.99,\"category\":\"voda\"}\n```",
			wantProduct: models.Product{
				Name: "Milk", Quantity: 500, Unit: models.UnitMilliliter, Price: 0.99, Category: "voda",
			},
		},
		"numeric barcode": {
			rawOutput: `{"name":"Bread","qty":3,"qty_unit":"pcs","price":2.5,"barcode":456,"category":"jedlo"}`,
			wantProduct: models.Product{
				Name: "Bread", Quantity: 3, Unit: models.UnitPiece, Price: 2.5, Barcode: "456", Category: "jedlo",
			},
		},
		"invalid json": {
			rawOutput: "{wat",
			wantErr:   true,
		},
		"incomplete product": {
			rawOutput: `{"name":"Banana"}`,
			wantErr:   true,
		},
		"fractional barcode": {
			rawOutput: `{"name":"Bread","qty":3,"qty_unit":"pcs","price":2.5,"barcode":4.5,"category":"jedlo"}`,
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			product, err := parseProduct(tt.rawOutput)
			if tt.wantErr {
				require.Error(t, err, "should return parsing error")
				return
			}
			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantProduct, product)
		})
	}
}

func TestUnitParseDataURL(t *testing.T) {
	mimeType, data, err := parseDataURL("data:image/png;base64,aGVsbG8=")

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("hello"), data)
}

func TestUnitParseDataURLInvalid(t *testing.T) {
	_, _, err := parseDataURL("data:image/png;base64")
	require.Error(t, err, "should return error about missing payload")

	_, _, err = parseDataURL("data:image/png;base64,%%%")
	require.Error(t, err, "should return error about invalid base64 content")
}

func TestUnitBuildPrompt(t *testing.T) {
	prompt := buildPrompt([]string{"voda", "jedlo"})

	assert.Contains(t, prompt, "voda, jedlo", "prompt should list category vocabulary")
	assert.Contains(t, prompt, `"qty_unit"`, "prompt should carry format instructions")
}
