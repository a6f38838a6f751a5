package processor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/semjacko/product-harvester/internal/platform/models"
)

const promptTemplate = `From the image of a product price tag, extract the product's name, price, quantity, unit of quantity, category and, when printed on the tag, barcode and brand.

Respond with a single JSON object and nothing else, using this schema:
{"name": string, "qty": number, "qty_unit": "l"|"ml"|"kg"|"g"|"pcs", "price": number, "barcode": string, "brand": string, "category": string}

The category must be one of: %s.
Omit "barcode" and "brand" when they are not on the tag.`

func buildPrompt(categories []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(categories, ", "))
}

// rawProduct mirrors models.Product with a loosely typed barcode,
// models occasionally return it as a JSON number instead of a string.
type rawProduct struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"qty"`
	Unit     string  `json:"qty_unit"`
	Price    float64 `json:"price"`
	Barcode  any     `json:"barcode"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
}

// parseProduct decodes raw model output into a validated product.
func parseProduct(rawOutput string) (models.Product, error) {
	var raw rawProduct
	if err := json.Unmarshal([]byte(stripMarkdownFences(rawOutput)), &raw); err != nil {
		return models.Product{}, fmt.Errorf("can't decode model output: %w", err)
	}

	barcode, err := normalizeBarcode(raw.Barcode)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:     raw.Name,
		Quantity: raw.Quantity,
		Unit:     models.QuantityUnit(raw.Unit),
		Price:    raw.Price,
		Barcode:  barcode,
		Brand:    raw.Brand,
		Category: raw.Category,
	}
	if err := product.Validate(); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

// stripMarkdownFences removes a ```json ... ``` wrapper which chat
// models tend to add around JSON output.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalizeBarcode(barcode any) (string, error) {
	switch code := barcode.(type) {
	case nil:
		return "", nil
	case string:
		return code, nil
	case float64:
		if code < 0 || code != float64(int64(code)) {
			return "", fmt.Errorf("%w: %v", models.ErrInvalidBarcode, code)
		}
		return strconv.FormatInt(int64(code), 10), nil
	default:
		return "", fmt.Errorf("%w: %v", models.ErrInvalidBarcode, code)
	}
}

// loadImageData resolves image payload into raw bytes with a MIME type.
// Data URLs are decoded in place, anything else is treated as a file path.
func loadImageData(image models.Image) (string, []byte, error) {
	if strings.HasPrefix(image.Data, "data:") {
		return parseDataURL(image.Data)
	}

	data, err := os.ReadFile(image.Data)
	if err != nil {
		return "", nil, fmt.Errorf("can't read image file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(image.Data))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return mimeType, data, nil
}

func parseDataURL(dataURL string) (string, []byte, error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return "", nil, fmt.Errorf("invalid data URL")
	}

	mimeType := strings.TrimPrefix(header, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("can't decode image content: %w", err)
	}

	return mimeType, data, nil
}
