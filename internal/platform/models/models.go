package models

import (
	"fmt"
	"strings"
	"unicode"
)

// QuantityUnit is unit of product's quantity.
type QuantityUnit string

// Quantity units extracted from price tags.
const (
	UnitLiter      QuantityUnit = "l"
	UnitMilliliter QuantityUnit = "ml"
	UnitKilogram   QuantityUnit = "kg"
	UnitGram       QuantityUnit = "g"
	UnitPiece      QuantityUnit = "pcs"
)

// IsValid reports whether u is one of the known quantity units.
func (u QuantityUnit) IsValid() bool {
	switch u {
	case UnitLiter, UnitMilliliter, UnitKilogram, UnitGram, UnitPiece:
		return true
	}
	return false
}

// Product is product data extracted from one price tag image.
type Product struct {
	Name     string       `json:"name"`
	Quantity float64      `json:"qty"`
	Unit     QuantityUnit `json:"qty_unit"`
	Price    float64      `json:"price"`
	Barcode  string       `json:"barcode,omitempty"`
	Brand    string       `json:"brand,omitempty"`
	Category string       `json:"category"`
}

// Validate checks product's field constraints.
// Category membership in the catalog is checked at import time, not here.
func (p Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, p.Quantity)
	}
	if !p.Unit.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, p.Unit)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, p.Price)
	}
	if !isNumericString(p.Barcode) {
		return fmt.Errorf("%w: %q", ErrInvalidBarcode, p.Barcode)
	}
	if p.Category == "" {
		return ErrEmptyCategory
	}
	return nil
}

// isNumericString reports whether s contains digits only.
// Empty string is allowed, it normalizes to "no barcode".
func isNumericString(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Image is one unit of harvesting work. Data holds either a file path
// or a data URL with base64 encoded content, depending on the source.
type Image struct {
	ID   string
	Data string
	Meta map[string]string
}

// ExtractionInput is prepared model input for one image.
type ExtractionInput struct {
	ImageID  string
	MIMEType string
	Data     []byte
	Prompt   string
}

// Stage is conceptual step of per-image processing.
type Stage string

// Processing stages used for failure attribution.
const (
	StageInputPreparation Stage = "input_preparation"
	StageModelInvocation  Stage = "model_invocation"
	StageOutputParsing    Stage = "output_parsing"
	StageUnknown          Stage = "unknown"
)

// ProcessingError is per-image extraction failure tagged by the stage it originated from.
type ProcessingError struct {
	Stage   Stage
	Message string
	Detail  string
}

// Error returns failure description with its stage.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Message, e.Stage, e.Detail)
}

// Outcome is result of attempting extraction for one image.
// Every outcome carries the originating image ID.
type Outcome struct {
	ImageID         string
	Product         Product
	BarcodeVerified bool
	Err             *ProcessingError
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// HarvestError is normalized failure record surfaced to error trackers.
type HarvestError struct {
	Message string
	Context map[string]any
}

// ImportedProduct is product with provenance required by importers.
type ImportedProduct struct {
	Product
	SourceImageID   string `json:"source_image"`
	BarcodeVerified bool   `json:"barcode_verified"`
}

// String returns short human-readable product description.
func (p ImportedProduct) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %v%s %.2f", p.Name, p.Quantity, p.Unit, p.Price)
	if p.Barcode != "" {
		fmt.Fprintf(&sb, " [%s]", p.Barcode)
	}
	fmt.Fprintf(&sb, " (%s)", p.SourceImageID)
	return sb.String()
}
