// Package processor turns batches of price tag images into product
// extraction outcomes, one outcome per image. Per-image failures are
// captured and tagged with the stage they originated from, they never
// escape the processor.
package processor

import (
	"context"
	"fmt"

	"github.com/semjacko/product-harvester/internal/platform/models"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Extractor --filename extractor.go
//go:generate mockery --name BarcodeScanner --filename barcodescanner.go

// Extractor invokes the vision model with one prepared input and
// returns its raw text output.
type Extractor interface {
	Extract(ctx context.Context, input models.ExtractionInput) (string, error)
}

// BarcodeScanner decodes a barcode directly from image bytes.
type BarcodeScanner interface {
	Scan(imageData []byte) (string, error)
}

// Option is custom configuration of PriceTagProcessor.
type Option func(p *PriceTagProcessor)

// PriceTagProcessor extracts product data from price tag images with
// bounded concurrency.
type PriceTagProcessor struct {
	extractor      Extractor
	scanner        BarcodeScanner
	prompt         string
	maxConcurrency int
}

// NewPriceTagProcessor returns new PriceTagProcessor. Extracted
// products must use a category from the provided vocabulary.
func NewPriceTagProcessor(extractor Extractor, categories []string, ops ...Option) *PriceTagProcessor {
	proc := &PriceTagProcessor{
		extractor:      extractor,
		prompt:         buildPrompt(categories),
		maxConcurrency: 4,
	}

	for _, op := range ops {
		op(proc)
	}

	return proc
}

// Process extracts product data from every image in the batch.
// It always returns exactly one outcome per input image, in input
// order; a failing image does not cancel in-flight work on the others.
// The error return is reserved for systemic failures of the whole
// batch and is nil for any mix of per-image results.
func (p *PriceTagProcessor) Process(ctx context.Context, images []models.Image) ([]models.Outcome, error) {
	outcomes := make([]models.Outcome, len(images))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(p.maxConcurrency)
	for ix := range images {
		grp.Go(func() error {
			outcomes[ix] = p.processImage(grpCtx, images[ix])
			return nil
		})
	}
	_ = grp.Wait()

	p.enrichBarcodes(images, outcomes)

	return outcomes, nil
}

// processImage runs the three extraction stages for one image. The
// returned outcome's failure is tagged with the stage it came from;
// a panic from any collaborator is unattributable and tagged unknown.
func (p *PriceTagProcessor) processImage(ctx context.Context, image models.Image) (outcome models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = failedOutcome(image, models.StageUnknown, "image processing failed", fmt.Sprintf("%v", r))
		}
	}()

	input, err := p.prepareInput(image)
	if err != nil {
		return failedOutcome(image, models.StageInputPreparation, "failed to prepare image input", err.Error())
	}

	rawOutput, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return failedOutcome(image, models.StageModelInvocation, "failed to invoke extraction model", err.Error())
	}

	product, err := parseProduct(rawOutput)
	if err != nil {
		return failedOutcome(image, models.StageOutputParsing, "invalid extracted product data", err.Error())
	}

	return models.Outcome{ImageID: image.ID, Product: product}
}

// prepareInput loads image content and attaches the extraction prompt.
func (p *PriceTagProcessor) prepareInput(image models.Image) (models.ExtractionInput, error) {
	mimeType, data, err := loadImageData(image)
	if err != nil {
		return models.ExtractionInput{}, err
	}

	return models.ExtractionInput{
		ImageID:  image.ID,
		MIMEType: mimeType,
		Data:     data,
		Prompt:   p.prompt,
	}, nil
}

// enrichBarcodes attempts to decode a barcode from image bytes for
// every successful outcome. A successful scan overwrites the
// model-derived barcode and marks it verified; scan failures only
// leave the barcode unverified, they never fail the outcome.
func (p *PriceTagProcessor) enrichBarcodes(images []models.Image, outcomes []models.Outcome) {
	if p.scanner == nil {
		return
	}

	for ix := range outcomes {
		if outcomes[ix].Failed() {
			continue
		}
		_, data, err := loadImageData(images[ix])
		if err != nil {
			continue
		}
		barcode, err := p.scanner.Scan(data)
		if err != nil || barcode == "" {
			continue
		}
		outcomes[ix].Product.Barcode = barcode
		outcomes[ix].BarcodeVerified = true
	}
}

func failedOutcome(image models.Image, stage models.Stage, message string, detail string) models.Outcome {
	return models.Outcome{
		ImageID: image.ID,
		Err: &models.ProcessingError{
			Stage:   stage,
			Message: message,
			Detail:  detail,
		},
	}
}

// WithBarcodeScanner sets processor's barcode scanning capability.
func WithBarcodeScanner(scanner BarcodeScanner) Option {
	return func(p *PriceTagProcessor) {
		p.scanner = scanner
	}
}

// WithMaxConcurrency sets processor's concurrency ceiling.
func WithMaxConcurrency(maxConcurrency int) Option {
	return func(p *PriceTagProcessor) {
		if maxConcurrency > 0 {
			p.maxConcurrency = maxConcurrency
		}
	}
}
