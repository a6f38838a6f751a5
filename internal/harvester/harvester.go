// Package harvester drives end-to-end harvest runs: it pulls price tag
// images from a source in fixed-size batches, extracts product data
// from each batch, and forwards successes to an importer. The
// harvester is the fault containment boundary of a run, every failure
// is converted to a models.HarvestError and routed to the error
// tracker instead of being returned to the caller.
package harvester

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/semjacko/product-harvester/internal/source"
)

//go:generate mockery --name ImageSource --filename imagesource.go
//go:generate mockery --name Processor --filename processor.go
//go:generate mockery --name Importer --filename importer.go
//go:generate mockery --name ErrorTracker --filename errortracker.go

// ImageSource produces a lazy, finite sequence of images.
// Images may fail at sequence creation (systemic, run ends) while the
// returned iterator may fail per advance (single image is skipped).
type ImageSource interface {
	Images(ctx context.Context) (source.Iterator, error)
}

// Processor extracts product data from a batch of images, one outcome
// per image. The error return is reserved for systemic batch failures.
type Processor interface {
	Process(ctx context.Context, images []models.Image) ([]models.Outcome, error)
}

// Importer forwards one extracted product to the downstream catalog.
type Importer interface {
	Import(ctx context.Context, product models.ImportedProduct) error
}

// ErrorTracker is sink for harvest failure records. Implementations
// must not fail and must preserve the order of reported errors.
type ErrorTracker interface {
	TrackErrors(harvestErrors []models.HarvestError)
}

// Option is custom configuration of Harvester.
type Option func(h *Harvester)

// Harvester harvests product data from price tag images.
type Harvester struct {
	source    ImageSource
	processor Processor
	importer  Importer
	tracker   ErrorTracker
	batchSize int
}

// NewHarvester returns new Harvester.
func NewHarvester(
	imageSource ImageSource,
	processor Processor,
	importer Importer,
	tracker ErrorTracker,
	ops ...Option,
) *Harvester {
	har := &Harvester{
		source:    imageSource,
		processor: processor,
		importer:  importer,
		tracker:   tracker,
		batchSize: 8,
	}

	for _, op := range ops {
		op(har)
	}

	return har
}

// Harvest runs one full pass over the image source. It has no return
// value: successes are evidenced by importer calls and failures by
// tracker calls, both can occur in the same run. Batches are processed
// strictly one after another, batch N is fully resolved (including
// imports and error reporting) before batch N+1 is acquired.
func (h *Harvester) Harvest(ctx context.Context) {
	iter, err := h.source.Images(ctx)
	if err != nil {
		h.tracker.TrackErrors([]models.HarvestError{{
			Message: "failed to retrieve images",
			Context: map[string]any{"detail": err.Error()},
		}})
		return
	}

	for {
		batch, exhausted := h.nextBatch(ctx, iter)
		if len(batch) > 0 {
			h.harvestBatch(ctx, batch)
		}
		if exhausted {
			return
		}
	}
}

// nextBatch pulls at most batchSize times from the iterator. A single
// failed pull is reported and consumes its batch slot, it does not stop
// batching. A batch of nothing but failed pulls ends the run, the
// iterator can't be told apart from a permanently broken one.
func (h *Harvester) nextBatch(ctx context.Context, iter source.Iterator) ([]models.Image, bool) {
	batch := make([]models.Image, 0, h.batchSize)
	var retrievalErrors []models.HarvestError
	exhausted := false

	for pulls := 0; pulls < h.batchSize; pulls++ {
		image, err := iter.Next(ctx)
		if errors.Is(err, source.ErrNoMoreImages) {
			exhausted = true
			break
		}
		if err != nil {
			retrievalErrors = append(retrievalErrors, models.HarvestError{
				Message: "failed to retrieve image",
				Context: map[string]any{"detail": err.Error()},
			})
			continue
		}
		batch = append(batch, image)
	}

	if len(retrievalErrors) > 0 {
		h.tracker.TrackErrors(retrievalErrors)
	}

	if len(batch) == 0 && len(retrievalErrors) == h.batchSize {
		exhausted = true
	}

	return batch, exhausted
}

func (h *Harvester) harvestBatch(ctx context.Context, batch []models.Image) {
	outcomes, err := h.processor.Process(ctx, batch)
	if err != nil {
		h.tracker.TrackErrors([]models.HarvestError{{
			Message: "failed to extract data from the images",
			Context: map[string]any{
				"input":  lo.Map(batch, func(img models.Image, _ int) string { return img.ID }),
				"detail": err.Error(),
			},
		}})
		return
	}

	failures := lo.Filter(outcomes, func(o models.Outcome, _ int) bool { return o.Failed() })
	if len(failures) > 0 {
		h.tracker.TrackErrors(lo.Map(failures, func(o models.Outcome, _ int) models.HarvestError {
			return models.HarvestError{
				Message: o.Err.Message,
				Context: map[string]any{
					"input":  o.ImageID,
					"stage":  string(o.Err.Stage),
					"detail": o.Err.Detail,
				},
			}
		}))
	}

	h.importProducts(ctx, batch, outcomes)
}

// importProducts imports successful outcomes one by one; an import
// failure is reported and does not block sibling imports.
func (h *Harvester) importProducts(ctx context.Context, batch []models.Image, outcomes []models.Outcome) {
	imagesByID := lo.KeyBy(batch, func(img models.Image) string { return img.ID })

	var importErrors []models.HarvestError
	for _, outcome := range outcomes {
		if outcome.Failed() {
			continue
		}

		product := adjustProduct(outcome, imagesByID[outcome.ImageID])
		if err := h.importer.Import(ctx, product); err != nil {
			importErrors = append(importErrors, models.HarvestError{
				Message: "failed to import extracted product data",
				Context: map[string]any{
					"input":   outcome.ImageID,
					"product": product,
					"detail":  err.Error(),
				},
			})
		}
	}

	if len(importErrors) > 0 {
		h.tracker.TrackErrors(importErrors)
	}
}

// adjustProduct applies source-supplied image metadata to a successful
// outcome. Metadata overrides take precedence over model-derived and
// scanned values; an overridden barcode is no longer scan-verified.
func adjustProduct(outcome models.Outcome, image models.Image) models.ImportedProduct {
	product := outcome.Product
	verified := outcome.BarcodeVerified

	if barcode, ok := image.Meta["barcode"]; ok && barcode != "" {
		if barcode != product.Barcode {
			verified = false
		}
		product.Barcode = barcode
	}
	if category, ok := image.Meta["category"]; ok && category != "" {
		product.Category = category
	}

	return models.ImportedProduct{
		Product:         product,
		SourceImageID:   outcome.ImageID,
		BarcodeVerified: verified,
	}
}

// WithBatchSize sets Harvester's batch size.
func WithBatchSize(batchSize int) Option {
	return func(h *Harvester) {
		if batchSize > 0 {
			h.batchSize = batchSize
		}
	}
}
