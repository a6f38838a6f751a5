package processor_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/semjacko/product-harvester/internal/platform/models/modelstesting"
	"github.com/semjacko/product-harvester/internal/processor"
	"github.com/semjacko/product-harvester/internal/processor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var categories = []string{"voda", "jedlo", "ostatné"}

func TestUnitProcess(t *testing.T) {
	images := []models.Image{
		fakeDataURLImage("/image1.jpg"),
		fakeDataURLImage("/image2.jpg"),
		fakeDataURLImage("/image3.jpg"),
	}
	products := []models.Product{
		modelstesting.FakeProduct(func(p *models.Product) { p.Category = "jedlo" }),
		modelstesting.FakeProduct(func(p *models.Product) { p.Category = "voda" }),
		modelstesting.FakeProduct(func(p *models.Product) { p.Category = "ostatné" }),
	}

	extractor := mocks.NewExtractor(t)
	for ix := range images {
		mockExtract(extractor, images[ix].ID, productJSON(t, products[ix]), nil)
	}

	proc := processor.NewPriceTagProcessor(extractor, categories)
	outcomes, err := proc.Process(context.TODO(), images)

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, outcomes, len(images), "should return one outcome per image")
	for ix := range images {
		assert.Equal(t, images[ix].ID, outcomes[ix].ImageID, "outcome should carry its image ID")
		assert.Equal(t, products[ix], outcomes[ix].Product, "should return extracted product")
		assert.False(t, outcomes[ix].Failed(), "outcome shouldn't be failed")
		assert.False(t, outcomes[ix].BarcodeVerified, "barcode shouldn't be verified without scanner")
	}
}

func TestUnitProcessStageAttribution(t *testing.T) {
	// category outside the vocabulary, membership is the importer's concern
	product := modelstesting.FakeProduct(func(p *models.Product) { p.Category = "neznáma" })

	tests := map[string]struct {
		image        models.Image
		mockedOutput string
		mockedErr    error
		wantStage    models.Stage
		wantMessage  string
	}{
		"input preparation failure": {
			image:       models.Image{ID: "/missing.jpg", Data: "/nonexistent/missing.jpg"},
			wantStage:   models.StageInputPreparation,
			wantMessage: "failed to prepare image input",
		},
		"model invocation failure": {
			image:       fakeDataURLImage("/image.jpg"),
			mockedErr:   assert.AnError,
			wantStage:   models.StageModelInvocation,
			wantMessage: "failed to invoke extraction model",
		},
		"output parsing failure": {
			image:        fakeDataURLImage("/image.jpg"),
			mockedOutput: "{wat",
			wantStage:    models.StageOutputParsing,
			wantMessage:  "invalid extracted product data",
		},
		"incomplete product output": {
			image:        fakeDataURLImage("/image.jpg"),
			mockedOutput: `{"name":"Banana"}`,
			wantStage:    models.StageOutputParsing,
			wantMessage:  "invalid extracted product data",
		},
		"unknown category is not a processing failure": {
			image:        fakeDataURLImage("/image.jpg"),
			mockedOutput: productJSON(t, product),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			extractor := mocks.NewExtractor(t)
			if tt.image.Data != "/nonexistent/missing.jpg" {
				mockExtract(extractor, tt.image.ID, tt.mockedOutput, tt.mockedErr)
			}

			proc := processor.NewPriceTagProcessor(extractor, categories)
			outcomes, err := proc.Process(context.TODO(), []models.Image{tt.image})

			require.NoError(t, err, "shouldn't return any error")
			require.Len(t, outcomes, 1, "should return one outcome")
			assert.Equal(t, tt.image.ID, outcomes[0].ImageID, "outcome should carry its image ID")

			if tt.wantStage == "" {
				require.False(t, outcomes[0].Failed(), "outcome shouldn't be failed")
				return
			}
			require.True(t, outcomes[0].Failed(), "outcome should be failed")
			assert.Equal(t, tt.wantStage, outcomes[0].Err.Stage, "failure should be tagged with originating stage")
			assert.Equal(t, tt.wantMessage, outcomes[0].Err.Message)
			assert.NotEmpty(t, outcomes[0].Err.Detail, "failure should carry detail")
		})
	}
}

func TestUnitProcessPanicTaggedUnknown(t *testing.T) {
	image := fakeDataURLImage("/image.jpg")

	extractor := mocks.NewExtractor(t)
	extractor.On("Extract", mock.Anything, mock.MatchedBy(matchInput(image.ID))).
		Run(func(mock.Arguments) { panic("model client exploded") }).
		Return("", nil).
		Once()

	proc := processor.NewPriceTagProcessor(extractor, categories)
	outcomes, err := proc.Process(context.TODO(), []models.Image{image})

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, outcomes, 1, "should return one outcome")
	require.True(t, outcomes[0].Failed(), "outcome should be failed")
	assert.Equal(t, models.StageUnknown, outcomes[0].Err.Stage, "unattributable failure should be tagged unknown")
	assert.Contains(t, outcomes[0].Err.Detail, "model client exploded")
}

func TestUnitProcessFailureIsolation(t *testing.T) {
	images := []models.Image{
		fakeDataURLImage("/good1.jpg"),
		fakeDataURLImage("/bad.jpg"),
		fakeDataURLImage("/good2.jpg"),
	}
	goodProducts := map[string]models.Product{
		"/good1.jpg": modelstesting.FakeProduct(func(p *models.Product) { p.Category = "voda" }),
		"/good2.jpg": modelstesting.FakeProduct(func(p *models.Product) { p.Category = "jedlo" }),
	}

	extractor := mocks.NewExtractor(t)
	mockExtract(extractor, "/good1.jpg", productJSON(t, goodProducts["/good1.jpg"]), nil)
	mockExtract(extractor, "/bad.jpg", "", assert.AnError)
	mockExtract(extractor, "/good2.jpg", productJSON(t, goodProducts["/good2.jpg"]), nil)

	proc := processor.NewPriceTagProcessor(extractor, categories)
	outcomes, err := proc.Process(context.TODO(), images)

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, outcomes, len(images), "should return one outcome per image")

	wantIDs := lo.Map(images, func(img models.Image, _ int) string { return img.ID })
	gotIDs := lo.Map(outcomes, func(o models.Outcome, _ int) string { return o.ImageID })
	assert.ElementsMatch(t, wantIDs, gotIDs, "outcome image IDs should cover input image IDs exactly")

	for _, outcome := range outcomes {
		if outcome.ImageID == "/bad.jpg" {
			assert.True(t, outcome.Failed(), "bad image should produce failure")
			continue
		}
		require.False(t, outcome.Failed(), "one bad image shouldn't fail the others")
		assert.Equal(t, goodProducts[outcome.ImageID], outcome.Product, "successful product shouldn't be changed")
	}
}

func TestUnitProcessBarcodeEnrichment(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.Category = "jedlo"
		p.Barcode = "111111"
	})

	tests := map[string]struct {
		scannedBarcode string
		scanErr        error
		wantBarcode    string
		wantVerified   bool
	}{
		"scan overwrites model barcode": {
			scannedBarcode: "8586013438303",
			wantBarcode:    "8586013438303",
			wantVerified:   true,
		},
		"scan failure keeps model barcode unverified": {
			scanErr:      assert.AnError,
			wantBarcode:  "111111",
			wantVerified: false,
		},
		"empty scan keeps model barcode unverified": {
			scannedBarcode: "",
			wantBarcode:    "111111",
			wantVerified:   false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			image := fakeDataURLImage("/image.jpg")

			extractor := mocks.NewExtractor(t)
			mockExtract(extractor, image.ID, productJSON(t, product), nil)

			scanner := mocks.NewBarcodeScanner(t)
			scanner.On("Scan", mock.Anything).Return(tt.scannedBarcode, tt.scanErr).Once()

			proc := processor.NewPriceTagProcessor(extractor, categories, processor.WithBarcodeScanner(scanner))
			outcomes, err := proc.Process(context.TODO(), []models.Image{image})

			require.NoError(t, err, "shouldn't return any error")
			require.Len(t, outcomes, 1, "should return one outcome")
			require.False(t, outcomes[0].Failed(), "outcome shouldn't be failed")
			assert.Equal(t, tt.wantBarcode, outcomes[0].Product.Barcode)
			assert.Equal(t, tt.wantVerified, outcomes[0].BarcodeVerified)
		})
	}
}

func TestUnitProcessNoScanOnFailedOutcomes(t *testing.T) {
	image := fakeDataURLImage("/image.jpg")

	extractor := mocks.NewExtractor(t)
	mockExtract(extractor, image.ID, "", assert.AnError)

	// scanner without expectations, any Scan call fails the test
	scanner := mocks.NewBarcodeScanner(t)

	proc := processor.NewPriceTagProcessor(extractor, categories, processor.WithBarcodeScanner(scanner))
	outcomes, err := proc.Process(context.TODO(), []models.Image{image})

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, outcomes, 1, "should return one outcome")
	assert.True(t, outcomes[0].Failed(), "outcome should be failed")
}

func TestUnitProcessRespectsConcurrencyCeiling(t *testing.T) {
	maxConcurrency := 2
	product := modelstesting.FakeProduct(func(p *models.Product) { p.Category = "voda" })

	// every extraction blocks until maxConcurrency of them are in
	// flight at once, so the ceiling is both reached and observable
	var mu sync.Mutex
	var once sync.Once
	saturated := make(chan struct{})
	inFlight, maxInFlight := 0, 0

	extractor := mocks.NewExtractor(t)
	extractor.On("Extract", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			mu.Lock()
			inFlight++
			maxInFlight = max(maxInFlight, inFlight)
			if inFlight == maxConcurrency {
				once.Do(func() { close(saturated) })
			}
			mu.Unlock()

			<-saturated

			mu.Lock()
			inFlight--
			mu.Unlock()
		}).
		Return(productJSON(t, product), nil)

	images := make([]models.Image, 8)
	for ix := range images {
		images[ix] = fakeDataURLImage(fmt.Sprintf("/image%d.jpg", ix))
	}

	proc := processor.NewPriceTagProcessor(extractor, categories, processor.WithMaxConcurrency(maxConcurrency))
	outcomes, err := proc.Process(context.TODO(), images)

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, outcomes, len(images), "should return one outcome per image")
	assert.Equal(t, maxConcurrency, maxInFlight, "should saturate but not exceed concurrency ceiling")
}

func fakeDataURLImage(id string) models.Image {
	content := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes-" + id))
	return models.Image{
		ID:   id,
		Data: fmt.Sprintf("data:image/jpeg;base64,%s", content),
	}
}

func productJSON(t *testing.T, product models.Product) string {
	t.Helper()

	data, err := json.Marshal(product)
	require.NoError(t, err)

	return string(data)
}

func matchInput(imageID string) func(models.ExtractionInput) bool {
	return func(input models.ExtractionInput) bool {
		return input.ImageID == imageID && len(input.Data) > 0 && input.Prompt != ""
	}
}

func mockExtract(extractor *mocks.Extractor, imageID string, output string, err error) {
	extractor.On("Extract", mock.Anything, mock.MatchedBy(matchInput(imageID))).
		Return(output, err).
		Once()
}
