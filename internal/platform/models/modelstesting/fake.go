package modelstesting

import (
	"fmt"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/semjacko/product-harvester/internal/platform/models"
)

var units = []models.QuantityUnit{
	models.UnitLiter,
	models.UnitMilliliter,
	models.UnitKilogram,
	models.UnitGram,
	models.UnitPiece,
}

// FakeProduct returns models.Product with fake valid data.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		Name:     faker.Word(),
		Quantity: float64(rand.Intn(5000) + 1),
		Unit:     units[rand.Intn(len(units))],
		Price:    float64(rand.Intn(10000)+1) / 100,
		Barcode:  fmt.Sprintf("%d", rand.Intn(899999999)+100000000),
		Brand:    faker.Word(),
		Category: faker.Word(),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeImage returns models.Image with fake data and no metadata.
func FakeImage(ops ...func(i *models.Image)) models.Image {
	image := models.Image{
		ID:   fmt.Sprintf("/images/%s.jpg", faker.UUIDHyphenated()),
		Data: fmt.Sprintf("/images/%s.jpg", faker.UUIDHyphenated()),
	}

	for _, op := range ops {
		op(&image)
	}

	return image
}

// FakeOutcome returns successful models.Outcome with a fake product.
func FakeOutcome(ops ...func(o *models.Outcome)) models.Outcome {
	outcome := models.Outcome{
		ImageID: fmt.Sprintf("/images/%s.jpg", faker.UUIDHyphenated()),
		Product: FakeProduct(),
	}

	for _, op := range ops {
		op(&outcome)
	}

	return outcome
}

// FakeFailedOutcome returns failed models.Outcome tagged with provided stage.
func FakeFailedOutcome(stage models.Stage, ops ...func(o *models.Outcome)) models.Outcome {
	outcome := models.Outcome{
		ImageID: fmt.Sprintf("/images/%s.jpg", faker.UUIDHyphenated()),
		Err: &models.ProcessingError{
			Stage:   stage,
			Message: faker.Sentence(),
			Detail:  faker.Sentence(),
		},
	}

	for _, op := range ops {
		op(&outcome)
	}

	return outcome
}
