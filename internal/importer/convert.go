package importer

import "github.com/semjacko/product-harvester/internal/platform/models"

// ConvertUnit normalizes quantity units before import: milliliters
// become liters and grams become kilograms, other units pass through
// unchanged. The conversion is deterministic and the quantity keeps
// its full precision.
func ConvertUnit(unit models.QuantityUnit, quantity float64) (models.QuantityUnit, float64) {
	switch unit {
	case models.UnitMilliliter:
		return models.UnitLiter, quantity / 1000
	case models.UnitGram:
		return models.UnitKilogram, quantity / 1000
	default:
		return unit, quantity
	}
}
