package models

import "errors"

// Product validation errors.
var (
	// ErrEmptyName is returned when product has no name.
	ErrEmptyName = errors.New("product name is empty")
	// ErrInvalidQuantity is returned when product quantity is not positive.
	ErrInvalidQuantity = errors.New("product quantity must be positive")
	// ErrInvalidUnit is returned when quantity unit is not one of l, ml, kg, g, pcs.
	ErrInvalidUnit = errors.New("unknown quantity unit")
	// ErrInvalidPrice is returned when product price is not positive.
	ErrInvalidPrice = errors.New("product price must be positive")
	// ErrInvalidBarcode is returned when barcode is present but not a numeric string.
	ErrInvalidBarcode = errors.New("barcode must be a numeric string")
	// ErrEmptyCategory is returned when product has no category.
	ErrEmptyCategory = errors.New("product category is empty")
)
