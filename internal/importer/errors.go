package importer

import "errors"

// ErrUnknownCategory is returned when a product category has no
// counterpart in the catalog.
var ErrUnknownCategory = errors.New("unknown product category")
