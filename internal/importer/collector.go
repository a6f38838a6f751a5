package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/semjacko/product-harvester/internal/platform/models"
)

// Collector is an importer accumulating products in memory. It is used
// by the http server to hand harvest results back to the caller.
// It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	products []models.ImportedProduct
}

// NewCollector returns new empty Collector importer.
func NewCollector() *Collector {
	return &Collector{}
}

// Import appends provided product to the collection.
func (c *Collector) Import(_ context.Context, product models.ImportedProduct) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, product)

	return nil
}

// Products returns all products imported so far, in import order.
func (c *Collector) Products() []models.ImportedProduct {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ImportedProduct{}, c.products...)
}

// Writer is an importer writing each product as one JSON line.
type Writer struct {
	mu      sync.Mutex
	writer  io.Writer
	encoder *json.Encoder
}

// NewWriter returns new Writer importer writing to provided writer.
func NewWriter(writer io.Writer) *Writer {
	return &Writer{
		writer:  writer,
		encoder: json.NewEncoder(writer),
	}
}

// Import writes provided product as a JSON line.
func (w *Writer) Import(_ context.Context, product models.ImportedProduct) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(product); err != nil {
		return fmt.Errorf("can't write product: %w", err)
	}

	return nil
}
