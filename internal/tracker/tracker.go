// Package tracker provides error tracker implementations consuming
// failures reported during harvest runs.
package tracker

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/semjacko/product-harvester/internal/platform/models"
)

// Logger is an error tracker writing one structured log line per
// harvest error, in the order they were reported.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger returns new Logger tracker.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// TrackErrors logs provided harvest errors.
func (l *Logger) TrackErrors(harvestErrors []models.HarvestError) {
	for _, harvestError := range harvestErrors {
		l.logger.Error().Fields(harvestError.Context).Msg(harvestError.Message)
	}
}

// Collector is an error tracker accumulating harvest errors in memory.
// It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	errors []models.HarvestError
}

// NewCollector returns new empty Collector tracker.
func NewCollector() *Collector {
	return &Collector{}
}

// TrackErrors appends provided harvest errors to the collection.
func (c *Collector) TrackErrors(harvestErrors []models.HarvestError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, harvestErrors...)
}

// Errors returns all harvest errors tracked so far, in report order.
func (c *Collector) Errors() []models.HarvestError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.HarvestError{}, c.errors...)
}
