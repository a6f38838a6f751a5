// Package server exposes single image harvesting over http.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/semjacko/product-harvester/internal/harvester"
	"github.com/semjacko/product-harvester/internal/importer"
	"github.com/semjacko/product-harvester/internal/platform/models"
	"github.com/semjacko/product-harvester/internal/source"
	"github.com/semjacko/product-harvester/internal/tracker"
)

// maximum length of the error detail returned to http clients
const maxDetailLength = 300

type processRequest struct {
	// Image is a data URL with base64 encoded image content.
	Image string `json:"image" binding:"required"`
}

type processResponse struct {
	Products []models.ImportedProduct `json:"products"`
}

// Server handles harvest-on-request http calls. Each request runs one
// full harvest over a single posted image.
type Server struct {
	engine    *gin.Engine
	processor harvester.Processor
	importer  harvester.Importer
	logger    *zerolog.Logger
}

// NewServer returns new Server. Products extracted from posted images
// are forwarded to provided importer and echoed back to the caller.
func NewServer(processor harvester.Processor, imp harvester.Importer, logger *zerolog.Logger) *Server {
	srv := &Server{
		processor: processor,
		importer:  imp,
		logger:    logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/api/process", srv.handleProcess)
	srv.engine = engine

	return srv
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on provided address and blocks until it stops.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	image := models.Image{
		ID:   "request/" + uuid.NewString(),
		Data: req.Image,
	}

	collected := importer.NewCollector()
	errTracker := tracker.NewCollector()

	har := harvester.NewHarvester(
		source.NewStaticSource(image),
		s.processor,
		&teeImporter{collector: collected, next: s.importer},
		errTracker,
		harvester.WithBatchSize(1),
	)
	har.Harvest(c.Request.Context())

	if harvestErrors := errTracker.Errors(); len(harvestErrors) > 0 {
		s.logger.Error().
			Str("image", image.ID).
			Int("errors", len(harvestErrors)).
			Msg("can't process image")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": errorDetail(harvestErrors)})
		return
	}

	c.JSON(http.StatusOK, processResponse{Products: collected.Products()})
}

// errorDetail joins harvest error messages into one truncated detail string.
func errorDetail(harvestErrors []models.HarvestError) string {
	detail := strings.Join(lo.Map(harvestErrors, func(e models.HarvestError, _ int) string {
		return e.Message
	}), ", ")

	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength]
	}

	return detail
}

// teeImporter forwards products to the next importer and keeps a copy
// for the http response.
type teeImporter struct {
	collector *importer.Collector
	next      harvester.Importer
}

func (t *teeImporter) Import(ctx context.Context, product models.ImportedProduct) error {
	if t.next != nil {
		if err := t.next.Import(ctx, product); err != nil {
			return err
		}
	}

	return t.collector.Import(ctx, product)
}
