package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v6"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/semjacko/product-harvester/cmd/harvester/config"
	"github.com/semjacko/product-harvester/internal/extractor/gemini"
	"github.com/semjacko/product-harvester/internal/handler"
	"github.com/semjacko/product-harvester/internal/harvester"
	"github.com/semjacko/product-harvester/internal/importer"
	"github.com/semjacko/product-harvester/internal/platform/catalogapi"
	"github.com/semjacko/product-harvester/internal/platform/rabbitmq"
	"github.com/semjacko/product-harvester/internal/processor"
	"github.com/semjacko/product-harvester/internal/scanner"
	drivesource "github.com/semjacko/product-harvester/internal/source/drive"
	"github.com/semjacko/product-harvester/internal/source/local"
	"github.com/semjacko/product-harvester/internal/tracker"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// folder prefix selecting the Google Drive image source
const drivePrefix = "drive:"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	_ = godotenv.Load()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create Gemini client")
	}

	var driveService *driveapi.Service
	if cfg.DriveCredentialsFile != "" {
		driveService, err = driveapi.NewService(
			ctx,
			option.WithCredentialsFile(cfg.DriveCredentialsFile),
			option.WithScopes(driveapi.DriveReadonlyScope),
		)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't create Drive service")
		}
	}

	proc := processor.NewPriceTagProcessor(
		gemini.NewExtractor(genaiClient, cfg.GeminiModel),
		cfg.Categories,
		processor.WithBarcodeScanner(scanner.NewZXing()),
		processor.WithMaxConcurrency(cfg.MaxConcurrency),
	)

	runner := &harvestRunner{
		processor:    proc,
		catalog:      catalogapi.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.CatalogAPIURL, cfg.CatalogAPIToken),
		tracker:      tracker.NewLogger(logger),
		imagesRoot:   cfg.ImagesRoot,
		driveService: driveService,
		batchSize:    cfg.BatchSize,
	}

	han := handler.NewHandler(conn, runner, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("product harvester up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	if err := genaiClient.Close(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't close Gemini client")
	}

	if err := amqpConnection.Close(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't close RabbitMQ connection")
	}

	logger.Info().Msg("graceful shutdown successful")
}

// harvestRunner runs one harvest per consumed command. Products land in
// the catalog on behalf of the command's shop, failures land in the log.
type harvestRunner struct {
	processor    harvester.Processor
	catalog      *catalogapi.Client
	tracker      harvester.ErrorTracker
	imagesRoot   string
	driveService *driveapi.Service
	batchSize    int
}

// Harvest harvests all price tag images in provided folder. A folder
// with the "drive:" prefix is a Google Drive folder ID, anything else
// is a folder under the configured images root.
func (r *harvestRunner) Harvest(ctx context.Context, folder string, shopID int) error {
	imageSource, err := r.imageSource(folder)
	if err != nil {
		return err
	}

	imp, err := importer.NewCatalogImporter(ctx, r.catalog, shopID)
	if err != nil {
		return err
	}

	har := harvester.NewHarvester(
		imageSource,
		r.processor,
		imp,
		r.tracker,
		harvester.WithBatchSize(r.batchSize),
	)
	har.Harvest(ctx)

	return nil
}

func (r *harvestRunner) imageSource(folder string) (harvester.ImageSource, error) {
	if folderID, ok := strings.CutPrefix(folder, drivePrefix); ok {
		if r.driveService == nil {
			return nil, errDriveNotConfigured
		}
		return drivesource.NewSource(r.driveService, folderID), nil
	}

	return local.NewSource(filepath.Join(r.imagesRoot, folder)), nil
}
