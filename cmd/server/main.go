package main

import (
	"context"
	"net/http"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/semjacko/product-harvester/cmd/server/config"
	"github.com/semjacko/product-harvester/internal/extractor/gemini"
	"github.com/semjacko/product-harvester/internal/importer"
	"github.com/semjacko/product-harvester/internal/platform/catalogapi"
	"github.com/semjacko/product-harvester/internal/processor"
	"github.com/semjacko/product-harvester/internal/scanner"
	"github.com/semjacko/product-harvester/internal/server"
	"google.golang.org/api/option"
)

func main() {
	ctx := context.Background()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	_ = godotenv.Load()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create Gemini client")
	}
	defer genaiClient.Close()

	catalog := catalogapi.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.CatalogAPIURL, cfg.CatalogAPIToken)
	imp, err := importer.NewCatalogImporter(ctx, catalog, cfg.ShopID)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create catalog importer")
	}

	proc := processor.NewPriceTagProcessor(
		gemini.NewExtractor(genaiClient, cfg.GeminiModel),
		cfg.Categories,
		processor.WithBarcodeScanner(scanner.NewZXing()),
	)

	srv := server.NewServer(proc, imp, &logger)

	logger.Info().Str("addr", cfg.Addr).Msg("processing server up and running")

	if err := srv.Run(cfg.Addr); err != nil {
		logger.Fatal().
			Err(err).
			Msg("server stopped")
	}
}
