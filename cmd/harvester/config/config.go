package config

import "time"

// Config holds application configuration.
type Config struct {
	CatalogAPIURL        string        `env:"CATALOG_API_URL"`
	CatalogAPIToken      string        `env:"CATALOG_API_TOKEN"`
	GeminiAPIKey         string        `env:"GEMINI_API_KEY"`
	GeminiModel          string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	Categories           []string      `env:"CATEGORIES" envSeparator:"," envDefault:"voda,jedlo,ostatné"`
	ImagesRoot           string        `env:"IMAGES_ROOT" envDefault:"./images"`
	BatchSize            int           `env:"BATCH_SIZE" envDefault:"8"`
	MaxConcurrency       int           `env:"MAX_CONCURRENCY" envDefault:"4"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	DriveCredentialsFile string        `env:"DRIVE_CREDENTIALS_FILE"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"ph-ex"`
	Queue    string `env:"RABBITMQ_QUEUE" envDefault:"product-harvester.commands"`
}
