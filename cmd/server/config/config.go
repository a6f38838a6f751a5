package config

import "time"

// Config holds application configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	CatalogAPIURL   string        `env:"CATALOG_API_URL"`
	CatalogAPIToken string        `env:"CATALOG_API_TOKEN"`
	ShopID          int           `env:"SHOP_ID"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	Categories      []string      `env:"CATEGORIES" envSeparator:"," envDefault:"voda,jedlo,ostatné"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}
