package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// StorageDriver selects "file" or "postgres".
	StorageDriver string
	// DataFile is the JSON document path for the file driver.
	DataFile string
	// DatabaseURL is the pgx connection string for the postgres driver.
	DatabaseURL string

	// RateLimit is a limiter rate string like "100-M".
	RateLimit string
	// CurrencyCode controls display formatting of summary figures.
	CurrencyCode string
	// AllowedOrigins is the CORS allow-list, comma separated in the env.
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	viper.SetDefault("DATA_FILE", "dashboard.json")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		StorageDriver:  viper.GetString("STORAGE_DRIVER"),
		DataFile:       viper.GetString("DATA_FILE"),
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		CurrencyCode:   viper.GetString("CURRENCY_CODE"),
		AllowedOrigins: splitOrigins(viper.GetString("ALLOWED_ORIGINS")),
	}

	switch cfg.StorageDriver {
	case StorageDriverFile, StorageDriverPostgres:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER %q, falling back to %q\n", cfg.StorageDriver, StorageDriverFile)
		cfg.StorageDriver = StorageDriverFile
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: STORAGE_DRIVER=postgres but PGSQL_URL is not set.")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
