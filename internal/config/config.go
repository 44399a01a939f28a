package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env     string `env:"ENV" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"8080"`
	DBDSN   string `env:"DB_DSN" envDefault:"itemshop.db"`
	LogFile string `env:"LOG_FILE" envDefault:"./itemshop.log"`

	Season            int           `env:"CURRENT_SEASON" envDefault:"10"`
	CatalogURL        string        `env:"CATALOG_URL" envDefault:"https://fortnite-api.com/v2/cosmetics/br"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"30s"`
	DisplayAssetsPath string        `env:"DISPLAY_ASSETS_PATH" envDefault:"data/displayAssets.json"`
	StorefrontDir     string        `env:"STOREFRONT_DIR" envDefault:"data/storefront"`
	ProfilesDir       string        `env:"PROFILES_DIR" envDefault:"data/profiles"`
	TemplatesDir      string        `env:"TEMPLATES_DIR" envDefault:"web/templates"`
	MaxSampleAttempts int           `env:"MAX_SAMPLE_ATTEMPTS" envDefault:"1000"`
	GenerateOnStart   bool          `env:"GENERATE_ON_START" envDefault:"true"`

	AdminToken    string `env:"ADMIN_TOKEN"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// LoadDotenv overlays a .env file onto the process environment outside
// production. A missing file is not an error.
func LoadDotenv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[config] could not load %s: %v", path, err)
		}
		return
	}
	log.Printf("[config] loaded %s", path)
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Season <= 0 {
		return Config{}, fmt.Errorf("parse env: CURRENT_SEASON must be positive, got %d", cfg.Season)
	}
	if cfg.MaxSampleAttempts <= 0 {
		return Config{}, fmt.Errorf("parse env: MAX_SAMPLE_ATTEMPTS must be positive, got %d", cfg.MaxSampleAttempts)
	}

	log.Printf("[config] ENV=%s PORT=%s DB_DSN=%s LOG_FILE=%s SEASON=%d CATALOG_URL=%s STOREFRONT_DIR=%s PROFILES_DIR=%s admin_token_set=%t",
		cfg.Env, cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Season, cfg.CatalogURL, cfg.StorefrontDir, cfg.ProfilesDir, cfg.AdminToken != "")
	return cfg, nil
}

// Exitf writes a formatted message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
