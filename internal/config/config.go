package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config carries all runtime settings for the web front end.
type Config struct {
	HTTPAddr string `env:"BUYLINK_WEB_ADDR" envDefault:":8080"`
	Env      string `env:"BUYLINK_WEB_ENV" envDefault:"local"`

	// Backend API the front end calls for products, cart, estimates and orders.
	APIBaseURL string        `env:"BUYLINK_API_BASE_URL" envDefault:"http://localhost:17788"`
	APITimeout time.Duration `env:"BUYLINK_API_TIMEOUT" envDefault:"8s"`

	// Absolute origin used to build the PSP success/fail redirect URLs.
	SiteBaseURL string `env:"BUYLINK_SITE_BASE_URL" envDefault:"http://localhost:8080"`

	// Client key handed to the hosted payment widget on the checkout page.
	PSPClientKey string `env:"BUYLINK_PSP_CLIENT_KEY" envDefault:""`

	SessionSigningKey string `env:"BUYLINK_SESSION_SIGNING_KEY" envDefault:""`

	TemplatesDir string `env:"BUYLINK_TEMPLATES_DIR" envDefault:"templates"`
	PublicDir    string `env:"BUYLINK_PUBLIC_DIR" envDefault:"public"`
	LocalesDir   string `env:"BUYLINK_LOCALES_DIR" envDefault:"locales"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the optional .env file, then the process environment.
func Load() (Config, error) {
	// .env is a local convenience; absence is fine.
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	if c.APIBaseURL == "" {
		return Config{}, fmt.Errorf("config: BUYLINK_API_BASE_URL is required")
	}
	return c, nil
}

// IsProd reports whether the app runs in the production environment.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}
