// Package config loads the environment configuration for a run.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the three values the external collaborators need. The
// core pipeline itself takes no configuration; it is a pure function
// of the entries it is given.
type Config struct {
	CompanyDomain string
	APIKey        string
	WebhookURL    string
}

// Load reads a .env file when one exists, then requires the three
// environment variables. Every missing variable is reported in one
// error rather than one at a time.
func Load() (Config, error) {
	// A missing .env file is fine; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		CompanyDomain: os.Getenv("BAMBOO_COMPANY_DOMAIN"),
		APIKey:        os.Getenv("BAMBOO_API_KEY"),
		WebhookURL:    os.Getenv("SLACK_WEBHOOK_URL"),
	}

	var missing []string
	if cfg.CompanyDomain == "" {
		missing = append(missing, "BAMBOO_COMPANY_DOMAIN")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "BAMBOO_API_KEY")
	}
	if cfg.WebhookURL == "" {
		missing = append(missing, "SLACK_WEBHOOK_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
