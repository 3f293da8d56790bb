package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultWebsiteURL is the municipal page that is monitored when
	// WEBSITE_URL is not set.
	DefaultWebsiteURL = "https://www.lingen.de/bauen-wirtschaft/wohnbaugebiete/aktuelle-grundstuecksvergabe/brockhausen-1.html"

	// DefaultStatePath is the JSON file holding the previously seen links.
	DefaultStatePath = "last_pdf_links.json"

	// DefaultHTTPTimeout bounds every outbound HTTP call.
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds all runtime settings. It is built once at process start and
// passed into each component.
type Config struct {
	// WebsiteURL is the page scanned for PDF links.
	WebsiteURL string
	// StatePath is where the previously seen link set is persisted.
	StatePath string
	// PushoverUserKey and PushoverAppToken are the notification
	// credentials. If either is empty, notifications are skipped.
	PushoverUserKey  string
	PushoverAppToken string
	// HTTPTimeout applies to both the page fetch and the push call.
	HTTPTimeout time.Duration
}

// FromEnv builds a Config from the environment. A .env file in the working
// directory is loaded first if present.
func FromEnv() Config {
	// Optional; running without a .env file is the normal case.
	_ = godotenv.Load()

	return Config{
		WebsiteURL:       getenv("WEBSITE_URL", DefaultWebsiteURL),
		StatePath:        getenv("STATE_PATH", DefaultStatePath),
		PushoverUserKey:  os.Getenv("PUSHOVER_USER_KEY"),
		PushoverAppToken: os.Getenv("PUSHOVER_APP_TOKEN"),
		HTTPTimeout:      DefaultHTTPTimeout,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
