package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendPathstore = "pathstore"
)

const (
	defaultMaxBodyBytes   = 16 << 20
	defaultMaxUploadBytes = 10 << 20
)

type Config struct {
	Port     string
	LogLevel string

	// Storage
	StoreBackend string
	StorePath    string

	// Pathstore connection
	PathstoreURL    string
	PathstoreAPIKey string
	PathstorePrefix string

	// Request limits
	MaxBodyBytes   int64
	MaxUploadBytes int64

	// Viewer
	ViewerAssetsDir string

	// PDF
	PDFFallbackPdftotext bool

	ShutdownTimeout time.Duration
}

// LoadDotEnv reads .env files into the environment. Missing files are not
// an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Port:     envOr("PORT", "8787"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		StoreBackend: strings.ToLower(envOr("STORE_BACKEND", BackendMemory)),
		StorePath:    envOr("STORE_PATH", "data"),

		PathstoreURL:    os.Getenv("PATHSTORE_URL"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),
		PathstorePrefix: envOr("PATHSTORE_PREFIX", "menus"),

		MaxBodyBytes:   envInt64("MAX_BODY_BYTES", defaultMaxBodyBytes),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),

		ViewerAssetsDir: os.Getenv("VIEWER_ASSETS_DIR"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required for the %s backend", c.StoreBackend)
		}
	case BackendPathstore:
		if c.PathstoreURL == "" {
			return fmt.Errorf("PATHSTORE_URL is required for the pathstore backend")
		}
		if c.PathstoreAPIKey == "" {
			return fmt.Errorf("PATHSTORE_API_KEY is required for the pathstore backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
