package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultJSONPath   = "wishes.json"
	defaultSQLitePath = "wishes.db"
)

type Config struct {
	Storage Storage
	Log     Log
	UI      UI
}

type Storage struct {
	Backend string // json | sqlite | memory
	Path    string // data file; ignored for memory
}

type Log struct {
	Level  string // debug, info, warn, error, disabled
	Format string // console, json
	File   string // empty means stderr
}

type UI struct {
	Theme string // classic, neon, mono
}

// Load reads an optional .env file, then the WISHLIST_* environment variables.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Storage: Storage{
			Backend: strings.ToLower(getEnv("WISHLIST_STORE", BackendJSON)),
			Path:    os.Getenv("WISHLIST_PATH"),
		},
		Log: Log{
			Level:  strings.ToLower(getEnv("WISHLIST_LOG_LEVEL", "warn")),
			Format: strings.ToLower(getEnv("WISHLIST_LOG_FORMAT", "console")),
			File:   os.Getenv("WISHLIST_LOG_FILE"),
		},
		UI: UI{
			Theme: strings.ToLower(getEnv("WISHLIST_THEME", "classic")),
		},
	}
	cfg.Storage.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills in the data file for the selected backend.
func (s *Storage) ApplyDefaults() {
	if s.Backend == "" {
		s.Backend = BackendJSON
	}
	if s.Path != "" {
		return
	}
	switch s.Backend {
	case BackendSQLite:
		s.Path = defaultSQLitePath
	case BackendJSON:
		s.Path = defaultJSONPath
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q (want json, sqlite or memory)", c.Storage.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	switch c.UI.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.UI.Theme)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
