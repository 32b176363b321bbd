package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kerbaras/littlelemon/pkg/sources"
	"github.com/kerbaras/littlelemon/pkg/services"
)

const envPrefix = "LITTLELEMON_"

type Config struct {
	MenuURL      string
	DataDir      string
	DBPath       string
	LogFile      string
	LogLevel     string
	FetchTimeout time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

// Load reads configuration from defaults, an optional .env file and
// LITTLELEMON_* environment variables, in increasing priority.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".littlelemon")
	}

	timeout, err := getDuration("FETCH_TIMEOUT", sources.DefaultFetchTimeout)
	if err != nil {
		return nil, err
	}
	retryDelay, err := getDuration("RETRY_DELAY", sources.DefaultRetryDelay)
	if err != nil {
		return nil, err
	}
	retries, err := getInt("MAX_RETRIES", sources.DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	return &Config{
		MenuURL:      getEnv("MENU_URL", sources.DefaultMenuURL),
		DataDir:      dataDir,
		DBPath:       getEnv("DB_PATH", filepath.Join(dataDir, "littlelemon.db")),
		LogFile:      getEnv("LOG_FILE", filepath.Join(dataDir, "littlelemon.log")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		FetchTimeout: timeout,
		MaxRetries:   retries,
		RetryDelay:   retryDelay,
	}, nil
}

// Controller converts the configuration into controller settings.
func (c *Config) Controller() services.ControllerConfig {
	return services.ControllerConfig{
		DBPath:       c.DBPath,
		MenuURL:      c.MenuURL,
		FetchTimeout: c.FetchTimeout,
		MaxRetries:   c.MaxRetries,
		RetryDelay:   c.RetryDelay,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s%s %q: expected a duration like 10s", envPrefix, key, v)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s%s %q: expected a non-negative integer", envPrefix, key, v)
	}
	return n, nil
}
