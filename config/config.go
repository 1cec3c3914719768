package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds paths and runtime settings for the application
type Config struct {
	HomeDir   string
	DBPath    string
	ExportDir string
	LogPath   string
	LogLevel  string

	// ExportScale is the capture upscaling factor for PDF export
	ExportScale int
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	home, err := defaultHome()
	if err != nil {
		return nil, err
	}
	home = getEnv("VECKORAPPORT_HOME", home)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	cfg := &Config{
		HomeDir:   home,
		DBPath:    getEnv("VECKORAPPORT_DB", filepath.Join(home, "veckorapport.db")),
		ExportDir: getEnv("VECKORAPPORT_EXPORT_DIR", cwd),
		LogPath:   getEnv("VECKORAPPORT_LOG", filepath.Join(home, "veckorapport.log")),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),

		ExportScale: getEnvAsInt("VECKORAPPORT_EXPORT_SCALE", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present and well formed
func (c *Config) Validate() error {
	if c.HomeDir == "" {
		return fmt.Errorf("VECKORAPPORT_HOME is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("VECKORAPPORT_DB is required")
	}
	if c.ExportScale < 1 || c.ExportScale > 4 {
		return fmt.Errorf("VECKORAPPORT_EXPORT_SCALE must be between 1 and 4, got %d", c.ExportScale)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// EnsureDirs creates the data directory and the parents of the database and log files
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.HomeDir, filepath.Dir(c.DBPath), filepath.Dir(c.LogPath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func defaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".veckorapport"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}
