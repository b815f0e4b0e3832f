// Package config reads the service configuration from the environment.
// A .env file in the working directory is loaded first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port            int
	UploadDir       string
	OutputDir       string
	PreviewDir      string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	CaptureTimeout  time.Duration
	AllowedOrigins  []string
	LogLevel        logrus.Level
}

// Load reads every variable, falling back to the defaults.
func Load() (*Config, error) {
	cfg := &Config{
		UploadDir:  env("UPLOAD_DIR", "uploads"),
		OutputDir:  env("OUTPUT_DIR", "output"),
		PreviewDir: env("PREVIEW_DIR", "previews"),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(env("PORT", "8080")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.SessionTTL, err = duration("SESSION_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CleanupInterval, err = duration("CLEANUP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CaptureTimeout, err = duration("POINTER_CAPTURE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logrus.ParseLevel(env("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	for _, o := range strings.Split(env("ALLOWED_ORIGINS", "https://*,http://*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg, nil
}

// NewLogger returns a text logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// Dirs lists the directories the service writes to.
func (c *Config) Dirs() []string {
	return []string{c.UploadDir, c.OutputDir, c.PreviewDir}
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}
