// Package config loads pdf2md settings from defaults, an optional config.yaml, a
// .env file and PDF2MD_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/pdf2md/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the working directory
// or its parent, if one exists. Variables already set in the process win.
// It reports the file it loaded, or an empty string.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		if err := godotenv.Load(envFile); err != nil {
			return
		}
		loaded = envFile
	})
	return loaded
}

// NewLogger builds the application logger described by the configuration.
func NewLogger(cfg *Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogrusAdapter("info", "text")
	}
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}
