// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/pdf2md/internal/config"
	"fjacquet/pdf2md/internal/container"
	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/models"

	"github.com/spf13/cobra"
)

// Flag names shared by every command.
const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagNormalize = "normalize"
)

// Flags holds the persistent flags of the root command.
type Flags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Normalize  bool
}

// LoadConfig reads the configuration and applies the flags the user actually
// set on cmd, so unset flags never mask config file or environment values.
func LoadConfig(cmd *cobra.Command, flags Flags) (*config.Config, error) {
	cfg, err := config.InitializeConfigFrom(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if changed(cmd, FlagLogLevel) {
		cfg.Log.Level = flags.LogLevel
	}
	if changed(cmd, FlagLogFormat) {
		cfg.Log.Format = flags.LogFormat
	}
	if changed(cmd, FlagNormalize) {
		cfg.Output.Normalize = flags.Normalize
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// NewLogger returns a logger for cfg writing to the command's error stream.
// A nil cfg yields an info level text logger.
func NewLogger(cmd *cobra.Command, cfg *config.Config) logging.Logger {
	if cfg == nil {
		cfg = config.Default()
	}
	return logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
}

// BuildContainer loads the configuration and wires the application for cmd.
func BuildContainer(cmd *cobra.Command, flags Flags) (*container.Container, error) {
	cfg, err := LoadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	return container.NewContainerWithLogger(cfg, NewLogger(cmd, cfg))
}

// ConvertFile runs the whole conversion for path and never fails: setup errors
// are folded into the returned Result like conversion errors.
func ConvertFile(cmd *cobra.Command, flags Flags, path string) models.Result {
	c, err := BuildContainer(cmd, flags)
	if err != nil {
		NewLogger(cmd, nil).WithError(err).Error("Failed to initialize",
			logging.Field{Key: logging.FieldFile, Value: path})
		return models.Failed(err)
	}
	return c.GetConverter().Convert(Context(cmd), path)
}

// Context returns the command context, or a background context when the
// command was not started through Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// WriteResult prints result as the single JSON line of the command output.
func WriteResult(w io.Writer, result models.Result) error {
	if _, err := result.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
