package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Rasterizer backends selectable through ocr.rasterizer.
const (
	RasterizerPdftoppm = "pdftoppm"
	RasterizerFitz     = "fitz"
)

// EnvPrefix is the prefix of every environment variable read by the configuration.
const EnvPrefix = "PDF2MD"

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	OCR      OCRConfig      `mapstructure:"ocr" yaml:"ocr"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// OCRConfig controls the fallback used for pages without a text layer.
type OCRConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	Rasterizer   string   `mapstructure:"rasterizer" yaml:"rasterizer"`
	DPI          int      `mapstructure:"dpi" yaml:"dpi"`
	PSM          int      `mapstructure:"psm" yaml:"psm"`
	Languages    []string `mapstructure:"languages" yaml:"languages"`
	PdftoppmPath string   `mapstructure:"pdftoppm_path" yaml:"pdftoppm_path"`
}

// PipelineConfig controls page scheduling.
type PipelineConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig controls post-processing of the assembled markdown.
type OutputConfig struct {
	Normalize bool `mapstructure:"normalize" yaml:"normalize"`
}

// InitializeConfigFrom loads the configuration with hierarchical precedence:
// defaults < config file < environment. An explicit configFile must exist;
// otherwise config.yaml is looked up in $HOME/.pdf2md, .pdf2md and the working
// directory and may be absent.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdf2md")
		v.AddConfigPath(".pdf2md")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.OCR.Languages = splitLanguages(config.OCR.Languages)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		OCR: OCRConfig{
			Enabled:      true,
			Rasterizer:   RasterizerPdftoppm,
			DPI:          200,
			PSM:          1,
			Languages:    []string{"eng"},
			PdftoppmPath: "pdftoppm",
		},
		Pipeline: PipelineConfig{Workers: 1},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("ocr.enabled", d.OCR.Enabled)
	v.SetDefault("ocr.rasterizer", d.OCR.Rasterizer)
	v.SetDefault("ocr.dpi", d.OCR.DPI)
	v.SetDefault("ocr.psm", d.OCR.PSM)
	v.SetDefault("ocr.languages", d.OCR.Languages)
	v.SetDefault("ocr.pdftoppm_path", d.OCR.PdftoppmPath)

	v.SetDefault("pipeline.workers", d.Pipeline.Workers)

	v.SetDefault("output.normalize", d.Output.Normalize)
}

// splitLanguages accepts both list values and tesseract's "eng+deu" notation.
func splitLanguages(langs []string) []string {
	var out []string
	for _, l := range langs {
		for _, part := range strings.FieldsFunc(l, func(r rune) bool {
			return r == '+' || r == ',' || r == ' '
		}) {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration values.
func Validate(config *Config) error {
	if _, err := logrus.ParseLevel(strings.ToLower(config.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.OCR.Rasterizer != RasterizerPdftoppm && config.OCR.Rasterizer != RasterizerFitz {
		return fmt.Errorf("invalid ocr.rasterizer: %s (must be '%s' or '%s')",
			config.OCR.Rasterizer, RasterizerPdftoppm, RasterizerFitz)
	}

	if config.OCR.DPI < 36 || config.OCR.DPI > 1200 {
		return fmt.Errorf("ocr.dpi must be between 36 and 1200, got: %d", config.OCR.DPI)
	}

	if config.OCR.PSM < 0 || config.OCR.PSM > 13 {
		return fmt.Errorf("ocr.psm must be between 0 and 13, got: %d", config.OCR.PSM)
	}

	if len(config.OCR.Languages) == 0 {
		return fmt.Errorf("ocr.languages must name at least one language")
	}

	if config.Pipeline.Workers < 1 || config.Pipeline.Workers > 64 {
		return fmt.Errorf("pipeline.workers must be between 1 and 64, got: %d", config.Pipeline.Workers)
	}

	return nil
}

// ExpandHome resolves a leading ~ in tool paths read from the config file.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
