package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfigFrom("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.True(t, config.OCR.Enabled)
	assert.Equal(t, RasterizerPdftoppm, config.OCR.Rasterizer)
	assert.Equal(t, 200, config.OCR.DPI)
	assert.Equal(t, 1, config.OCR.PSM)
	assert.Equal(t, []string{"eng"}, config.OCR.Languages)
	assert.Equal(t, "pdftoppm", config.OCR.PdftoppmPath)
	assert.Equal(t, 1, config.Pipeline.Workers)
	assert.False(t, config.Output.Normalize)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"PDF2MD_LOG_LEVEL":        "debug",
		"PDF2MD_LOG_FORMAT":       "json",
		"PDF2MD_OCR_ENABLED":      "false",
		"PDF2MD_OCR_RASTERIZER":   "fitz",
		"PDF2MD_OCR_DPI":          "300",
		"PDF2MD_OCR_PSM":          "6",
		"PDF2MD_OCR_LANGUAGES":    "eng+deu",
		"PDF2MD_PIPELINE_WORKERS": "4",
		"PDF2MD_OUTPUT_NORMALIZE": "true",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfigFrom("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.False(t, config.OCR.Enabled)
	assert.Equal(t, RasterizerFitz, config.OCR.Rasterizer)
	assert.Equal(t, 300, config.OCR.DPI)
	assert.Equal(t, 6, config.OCR.PSM)
	assert.Equal(t, []string{"eng", "deu"}, config.OCR.Languages)
	assert.Equal(t, 4, config.Pipeline.Workers)
	assert.True(t, config.Output.Normalize)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
ocr:
  dpi: 150
  languages: ["fra", "eng"]
pipeline:
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfigFrom("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 150, config.OCR.DPI)
	assert.Equal(t, []string{"fra", "eng"}, config.OCR.Languages)
	assert.Equal(t, 2, config.Pipeline.Workers)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
ocr:
  psm: 3
  dpi: 150
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("PDF2MD_LOG_LEVEL", "error")
	t.Setenv("PDF2MD_OCR_PSM", "4")

	config, err := InitializeConfigFrom("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 4, config.OCR.PSM)
	assert.Equal(t, 150, config.OCR.DPI)
}

func TestInitializeConfigFrom_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ocr:\n  rasterizer: fitz\n"), 0644))

	config, err := InitializeConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, RasterizerFitz, config.OCR.Rasterizer)

	_, err = InitializeConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("PDF2MD_PIPELINE_WORKERS", "0")

	_, err := InitializeConfigFrom("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "unknown rasterizer",
			modifyConfig: func(c *Config) { c.OCR.Rasterizer = "ghostscript" },
			expectError:  "invalid ocr.rasterizer",
		},
		{
			name:         "dpi too low",
			modifyConfig: func(c *Config) { c.OCR.DPI = 10 },
			expectError:  "ocr.dpi must be between 36 and 1200",
		},
		{
			name:         "psm out of range",
			modifyConfig: func(c *Config) { c.OCR.PSM = 14 },
			expectError:  "ocr.psm must be between 0 and 13",
		},
		{
			name:         "no languages",
			modifyConfig: func(c *Config) { c.OCR.Languages = nil },
			expectError:  "ocr.languages must name at least one language",
		},
		{
			name:         "too many workers",
			modifyConfig: func(c *Config) { c.Pipeline.Workers = 65 },
			expectError:  "pipeline.workers must be between 1 and 64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modifyConfig(config)
			err := Validate(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"eng", "deu", "fra"}, splitLanguages([]string{"eng+deu", "fra"}))
	assert.Nil(t, splitLanguages([]string{""}))
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewLogger(Default()))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "bin/pdftoppm"), ExpandHome("~/bin/pdftoppm"))
	assert.Equal(t, "/usr/bin/pdftoppm", ExpandHome("/usr/bin/pdftoppm"))
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	return tempDir
}

func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"PDF2MD_LOG_LEVEL",
		"PDF2MD_LOG_FORMAT",
		"PDF2MD_OCR_ENABLED",
		"PDF2MD_OCR_RASTERIZER",
		"PDF2MD_OCR_DPI",
		"PDF2MD_OCR_PSM",
		"PDF2MD_OCR_LANGUAGES",
		"PDF2MD_OCR_PDFTOPPM_PATH",
		"PDF2MD_PIPELINE_WORKERS",
		"PDF2MD_OUTPUT_NORMALIZE",
	}
	for _, envVar := range envVars {
		// t.Setenv registers the restore; Unsetenv then clears it for this test.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
