package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pdf2md/cmd/common"
	"fjacquet/pdf2md/internal/models"
	"fjacquet/pdf2md/internal/pdftest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCommand returns a command carrying the shared flags, parsed from args.
func newCommand(t *testing.T, flags *common.Flags, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&flags.ConfigFile, common.FlagConfig, "", "")
	cmd.Flags().StringVar(&flags.LogLevel, common.FlagLogLevel, "info", "")
	cmd.Flags().StringVar(&flags.LogFormat, common.FlagLogFormat, "text", "")
	cmd.Flags().BoolVar(&flags.Normalize, common.FlagNormalize, false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_FlagsOverrideOnlyWhenSet(t *testing.T) {
	dir := chdirTemp(t)
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  level: debug\noutput:\n  normalize: true\n"), 0o600))

	var flags common.Flags
	cmd := newCommand(t, &flags, "--config", cfgFile, "--log-format", "json")

	cfg, err := common.LoadConfig(cmd, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level, "unset flag must not mask the config file")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Output.Normalize)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	chdirTemp(t)

	var flags common.Flags
	cmd := newCommand(t, &flags, "--log-level", "loud")

	_, err := common.LoadConfig(cmd, flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConvertFile(t *testing.T) {
	dir := chdirTemp(t)

	t.Run("text layer document", func(t *testing.T) {
		path := pdftest.WriteFile(t, dir, "Figure 1: Flow")
		var flags common.Flags
		cmd := newCommand(t, &flags)

		result := common.ConvertFile(cmd, flags, path)

		require.True(t, result.Success, result.Error)
		assert.Contains(t, result.Markdown, "[Caption] Figure 1: Flow")
	})

	t.Run("missing config file becomes a failed result", func(t *testing.T) {
		var flags common.Flags
		cmd := newCommand(t, &flags, "--config", filepath.Join(dir, "nope.yaml"))

		result := common.ConvertFile(cmd, flags, "whatever.pdf")

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "failed to read config file")
	})
}

type ctxKey struct{}

func TestContext(t *testing.T) {
	cmd := &cobra.Command{}
	assert.NotNil(t, common.Context(cmd))

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	cmd.SetContext(ctx)
	assert.Equal(t, ctx, common.Context(cmd))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, common.WriteResult(&buf, models.Succeeded("a <b> & c")))
	assert.Equal(t, "{\"success\":true,\"markdown\":\"a <b> & c\"}\n", buf.String())

	err := common.WriteResult(failingWriter{}, models.Failed(errors.New("x")))
	assert.ErrorContains(t, err, "closed pipe")
}
