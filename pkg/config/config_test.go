package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/pyimports/pkg/imports"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-line-length", imports.DefaultMaxLineLength, "")
	flags.Bool("detect-stdlib", false, "")
	flags.Bool("debug", false, "")
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pyimports.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	req.NoError(err)
	req.Equal(imports.DefaultMaxLineLength, cfg.MaxLineLength)
	req.False(cfg.DetectStdlib)
	req.False(cfg.Debug)
}

func TestLoad_FileEnvFlags(t *testing.T) {
	path := writeConfig(t, "max_line_length: 100\ndetect_stdlib: true\n")

	t.Run("file", func(t *testing.T) {
		req := require.New(t)
		cfg, err := Load(path, newFlags())
		req.NoError(err)
		req.Equal(100, cfg.MaxLineLength)
		req.True(cfg.DetectStdlib)
	})

	t.Run("env overrides file", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("PYIMPORTS_MAX_LINE_LENGTH", "120")
		cfg, err := Load(path, newFlags())
		req.NoError(err)
		req.Equal(120, cfg.MaxLineLength)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("PYIMPORTS_MAX_LINE_LENGTH", "120")
		flags := newFlags()
		req.NoError(flags.Parse([]string{"--max-line-length=79", "--debug"}))
		cfg, err := Load(path, flags)
		req.NoError(err)
		req.Equal(79, cfg.MaxLineLength)
		req.True(cfg.Debug)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed file", "max_line_length: [\n"},
		{"zero line length", "max_line_length: 0\n"},
		{"negative line length", "max_line_length: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Load(writeConfig(t, tt.content), nil)
			req.Error(err)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	req := require.New(t)
	req.NoError((&Config{MaxLineLength: 1}).Validate())
	req.Error((&Config{}).Validate())
}
