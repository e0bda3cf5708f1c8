package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treewire/treewire/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, 4, cfg.Export.Workers)
	assert.Equal(t, 65535, cfg.Export.MaxStringSize)
	assert.False(t, cfg.Output.Compress)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	configContent := `
output:
  format: "biniou"
  pattern: "%.bdump"
  compress: true

paths:
  repo_root: "/work/project"

export:
  workers: 8
  dump_comments: true
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	tmpFile.Close()

	cfg, loadErr := config.Load(tmpFile.Name())
	require.NoError(t, loadErr)

	assert.Equal(t, config.FormatBiniou, cfg.Output.Format)
	assert.Equal(t, "%.bdump", cfg.Output.Pattern)
	assert.True(t, cfg.Output.Compress)
	assert.Equal(t, "/work/project", cfg.Paths.RepoRoot)
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.True(t, cfg.Export.DumpComments)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TREEWIRE_OUTPUT_FORMAT", "yjson")
	t.Setenv("TREEWIRE_EXPORT_WORKERS", "2")
	t.Setenv("TREEWIRE_DEDUP_DIR", "/tmp/env-dedup")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.FormatYojson, cfg.Output.Format)
	assert.Equal(t, 2, cfg.Export.Workers)
	assert.Equal(t, "/tmp/env-dedup", cfg.Dedup.Dir)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad format", "output:\n  format: \"xml\"\n", config.ErrInvalidFormat},
		{"bad workers", "export:\n  workers: 0\n", config.ErrInvalidWorkers},
		{"bad string size", "export:\n  max_string_size: -1\n", config.ErrInvalidStringSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
			require.NoError(t, err)
			_, writeErr := tmpFile.WriteString(tc.content)
			require.NoError(t, writeErr)
			tmpFile.Close()

			_, loadErr := config.Load(tmpFile.Name())
			require.Error(t, loadErr)
			assert.ErrorIs(t, loadErr, tc.wantErr)
		})
	}
}
