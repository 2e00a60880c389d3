package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10000, cfg.AnalysisTimeoutMs)
	assert.Equal(t, 2000, cfg.PathSolverTimeoutMs)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Warnings)
}

func TestLoadMissingPathReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathreach.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nwarnings: true\nanalysisTimeoutMs: 5000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Warnings)
	assert.Equal(t, 5000, cfg.AnalysisTimeoutMs)
	assert.Equal(t, 2000, cfg.PathSolverTimeoutMs) // untouched field keeps its default
}
