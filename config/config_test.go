package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, "", cfg.UserAgent)
	assert.Equal(t, "", cfg.DefaultProfile)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("endpoint: https://minio.internal:9000\ndefault_profile: backups\n"), 0644)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://minio.internal:9000", cfg.Endpoint)
	assert.Equal(t, "backups", cfg.DefaultProfile)
}

func TestMerge_ArgumentsTakePrecedence(t *testing.T) {
	cfg := &Config{Endpoint: "https://file-endpoint", DefaultProfile: "file-profile"}

	// Explicit arguments override
	e, p := cfg.Merge("https://arg-endpoint", "arg-profile")
	assert.Equal(t, "https://arg-endpoint", e)
	assert.Equal(t, "arg-profile", p)

	// Empty arguments fall back to config
	e, p = cfg.Merge("", "")
	assert.Equal(t, "https://file-endpoint", e)
	assert.Equal(t, "file-profile", p)

	// Partial override
	e, p = cfg.Merge("", "other")
	assert.Equal(t, "https://file-endpoint", e)
	assert.Equal(t, "other", p)
}
