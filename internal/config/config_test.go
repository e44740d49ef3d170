package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	require.Equal(t, ".cls", cfg.Scanner.Extension)
	require.Equal(t, "Test", cfg.Scanner.TestSuffix)
	require.Equal(t, 75, cfg.Coverage.Threshold)
	require.Equal(t, 120*time.Second, cfg.API.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`coverage:
  threshold: 90
api:
  timeout: 30s
  model: gpt-4o
github:
  token: file-token
`), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, 90, cfg.Coverage.Threshold)
	require.Equal(t, 30*time.Second, cfg.API.Timeout)
	require.Equal(t, "gpt-4o", cfg.API.Model)
	require.Equal(t, "file-token", cfg.GitHub.Token)

	// Unset sections keep their defaults
	require.Equal(t, ".cls", cfg.Scanner.Extension)
}

func TestLoadEnvTokenOverridesFile(t *testing.T) {
	t.Setenv("GH_TOKEN", "env-token")
	t.Setenv("GITHUB_TOKEN", "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("github:\n  token: file-token\n"), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.GitHub.Token)
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := Default()
	cfg.Coverage.Threshold = 150
	require.Error(t, cfg.Validate())

	cfg.Coverage.Threshold = -1
	require.Error(t, cfg.Validate())
}
