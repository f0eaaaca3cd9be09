package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harnesscheck/pkg/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "harnesscheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetDefaults(t *testing.T) {
	require.NoError(t, config.Reset())

	assert.Equal(t, "http://localhost:8080", config.Harness.BaseURL)
	assert.Equal(t, 5*time.Second, config.Harness.Timeout)
	assert.Empty(t, config.Suite.Path)
	assert.Equal(t, ":8080", config.Stub.Addr)
	assert.Equal(t, 3, config.Stub.MonsterGroups)
	assert.Zero(t, config.Global.Logging.Verbosity)
}

func TestLoadFromFile(t *testing.T) {
	require.NoError(t, config.Reset())
	path := writeFile(t, `
global:
  noColor: true
  logging:
    verbosity: 2
harness:
  baseURL: http://harness.local:9000
suite:
  path: suites/smoke.yaml
`)

	require.NoError(t, config.LoadFromFile(path, true))
	require.NoError(t, config.SetDefaults())

	assert.True(t, config.Global.NoColor)
	assert.Equal(t, 2, config.Global.Logging.Verbosity)
	assert.Equal(t, "http://harness.local:9000", config.Harness.BaseURL)
	assert.Equal(t, 5*time.Second, config.Harness.Timeout)
	assert.Equal(t, "suites/smoke.yaml", config.Suite.Path)
	assert.Equal(t, 3, config.Stub.MonsterGroups)
}

func TestLoadFromFileErrors(t *testing.T) {
	testCases := []struct {
		Name     string
		Path     func(t *testing.T) string
		Required bool
		Expected string
	}{
		{
			Name:     "missing_optional",
			Path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			Required: false,
		},
		{
			Name:     "missing_required",
			Path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			Required: true,
			Expected: "absent.yaml",
		},
		{
			Name:     "directory",
			Path:     func(t *testing.T) string { return t.TempDir() },
			Required: true,
			Expected: "is a directory",
		},
		{
			Name:     "malformed",
			Path:     func(t *testing.T) string { return writeFile(t, "harness: [") },
			Required: true,
			Expected: "failed to unmarshal",
		},
		{
			Name: "empty_path",
			Path: func(*testing.T) string { return "" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := config.LoadFromFile(tc.Path(t), tc.Required)
			if tc.Expected == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Expected)
		})
	}
}
