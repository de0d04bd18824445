package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiftscout_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: http://localhost:8080\n")

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 5*time.Minute, cfg.StopWordRefreshInterval())
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: http://localhost:8080
httpTimeoutSeconds: 3
stopWordRefreshSeconds: 60
matcher:
  minScore: 0.5
  fuzzyTokenQuality: 0.7
`)

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, time.Minute, cfg.StopWordRefreshInterval())
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: [broken\n")

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_RequiresBaseURL(t *testing.T) {
	err := Validate(&Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_RejectsOutOfRangeOverrides(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: http://localhost:8080
matcher:
  minScore: 1.5
`)

	_, err := LoadFromPath(path)

	assert.Error(t, err)
}

func TestMatcherWeights_OverridesMergeOntoDefaults(t *testing.T) {
	minScore := 0.5
	horizon := 7
	cfg := Config{
		APIBaseURL: "http://localhost:8080",
		Matcher: MatcherOverrides{
			MinScore:           &minScore,
			RecencyHorizonDays: &horizon,
		},
	}

	w := cfg.MatcherWeights()

	assert.Equal(t, 0.5, w.MinScore)
	assert.Equal(t, 7, w.RecencyHorizonDays)
	// untouched fields keep their defaults
	assert.Equal(t, 0.5, w.Place)
	assert.Equal(t, 0.3, w.Time)
	assert.Equal(t, 240, w.TimeDeltaCapMinutes)
}
