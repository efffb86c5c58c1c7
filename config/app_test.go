package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	path := writeFile(t, "empty.yaml", "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultDisplayCount, cfg.Recommend.DisplayCount)
	assert.InDelta(t, core.DefaultDampingK, cfg.Recommend.DampingK, 1e-9)
	assert.InDelta(t, core.DefaultMaxDistance, cfg.Recommend.MaxDistance, 1e-9)
	assert.Equal(t, "abort", cfg.Filters.GeocodeFailure)
	assert.Equal(t, core.DefaultGeocodeTimeout, cfg.Geocoder.Timeout)
	assert.Equal(t, "memory", cfg.Geocoder.Cache.Backend)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "dinekit.yaml", `
recommend:
  display_count: 10
  original_score: true
filters:
  geocode_failure: skip
geocoder:
  timeout: 3s
  cache:
    backend: redis
    redis_addr: localhost:6379
`)
	t.Setenv("DINEKIT_RECOMMEND_MAX_DISTANCE", "25")
	t.Setenv("DINEKIT_GEOCODER_CACHE_REDIS_DB", "2")
	t.Setenv("DINEKIT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Recommend.DisplayCount)
	assert.True(t, cfg.Recommend.OriginalScore)
	assert.InDelta(t, 25.0, cfg.Recommend.MaxDistance, 1e-9)
	assert.Equal(t, "skip", cfg.Filters.GeocodeFailure)
	assert.Equal(t, 3*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, "redis", cfg.Geocoder.Cache.Backend)
	assert.Equal(t, 2, cfg.Geocoder.Cache.RedisDB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"policy":     "filters:\n  geocode_failure: retry\n",
		"backend":    "geocoder:\n  cache:\n    backend: disk\n",
		"redis addr": "geocoder:\n  cache:\n    backend: redis\n",
		"count":      "recommend:\n  display_count: 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", content))
			require.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"DINEKIT_GEOCODER_RATE_PER_SECOND":  "geocoder.rate_per_second",
		"DINEKIT_GEOCODER_CACHE_REDIS_ADDR": "geocoder.cache.redis_addr",
		"DINEKIT_DATA_LATENT_FACTORS":       "data.latent_factors",
		"DINEKIT_FILTERS_GEOCODE_FAILURE":   "filters.geocode_failure",
		"DINEKIT_CONFIG":                    "",
		"DINEKIT_UNKNOWN_KEY":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, envTransformFunc(in), in)
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	Register("filter.test", func(map[string]any) (pipeline.Node, error) { return nil, nil })

	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "filter.test"}, {Type: "filter.location"}}
	assert.Error(t, ValidatePipelineConfig(cfg))
	assert.NoError(t, ValidatePipelineConfig(cfg, "filter.location"))
	assert.Contains(t, SupportedTypes(), "filter.test")

	_, err := DefaultFactory().Build("filter.test", nil)
	assert.NoError(t, err)
}
