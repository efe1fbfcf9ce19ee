package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphscene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func validConfig() *Config {
	cfg := Default()
	cfg.Input = "edges.csv"
	cfg.ResolveOutput()
	return cfg
}

func TestDefaultIsValidOnceInputSet(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "input: field is required", err.Error())

	assert.NoError(t, validConfig().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
input: data/edges.csv
output:
  format: obj
layout:
  max_distance: 50
  seed: 42
scene:
  bevel_depth: 0.05
  collection: Network
upload:
  bucket: scenes
  key: run/graph.obj
  timeout: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/edges.csv", cfg.Input)
	assert.Equal(t, "obj", cfg.Output.Format)
	assert.Equal(t, 50.0, cfg.Layout.MaxDistance)
	assert.Equal(t, uint64(42), cfg.Layout.Seed)
	assert.Equal(t, 0.05, cfg.Scene.BevelDepth)
	assert.Equal(t, "Network", cfg.Scene.Collection)
	assert.Equal(t, 30*time.Second, cfg.Upload.Timeout)

	// untouched keys keep their defaults
	assert.Equal(t, 0.03, cfg.Scene.PointRadius)
	assert.Equal(t, 100, cfg.Progress.Interval)
	assert.Equal(t, "us-east-1", cfg.Upload.Region)

	cfg.ResolveOutput()
	assert.Equal(t, "data/edges.obj", cfg.Output.Path)
	assert.Equal(t, "data/edges.mtl", cfg.MaterialLibraryPath())
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "input: a.csv\nlayout:\n  min_distance: 1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_distance")
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"format", func(c *Config) { c.Output.Format = "gltf" }, "output.format: must be one of [json obj]"},
		{"max distance", func(c *Config) { c.Layout.MaxDistance = 0 }, "layout.max_distance: must be greater than 0"},
		{"interval", func(c *Config) { c.Progress.Interval = 0 }, "progress.interval: must be at least 1"},
		{"bar width", func(c *Config) { c.Progress.Width = 500 }, "progress.width: must not exceed 200"},
		{"point radius", func(c *Config) { c.Scene.PointRadius = -1 }, "scene.point_radius: must be greater than 0"},
		{"collection", func(c *Config) { c.Scene.Collection = "" }, "scene.collection: field is required"},
		{"endpoint", func(c *Config) { c.Upload.Endpoint = "not a url" }, "upload.endpoint: must be a URL"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, `logging.level: unknown level "loud"`},
		{"same path", func(c *Config) { c.Output.Path = c.Input }, "output.path: must differ from input"},
		{"upload key", func(c *Config) { c.Upload.Bucket = "b" }, "upload.key: field is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateCollectsUploadErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.Bucket = "b"
	cfg.Upload.Region = ""
	cfg.Upload.AccessKeyID = "AKIA"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "config validation failed with 3 errors"), err.Error())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "GRAPHSCENE_LOG_LEVEL" {
			return "debug", true
		}
		return "", false
	})
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestResolveOutput(t *testing.T) {
	cfg := Default()
	cfg.Input = "edges.csv"
	cfg.Output.Compress = true
	cfg.ResolveOutput()
	assert.Equal(t, "edges.scene.json.sz", cfg.Output.Path)

	cfg.Output.Path = "custom.json"
	cfg.ResolveOutput()
	assert.Equal(t, "custom.json", cfg.Output.Path)
}
