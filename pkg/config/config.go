// Package config loads and validates graphscene run configuration.
//
// Values are layered: Default, then an optional YAML file, then command
// line flags applied by the caller. Validate runs once at the end.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graphscene/pkg/layout"
	"github.com/dd0wney/cluso-graphscene/pkg/logging"
	"github.com/dd0wney/cluso-graphscene/pkg/scene"
)

// Config is the full configuration of a build
type Config struct {
	Input    string         `yaml:"input" validate:"required"`
	Output   OutputConfig   `yaml:"output"`
	Layout   LayoutConfig   `yaml:"layout"`
	Scene    scene.Settings `yaml:"scene"`
	Progress ProgressConfig `yaml:"progress"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Upload   UploadConfig   `yaml:"upload"`
}

// OutputConfig controls the exported scene file
type OutputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format" validate:"oneof=json obj"`
	Compress bool   `yaml:"compress"`
	Indent   bool   `yaml:"indent"`
}

// LayoutConfig controls node placement
type LayoutConfig struct {
	MaxDistance float64 `yaml:"max_distance" validate:"gt=0"`
	Seed        uint64  `yaml:"seed"` // 0 picks a random seed
}

// ProgressConfig controls progress reporting
type ProgressConfig struct {
	Interval int  `yaml:"interval" validate:"min=1"`
	Bar      bool `yaml:"bar"`
	Width    int  `yaml:"width" validate:"min=10,max=200"`
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus textfile
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// UploadConfig describes an optional S3 upload of the exported scene
type UploadConfig struct {
	Bucket          string        `yaml:"bucket"`
	Key             string        `yaml:"key"`
	Region          string        `yaml:"region"`
	Endpoint        string        `yaml:"endpoint" validate:"omitempty,url"`
	PathStyle       bool          `yaml:"path_style"`
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	Timeout         time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Enabled reports whether an upload was requested
func (u UploadConfig) Enabled() bool {
	return u.Bucket != ""
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(scene.FormatJSON),
		},
		Layout: LayoutConfig{
			MaxDistance: layout.DefaultMaxDistance,
		},
		Scene: scene.DefaultSettings(),
		Progress: ProgressConfig{
			Interval: 100,
			Width:    40,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Upload: UploadConfig{
			Region:  "us-east-1",
			Timeout: time.Minute,
		},
	}
}

// Load reads a YAML file over Default. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := Decode(bytes.NewReader(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides values from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(logging.LevelEnv); ok && v != "" {
		c.Logging.Level = v
	}
}

// ResolveOutput derives the output path from the input when none is set:
// edges.csv becomes edges.scene.json or edges.obj.
func (c *Config) ResolveOutput() {
	if c.Output.Path != "" || c.Input == "" {
		return
	}
	base := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
	switch scene.Format(c.Output.Format) {
	case scene.FormatOBJ:
		c.Output.Path = base + ".obj"
	default:
		c.Output.Path = base + ".scene.json"
	}
	if c.Output.Compress {
		c.Output.Path += ".sz"
	}
}

// MaterialLibraryPath is the .mtl companion written next to OBJ output
func (c *Config) MaterialLibraryPath() string {
	return strings.TrimSuffix(c.Output.Path, filepath.Ext(c.Output.Path)) + ".mtl"
}
