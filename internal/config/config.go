// Package config holds the application configuration, layered from
// defaults, an optional YAML file, OCRKIT_ environment variables and
// command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/ocrkit-go/ocrkit/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// PipelineConfig holds the OCR tuning knobs.
type PipelineConfig struct {
	Padding        int     `mapstructure:"padding" yaml:"padding"`
	MaxSideLength  int     `mapstructure:"max_side_length" yaml:"max_side_length"`
	BoxThresh      float32 `mapstructure:"box_thresh" yaml:"box_thresh"`
	BoxScoreThresh float64 `mapstructure:"box_score_thresh" yaml:"box_score_thresh"`
	UnclipRatio    float64 `mapstructure:"unclip_ratio" yaml:"unclip_ratio"`
	DoAngle        bool    `mapstructure:"do_angle" yaml:"do_angle"`
	MostAngle      bool    `mapstructure:"most_angle" yaml:"most_angle"`
	Workers        int     `mapstructure:"workers" yaml:"workers"`
	NumThreads     int     `mapstructure:"num_threads" yaml:"num_threads"`
	Warmup         bool    `mapstructure:"warmup" yaml:"warmup"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" yaml:"addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	opts := pipeline.DefaultOptions()
	return Config{
		ModelsDir: "",
		LogLevel:  "info",
		Pipeline: PipelineConfig{
			Padding:        opts.Padding,
			MaxSideLength:  opts.MaxSideLength,
			BoxThresh:      opts.BoxThresh,
			BoxScoreThresh: opts.BoxScoreThresh,
			UnclipRatio:    opts.UnclipRatio,
			DoAngle:        opts.DoAngle,
			MostAngle:      opts.MostAngle,
			Workers:        opts.Workers,
			NumThreads:     0,
			Warmup:         false,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: 32,
		},
	}
}

// Validate rejects settings no pipeline run could make sense of.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.Padding < 0 {
		return fmt.Errorf("pipeline.padding must be >= 0, got %d", p.Padding)
	}
	if p.MaxSideLength < 0 {
		return fmt.Errorf("pipeline.max_side_length must be >= 0, got %d", p.MaxSideLength)
	}
	if p.BoxThresh < 0 || p.BoxThresh > 1 {
		return fmt.Errorf("pipeline.box_thresh must be in [0,1], got %v", p.BoxThresh)
	}
	if p.BoxScoreThresh < 0 || p.BoxScoreThresh > 1 {
		return fmt.Errorf("pipeline.box_score_thresh must be in [0,1], got %v", p.BoxScoreThresh)
	}
	if p.UnclipRatio < 0 {
		return fmt.Errorf("pipeline.unclip_ratio must be >= 0, got %v", p.UnclipRatio)
	}
	if p.Workers < 0 {
		return fmt.Errorf("pipeline.workers must be >= 0, got %d", p.Workers)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// Options converts the pipeline section into per-call pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Padding:        c.Pipeline.Padding,
		MaxSideLength:  c.Pipeline.MaxSideLength,
		BoxThresh:      c.Pipeline.BoxThresh,
		BoxScoreThresh: c.Pipeline.BoxScoreThresh,
		UnclipRatio:    c.Pipeline.UnclipRatio,
		DoAngle:        c.Pipeline.DoAngle,
		MostAngle:      c.Pipeline.MostAngle,
		Workers:        c.Pipeline.Workers,
	}
}

// WriteDefault writes the default configuration as YAML, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
