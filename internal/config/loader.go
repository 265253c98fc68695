package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file base name, without extension.
	ConfigFileName = "ocrkit"
	// EnvPrefix prefixes environment variable overrides, e.g.
	// OCRKIT_MODELS_DIR or OCRKIT_PIPELINE_BOX_THRESH.
	EnvPrefix = "OCRKIT"
)

// Loader layers configuration sources on a dedicated viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults and environment handling set up.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Loader{v: v}
}

// Viper exposes the underlying instance so commands can bind flags.
func (l *Loader) Viper() *viper.Viper { return l.v }

// Load resolves the configuration, optionally from an explicit file. With
// an empty path the standard search locations are tried and a missing file
// is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("$HOME/.config/ocrkit")
		l.v.AddConfigPath("/etc/ocrkit")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("models_dir", d.ModelsDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("pipeline.padding", d.Pipeline.Padding)
	v.SetDefault("pipeline.max_side_length", d.Pipeline.MaxSideLength)
	v.SetDefault("pipeline.box_thresh", d.Pipeline.BoxThresh)
	v.SetDefault("pipeline.box_score_thresh", d.Pipeline.BoxScoreThresh)
	v.SetDefault("pipeline.unclip_ratio", d.Pipeline.UnclipRatio)
	v.SetDefault("pipeline.do_angle", d.Pipeline.DoAngle)
	v.SetDefault("pipeline.most_angle", d.Pipeline.MostAngle)
	v.SetDefault("pipeline.workers", d.Pipeline.Workers)
	v.SetDefault("pipeline.num_threads", d.Pipeline.NumThreads)
	v.SetDefault("pipeline.warmup", d.Pipeline.Warmup)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)
}
