// SPDX-License-Identifier: EPL-2.0

// Package config loads the optional YAML configuration of the command line
// tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audxcode/audio"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete tool configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Transcode TranscodeConfig `yaml:"transcode"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TranscodeConfig contains native conversion settings
type TranscodeConfig struct {
	// Threads sizes the worker pool, 0 for all available cores.
	Threads int `yaml:"threads"`
	// Engine names the resampler: polyphase or cubic.
	Engine string `yaml:"engine"`
}

// FFmpegConfig locates the external fallback tool
type FFmpegConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Transcode: TranscodeConfig{Threads: 0, Engine: "polyphase"},
		FFmpeg:    FFmpegConfig{Path: "ffmpeg"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Transcode.Validate(); err != nil {
		return fmt.Errorf("transcode config: %w", err)
	}
	if c.FFmpeg.Path == "" {
		return fmt.Errorf("ffmpeg config: %w: path cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: level must be one of [debug, info, warn, error], got '%s'", ErrInvalidConfig, l.Level)
	}

	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: format must be 'json' or 'text', got '%s'", ErrInvalidConfig, l.Format)
	}

	return nil
}

// Validate validates transcode configuration
func (t *TranscodeConfig) Validate() error {
	if t.Threads < 0 {
		return fmt.Errorf("%w: threads cannot be negative, got %d", ErrInvalidConfig, t.Threads)
	}
	if _, err := audio.EngineByName(t.Engine); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ResamplerEngine returns the engine named by Engine.
func (t *TranscodeConfig) ResamplerEngine() (audio.Engine, error) {
	return audio.EngineByName(t.Engine)
}
