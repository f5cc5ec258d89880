// Package config handles bonetool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/bonecodec/pkg/anim"
)

// Config holds all tool settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Import   ImportConfig   `yaml:"import"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig holds sampling settings.
type PlaybackConfig struct {
	Interpolation string  `yaml:"interpolation"` // "" keeps the clip's authored mode
	Loop          bool    `yaml:"loop"`
	Speed         float32 `yaml:"speed"`
	FPS           int     `yaml:"fps"`     // Frame rate for dump and glTF resampling
	Workers       int     `yaml:"workers"` // 0 or 1 samples on one goroutine
}

// ImportConfig selects what is pulled out of a glTF asset.
type ImportConfig struct {
	Animation     int    `yaml:"animation"`      // Animation index
	AnimationName string `yaml:"animation_name"` // Takes priority over Animation when set
	Skin          int    `yaml:"skin"`           // Skin whose joints define bone order; -1 uses node order
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Interpolation: "",
			Loop:          true,
			Speed:         1,
			FPS:           30,
			Workers:       0,
		},
		Import: ImportConfig{
			Animation: 0,
			Skin:      0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// InterpolationOverride returns the configured interpolation mode.
// ok is false when the clip's authored mode should be used.
func (p PlaybackConfig) InterpolationOverride() (mode anim.Interpolation, ok bool, err error) {
	if p.Interpolation == "" {
		return anim.Linear, false, nil
	}
	mode, err = anim.ParseInterpolation(p.Interpolation)
	if err != nil {
		return anim.Linear, false, err
	}
	return mode, true, nil
}

// Validate checks values that cannot be clamped silently.
func (c *Config) Validate() error {
	if _, _, err := c.Playback.InterpolationOverride(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	if c.Playback.FPS <= 0 {
		return fmt.Errorf("playback: fps must be positive, got %d", c.Playback.FPS)
	}
	if c.Playback.Workers < 0 {
		return fmt.Errorf("playback: workers must not be negative, got %d", c.Playback.Workers)
	}
	if c.Import.Animation < 0 {
		return fmt.Errorf("import: animation index must not be negative, got %d", c.Import.Animation)
	}
	return nil
}
