// SPDX-License-Identifier: EPL-2.0

// Package config carries the named options of the preprocessing and
// training pipelines. Values come from Default(), optionally overridden
// by a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of pipeline options. Zero values are not valid;
// start from Default() and override.
type Config struct {
	// Preprocessing
	TargetDurationSeconds float64 `yaml:"target_duration_seconds"`
	SampleRate            int     `yaml:"sample_rate"`

	// Feature extraction
	MFCCCoefficientCount int `yaml:"mfcc_coefficient_count"`
	MelBands             int `yaml:"mel_bands"`
	WindowSize           int `yaml:"window_size"`
	HopSize              int `yaml:"hop_size"`

	// Model and training
	HiddenSize   int     `yaml:"hidden_size"`
	BatchSize    int     `yaml:"batch_size"`
	EpochCount   int     `yaml:"epoch_count"`
	LearningRate float64 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`

	// MaskedLoss excludes padded positions from the reconstruction loss.
	// Off by default: the default loss runs over every position, padding
	// included.
	MaskedLoss bool `yaml:"masked_loss"`
}

// Default returns the reference pipeline configuration.
func Default() Config {
	return Config{
		TargetDurationSeconds: 18,
		SampleRate:            22050,
		MFCCCoefficientCount:  40,
		MelBands:              64,
		WindowSize:            1024,
		HopSize:               256,
		HiddenSize:            128,
		BatchSize:             16,
		EpochCount:            20,
		LearningRate:          1e-3,
		Seed:                  1,
		MaskedLoss:            false,
	}
}

// Load reads a YAML file over the defaults. Missing keys keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case c.TargetDurationSeconds <= 0:
		return fmt.Errorf("%w: target_duration_seconds must be positive", ErrInvalidConfig)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidConfig)
	case c.MFCCCoefficientCount <= 0:
		return fmt.Errorf("%w: mfcc_coefficient_count must be positive", ErrInvalidConfig)
	case c.MelBands < c.MFCCCoefficientCount:
		return fmt.Errorf("%w: mel_bands must be >= mfcc_coefficient_count", ErrInvalidConfig)
	case c.WindowSize <= 0 || c.HopSize <= 0:
		return fmt.Errorf("%w: window_size and hop_size must be positive", ErrInvalidConfig)
	case c.HiddenSize <= 0:
		return fmt.Errorf("%w: hidden_size must be positive", ErrInvalidConfig)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch_size must be positive", ErrInvalidConfig)
	case c.EpochCount <= 0:
		return fmt.Errorf("%w: epoch_count must be positive", ErrInvalidConfig)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: learning_rate must be positive", ErrInvalidConfig)
	}
	return nil
}

// TargetSamples is the fixed per-file sample count after duration
// normalization.
func (c Config) TargetSamples() int {
	return int(c.TargetDurationSeconds * float64(c.SampleRate))
}
