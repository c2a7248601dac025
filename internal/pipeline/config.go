// Package pipeline runs the image preprocessing chain (pre-shrink, resize,
// pixel-to-float conversion, normalization) configured from YAML.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Config describes one preprocessing chain.
type Config struct {
	Size         []int     `yaml:"size"`          // Output [height, width]
	AlignCorners bool      `yaml:"align_corners"` // Bilinear corner alignment
	Mean         []float32 `yaml:"mean"`          // Per-channel mean (RGB)
	Std          []float32 `yaml:"std"`           // Per-channel std (RGB)
	MaxSide      int       `yaml:"max_side"`      // Pre-shrink bound in pixels, 0 disables
}

// DefaultConfig returns the usual ImageNet preprocessing at 224x224.
func DefaultConfig() Config {
	return Config{
		Size:         []int{224, 224},
		AlignCorners: false,
		Mean:         []float32{0.485, 0.456, 0.406},
		Std:          []float32{0.229, 0.224, 0.225},
		MaxSide:      0,
	}
}

// Parse reads YAML on top of DefaultConfig; keys that are absent keep their
// default. The result is validated.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse pipeline config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided config by design
	if err != nil {
		return Config{}, fmt.Errorf("read pipeline config: %w", err)
	}
	return Parse(data)
}

// Validate checks that the config can drive a pipeline.
func (c Config) Validate() error {
	if len(c.Size) != 2 || c.Size[0] <= 0 || c.Size[1] <= 0 {
		return fmt.Errorf("%w: size must be [height, width] with positive values, got %v", ErrInvalidConfig, c.Size)
	}
	if len(c.Mean) != 3 {
		return fmt.Errorf("%w: mean needs 3 values, got %d", ErrInvalidConfig, len(c.Mean))
	}
	if len(c.Std) != 3 {
		return fmt.Errorf("%w: std needs 3 values, got %d", ErrInvalidConfig, len(c.Std))
	}
	for i, s := range c.Std {
		if s == 0 {
			return fmt.Errorf("%w: std[%d] is zero", ErrInvalidConfig, i)
		}
	}
	if c.MaxSide < 0 {
		return fmt.Errorf("%w: max_side must be >= 0, got %d", ErrInvalidConfig, c.MaxSide)
	}
	return nil
}
