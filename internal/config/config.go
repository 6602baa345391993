// Package config holds the extraction settings shared by the CLI and the
// environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/domcol/internal/colour"
	"github.com/jmylchreest/domcol/internal/logging"
	"github.com/jmylchreest/domcol/internal/seed"
)

// Environment variables read by Builder.WithEnvConfig.
const (
	EnvAlgorithm = "DOMCOL_ALGORITHM"
	EnvColours   = "DOMCOL_COLOURS"
	EnvRadius    = "DOMCOL_RADIUS"
	EnvShifts    = "DOMCOL_SHIFTS"
	EnvResize    = "DOMCOL_RESIZE"
	EnvSeedMode  = "DOMCOL_SEED_MODE"
	EnvSeedValue = "DOMCOL_SEED_VALUE"
	EnvLogLevel  = "DOMCOL_LOG_LEVEL"
)

// Defaults.
const (
	DefaultColours = 3
	DefaultRadius  = 30.0
	DefaultResize  = 50
)

// Config holds everything needed to turn an image into a palette.
type Config struct {
	Algorithm colour.Algorithm
	// Colours is K for k-means.
	Colours int
	// Radius is the mean-shift query radius.
	Radius float64
	// Shifts is the number of mean-shift runs.
	Shifts      int
	RandomStart bool
	// Resize is the square side images are fitted into; 0 keeps full size.
	Resize int
	// MaxIterations and SeedAttempts of 0 select the engine defaults.
	MaxIterations int
	SeedAttempts  int
	Seed          seed.Config
	LogLevel      string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Algorithm: colour.AlgorithmKMeans,
		Colours:   DefaultColours,
		Radius:    DefaultRadius,
		Shifts:    colour.DefaultShiftCount,
		Resize:    DefaultResize,
		Seed:      seed.Config{Mode: seed.ModeContent},
		LogLevel:  "warn",
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if !colour.IsValidAlgorithm(c.Algorithm) {
		errs = append(errs, fmt.Errorf("invalid algorithm: %s (valid: %v)", c.Algorithm, colour.ValidAlgorithms()))
	}
	if c.Colours < 1 {
		errs = append(errs, fmt.Errorf("colours must be at least 1, got %d", c.Colours))
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		errs = append(errs, fmt.Errorf("radius must be a positive number, got %g", c.Radius))
	}
	if c.Shifts < 1 {
		errs = append(errs, fmt.Errorf("shifts must be at least 1, got %d", c.Shifts))
	}
	if c.Resize < 0 {
		errs = append(errs, fmt.Errorf("resize must not be negative, got %d", c.Resize))
	}
	if c.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations))
	}
	if c.SeedAttempts < 0 {
		errs = append(errs, fmt.Errorf("seed attempts must not be negative, got %d", c.SeedAttempts))
	}
	if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
		errs = append(errs, err)
	} else if c.Seed.Mode == seed.ModeManual && c.Seed.Value == nil {
		errs = append(errs, fmt.Errorf("seed value is required for manual seed mode"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Builder provides a fluent interface for assembling a Config.
type Builder struct {
	config    Config
	useEnv    bool
	lookup    func(string) (string, bool)
	overrides []func(*Config)
}

// NewBuilder creates a builder seeded with Default().
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		lookup: os.LookupEnv,
	}
}

// WithConfig replaces the base configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig overlays the DOMCOL_* environment variables.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithOverride registers fn to run after the environment is applied.
// Command-line flags use it so that explicit settings beat DOMCOL_* values.
func (b *Builder) WithOverride(fn func(*Config)) *Builder {
	b.overrides = append(b.overrides, fn)
	return b
}

// Build applies the environment, if requested, then any overrides, and
// validates the result.
func (b *Builder) Build() (Config, error) {
	config := b.config

	if b.useEnv {
		if err := b.applyEnv(&config); err != nil {
			return Config{}, err
		}
	}
	for _, fn := range b.overrides {
		fn(&config)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (b *Builder) applyEnv(config *Config) error {
	var errs []error
	get := func(key string) (string, bool) {
		v, ok := b.lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	parseInt := func(key string, dst *int) {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	if v, ok := get(EnvAlgorithm); ok {
		config.Algorithm = colour.Algorithm(strings.ToLower(v))
	}
	parseInt(EnvColours, &config.Colours)
	if v, ok := get(EnvRadius); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvRadius, err))
		} else {
			config.Radius = r
		}
	}
	parseInt(EnvShifts, &config.Shifts)
	parseInt(EnvResize, &config.Resize)
	// A seed value implies manual mode unless a mode is given as well.
	if v, ok := get(EnvSeedValue); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeedValue, err))
		} else {
			config.Seed.Value = &n
			config.Seed.Mode = seed.ModeManual
		}
	}
	if v, ok := get(EnvSeedMode); ok {
		config.Seed.Mode = seed.Mode(strings.ToLower(v))
	}
	if v, ok := get(EnvLogLevel); ok {
		config.LogLevel = v
	}

	return errors.Join(errs...)
}
