// Package seed derives the random seed that drives k-means seeding and
// random mean-shift starts, so a given image can yield the same palette on
// every run.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"slices"
	"time"

	"github.com/jmylchreest/domcol/internal/pixbuf"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeContent hashes the pixels being clustered (default).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom varies on every run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
}

// Calculate determines the seed value based on the seed mode.
// v is required for ModeContent and imagePath for ModeFilepath.
func Calculate(v *pixbuf.View, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if v == nil {
			return 0, fmt.Errorf("pixels are required for content-based seed mode")
		}
		return ContentSeed(v), nil
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FilepathSeed(imagePath), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// ContentSeed hashes the dimensions and every visible pixel of v. Row
// padding does not contribute.
func ContentSeed(v *pixbuf.View) int64 {
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(v.Width))  // #nosec G115 -- validated positive
	binary.LittleEndian.PutUint32(dims[4:8], uint32(v.Height)) // #nosec G115 -- validated positive
	hasher.Write(dims)

	for y := 0; y < v.Height; y++ {
		hasher.Write(v.Row(y))
	}

	return sum64(hasher.Sum(nil))
}

// FilepathSeed hashes the absolute form of imagePath, falling back to the
// path as given when it cannot be resolved.
func FilepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}

	hash := sha256.Sum256([]byte(absPath))
	return sum64(hash[:])
}

// RandomSeed generates a non-deterministic seed.
func RandomSeed() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducibility, not secrecy
}

func sum64(hash []byte) int64 {
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
