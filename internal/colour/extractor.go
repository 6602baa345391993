// Package colour provides dominant colour extraction from pixel buffers.
package colour

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/domcol/internal/pixbuf"
)

// Extractor defines the interface for color extraction algorithms.
type Extractor interface {
	// Extract extracts a color palette from an image source.
	// For k-means count is the number of clusters; for mean-shift it is the
	// number of independent runs.
	Extract(src pixbuf.Source, count int) (*Palette, error)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering for color extraction.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMeanShift seeks density modes in RGB space.
	AlgorithmMeanShift Algorithm = "meanshift"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMeanShift,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions holds the tuning shared by all algorithms.
type ExtractorOptions struct {
	// Rand drives k-means seeding and random mean-shift starts.
	Rand Rand
	// MaxIterations caps k-means rounds or mean-shift re-centring steps.
	MaxIterations int
	// SeedAttempts caps k-means seed sampling.
	SeedAttempts int
	// Radius is the mean-shift query radius.
	Radius float64
	// RandomStart starts mean-shift runs at random pixels.
	RandomStart bool
	// Logger receives progress output.
	Logger hclog.Logger
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognized.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(KMeansOptions{
			Rand:          opts.Rand,
			MaxIterations: opts.MaxIterations,
			SeedAttempts:  opts.SeedAttempts,
			Logger:        opts.Logger,
		}), nil
	case AlgorithmMeanShift:
		if !(opts.Radius > 0) {
			return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidArgument, opts.Radius)
		}
		return NewMeanShiftExtractor(opts.Radius, MeanShiftOptions{
			RandomStart:   opts.RandomStart,
			Rand:          opts.Rand,
			MaxIterations: opts.MaxIterations,
			Logger:        opts.Logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}
