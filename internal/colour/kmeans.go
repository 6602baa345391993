// Package colour provides dominant colour extraction from pixel buffers.
package colour

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/domcol/internal/logging"
	"github.com/jmylchreest/domcol/internal/pixbuf"
)

const (
	// DefaultMaxIterations caps the number of k-means rounds.
	DefaultMaxIterations = 100

	// DefaultConvergence is the largest centroid movement, under
	// DistanceSquared, that still counts as converged.
	DefaultConvergence = 1.0

	// SeedAttemptFactor scales the default seeding budget by the pixel count.
	SeedAttemptFactor = 16
)

// Rand is the source of randomness for seeding. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// globalRand draws from the math/rand package-level generator.
type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n) // #nosec G404 -- seeding does not need a CSPRNG
}

// Centroid is one k-means cluster: its colour and the fraction of pixels
// assigned to it.
type Centroid struct {
	Code     Code
	Fraction float64
	Members  int
}

// Empty reports whether no pixel was assigned to the centroid in the last round.
func (c Centroid) Empty() bool {
	return c.Members == 0
}

// RoundStats describes one completed k-means round.
type RoundStats struct {
	Round int
	// Cost is the sum of every pixel's distance to the centroid it was assigned to.
	Cost float64
	// MaxShift is the largest centroid movement in the update step.
	MaxShift float64
}

// KMeansOptions configures the k-means engine. Zero values select defaults.
type KMeansOptions struct {
	// Rand supplies seed coordinates. Nil uses the math/rand global stream.
	Rand Rand
	// MaxIterations caps the number of rounds (default 100).
	MaxIterations int
	// Convergence is the movement threshold (default 1).
	Convergence float64
	// SeedAttempts caps seed sampling (default SeedAttemptFactor * width * height).
	SeedAttempts int
	// Logger receives progress output. Nil discards it.
	Logger hclog.Logger
	// OnRound, if set, is called after every round.
	OnRound func(RoundStats)
}

// KMeansExtractor implements colour extraction using k-means clustering
// over every pixel of the image.
type KMeansExtractor struct {
	rng           Rand
	maxIterations int
	convergence   float64
	seedAttempts  int
	logger        hclog.Logger
	onRound       func(RoundStats)
}

// NewKMeansExtractor creates a new KMeansExtractor, filling in defaults for
// any unset option.
func NewKMeansExtractor(opts KMeansOptions) *KMeansExtractor {
	e := &KMeansExtractor{
		rng:           opts.Rand,
		maxIterations: opts.MaxIterations,
		convergence:   opts.Convergence,
		seedAttempts:  opts.SeedAttempts,
		logger:        opts.Logger,
		onRound:       opts.OnRound,
	}
	if e.rng == nil {
		e.rng = globalRand{}
	}
	if e.maxIterations <= 0 {
		e.maxIterations = DefaultMaxIterations
	}
	if e.convergence <= 0 {
		e.convergence = DefaultConvergence
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// ExtractKMeansColours opens src, clusters its pixels into k colours and
// closes it again. The result holds exactly k centroids.
func ExtractKMeansColours(src pixbuf.Source, k int, opts KMeansOptions) ([]Centroid, error) {
	v, err := openSource(src)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return NewKMeansExtractor(opts).Cluster(v, k)
}

// Extract clusters the pixels of src into count colours and returns them as
// a palette weighted by occupancy.
func (e *KMeansExtractor) Extract(src pixbuf.Source, count int) (*Palette, error) {
	v, err := openSource(src)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	centroids, err := e.Cluster(v, count)
	if err != nil {
		return nil, err
	}
	return PaletteFromCentroids(centroids), nil
}

// channelSum accumulates the channels of a cluster's members.
type channelSum struct {
	r, g, b int
}

// Cluster runs k-means over v and returns k centroids in seed order.
func (e *KMeansExtractor) Cluster(v *pixbuf.View, k int) ([]Centroid, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil view", ErrUnreadableSource)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidArgument, k)
	}

	centroids, err := e.seed(v, k)
	if err != nil {
		return nil, err
	}

	sums := make([]channelSum, k)
	members := make([]int, k)

	for round := 1; round <= e.maxIterations; round++ {
		clear(sums)
		clear(members)

		// Assign every pixel to its nearest centroid; the first minimum wins.
		cost := 0.0
		v.Each(func(_, _ int, px uint32) {
			c := opaque(px)
			best := 0
			bestDist := math.MaxFloat64
			for i, centroid := range centroids {
				if d := DistanceSquared(c, centroid); d < bestDist {
					bestDist = d
					best = i
				}
			}
			r, g, b := Unpack(c)
			sums[best].r += r
			sums[best].g += g
			sums[best].b += b
			members[best]++
			cost += bestDist
		})

		maxShift := 0.0
		for i := range centroids {
			next := Unassigned
			if n := members[i]; n > 0 {
				next = PackClamped(sums[i].r/n, sums[i].g/n, sums[i].b/n)
			}
			if d := DistanceSquared(next, centroids[i]); d > maxShift {
				maxShift = d
			}
			centroids[i] = next
		}

		e.logger.Trace("k-means round", "round", round, "cost", cost, "max_shift", maxShift)
		if e.onRound != nil {
			e.onRound(RoundStats{Round: round, Cost: cost, MaxShift: maxShift})
		}

		if maxShift <= e.convergence {
			e.logger.Debug("k-means converged", "rounds", round, "max_shift", maxShift)
			break
		}
		if round == e.maxIterations {
			e.logger.Debug("k-means stopped at round limit", "rounds", round, "max_shift", maxShift)
		}
	}

	total := float64(v.Pixels())
	result := make([]Centroid, k)
	for i, c := range centroids {
		result[i] = Centroid{
			Code:     c,
			Fraction: float64(members[i]) / total,
			Members:  members[i],
		}
	}
	return result, nil
}

// seed samples random pixels until k distinct colours are found or the
// attempt budget runs out.
func (e *KMeansExtractor) seed(v *pixbuf.View, k int) ([]Code, error) {
	// A view never holds more distinct colours than pixels.
	if k > v.Pixels() {
		return nil, &SeedingError{Wanted: k}
	}

	budget := e.seedAttempts
	if budget <= 0 {
		budget = SeedAttemptFactor * v.Pixels()
	}

	centroids := make([]Code, 0, k)
	attempts := 0
	for len(centroids) < k {
		if attempts >= budget {
			return nil, &SeedingError{Wanted: k, Found: len(centroids), Attempts: attempts}
		}
		attempts++

		x := e.rng.Intn(v.Width)
		y := e.rng.Intn(v.Height)
		c := opaque(v.PixelAt(x, y))
		if !containsCode(centroids, c) {
			centroids = append(centroids, c)
		}
	}

	e.logger.Debug("k-means seeded", "k", k, "attempts", attempts)
	return centroids, nil
}

func containsCode(codes []Code, c Code) bool {
	for _, existing := range codes {
		if existing == c {
			return true
		}
	}
	return false
}
