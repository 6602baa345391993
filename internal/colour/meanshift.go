// Package colour provides dominant colour extraction from pixel buffers.
package colour

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/domcol/internal/logging"
	"github.com/jmylchreest/domcol/internal/pixbuf"
	"github.com/jmylchreest/domcol/internal/spatial"
)

const (
	// DefaultShiftCount is the number of independent mean-shift runs.
	DefaultShiftCount = 10

	// DefaultMaxShiftIterations caps the re-centring steps of one run.
	DefaultMaxShiftIterations = 100

	// meanShiftThreshold is the squared displacement at which a run stops.
	meanShiftThreshold = 1.0
)

// MeanShiftOptions configures the mean-shift engine. Zero values select defaults.
type MeanShiftOptions struct {
	// ShiftCount is the number of independent runs (default 10 when zero).
	ShiftCount int
	// RandomStart begins each run at the colour of a randomly chosen pixel
	// instead of the origin.
	RandomStart bool
	// Rand supplies the start pixels when RandomStart is set. Nil uses the
	// math/rand global stream.
	Rand Rand
	// MaxIterations caps the re-centring steps of one run (default 100).
	MaxIterations int
	// Logger receives progress output. Nil discards it.
	Logger hclog.Logger
}

// MeanShiftExtractor finds dense colours by repeatedly moving a query sphere
// to the mean of the pixels it encloses.
type MeanShiftExtractor struct {
	radius        float64
	shiftCount    int
	randomStart   bool
	rng           Rand
	maxIterations int
	logger        hclog.Logger
}

// NewMeanShiftExtractor creates a new MeanShiftExtractor with the given query
// radius, filling in defaults for any unset option.
func NewMeanShiftExtractor(radius float64, opts MeanShiftOptions) *MeanShiftExtractor {
	e := &MeanShiftExtractor{
		radius:        radius,
		shiftCount:    opts.ShiftCount,
		randomStart:   opts.RandomStart,
		rng:           opts.Rand,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
	}
	if e.shiftCount == 0 {
		e.shiftCount = DefaultShiftCount
	}
	if e.rng == nil {
		e.rng = globalRand{}
	}
	if e.maxIterations <= 0 {
		e.maxIterations = DefaultMaxShiftIterations
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// ExtractMeanShiftColours opens src, runs opts.ShiftCount mean-shift searches
// with the given radius and closes it again.
func ExtractMeanShiftColours(src pixbuf.Source, radius float64, opts MeanShiftOptions) ([]Code, error) {
	v, err := openSource(src)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return NewMeanShiftExtractor(radius, opts).Shift(v)
}

// Extract runs count mean-shift searches over src and returns the modes as
// an unweighted palette. A zero count uses the configured shift count.
func (e *MeanShiftExtractor) Extract(src pixbuf.Source, count int) (*Palette, error) {
	v, err := openSource(src)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if count < 0 {
		return nil, fmt.Errorf("%w: shift count must be at least 1, got %d", ErrInvalidArgument, count)
	}

	run := *e
	if count > 0 {
		run.shiftCount = count
	}
	modes, err := run.Shift(v)
	if err != nil {
		return nil, err
	}
	return PaletteFromCodes(modes), nil
}

// Shift indexes every pixel of v and returns one converged colour per run.
func (e *MeanShiftExtractor) Shift(v *pixbuf.View) ([]Code, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil view", ErrUnreadableSource)
	}
	if !(e.radius > 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidArgument, e.radius)
	}
	if e.shiftCount < 1 {
		return nil, fmt.Errorf("%w: shift count must be at least 1, got %d", ErrInvalidArgument, e.shiftCount)
	}

	ix := buildIndex(v)
	e.logger.Debug("mean-shift index built", "points", ix.Len(), "radius", e.radius)

	var modes []Code
	for run := 0; run < e.shiftCount; run++ {
		centre, err := e.converge(ix, e.start(v), run)
		if err != nil {
			return nil, err
		}
		modes = append(modes, PackClamped(int(centre[0]), int(centre[1]), int(centre[2])))
	}
	return modes, nil
}

// start returns the initial query centre of a run.
func (e *MeanShiftExtractor) start(v *pixbuf.View) spatial.Point {
	if !e.randomStart {
		return spatial.Point{}
	}
	r, g, b := Unpack(Code(v.PixelAt(e.rng.Intn(v.Width), e.rng.Intn(v.Height))))
	return spatial.Point{float64(r), float64(g), float64(b)}
}

// converge moves centre to the mean of its neighbourhood until the move is
// no larger than the threshold.
func (e *MeanShiftExtractor) converge(ix *spatial.Index, centre spatial.Point, run int) (spatial.Point, error) {
	for iter := 1; ; iter++ {
		next, ok := spatial.Centroid(ix.WithinRadius(centre, e.radius))
		if !ok {
			return centre, &EmptyRangeError{Run: run, Iteration: iter, Centre: centre, Radius: e.radius}
		}

		moved := centre.SquaredDistance(next)
		centre = next
		if moved <= meanShiftThreshold {
			e.logger.Trace("mean-shift run converged", "run", run, "iterations", iter, "centre", centre)
			return centre, nil
		}
		if iter >= e.maxIterations {
			e.logger.Warn("mean-shift run hit iteration limit", "run", run, "iterations", iter, "moved", moved)
			return centre, nil
		}
	}
}

// buildIndex inserts every pixel's colour into a fresh index, duplicates included.
func buildIndex(v *pixbuf.View) *spatial.Index {
	points := make([]spatial.Point, 0, v.Pixels())
	v.Each(func(_, _ int, px uint32) {
		r, g, b := Unpack(Code(px))
		points = append(points, spatial.Point{float64(r), float64(g), float64(b)})
	})
	return spatial.New(points)
}
