// Package colour provides dominant colour extraction from pixel buffers.
package colour

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/domcol/internal/pixbuf"
)

var (
	// ErrUnreadableSource is returned when the image source cannot be opened
	// or locked for reading.
	ErrUnreadableSource = errors.New("image source unreadable")

	// ErrUnsupportedFormat is returned when the pixels are not 8-bit RGBA.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrSeedingExhausted is returned when k-means cannot find enough
	// distinct seed colours within its attempt budget.
	ErrSeedingExhausted = errors.New("seeding exhausted")

	// ErrEmptyRange is returned when a mean-shift query sphere holds no points.
	ErrEmptyRange = errors.New("no points in range")

	// ErrInvalidArgument is returned for out-of-range parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

// SeedingError reports a k-means seeding run that gave up.
type SeedingError struct {
	Wanted   int
	Found    int
	Attempts int
}

func (e *SeedingError) Error() string {
	return fmt.Sprintf("seeding exhausted: found %d of %d distinct colours after %d attempts",
		e.Found, e.Wanted, e.Attempts)
}

func (e *SeedingError) Unwrap() error { return ErrSeedingExhausted }

// EmptyRangeError reports a mean-shift query that found no points.
type EmptyRangeError struct {
	Run       int
	Iteration int
	Centre    [3]float64
	Radius    float64
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no points in range: run %d iteration %d, centre (%.1f, %.1f, %.1f), radius %g",
		e.Run, e.Iteration, e.Centre[0], e.Centre[1], e.Centre[2], e.Radius)
}

func (e *EmptyRangeError) Unwrap() error { return ErrEmptyRange }

// IsInputError reports whether err was caused by a bad input image.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnreadableSource) || errors.Is(err, ErrUnsupportedFormat)
}

// IsConvergenceError reports whether err means the algorithm could not
// produce a result for this input and parameters.
func IsConvergenceError(err error) bool {
	return errors.Is(err, ErrSeedingExhausted) || errors.Is(err, ErrEmptyRange)
}

// openSource opens src and maps pixbuf failures onto this package's errors.
func openSource(src pixbuf.Source) (*pixbuf.View, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrUnreadableSource)
	}
	v, err := src.Open()
	if err != nil {
		return nil, translateError(err)
	}
	return v, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pixbuf.ErrFormat) {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return fmt.Errorf("%w: %w", ErrUnreadableSource, err)
}
