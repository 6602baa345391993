// Package pixbuf provides a read-only view over raw RGBA pixel buffers and
// the sources that hand them out.
package pixbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one RGBA8888 pixel.
const BytesPerPixel = 4

var (
	// ErrUnreadable is returned when a source cannot be opened or has no pixels.
	ErrUnreadable = errors.New("pixel buffer unreadable")

	// ErrFormat is returned when a buffer is not laid out as RGBA8888.
	ErrFormat = errors.New("pixel buffer format not supported")
)

// Format identifies the pixel layout of a buffer.
type Format int

const (
	// FormatUnknown is the zero value and is always rejected.
	FormatUnknown Format = iota
	// FormatRGBA8888 is non-premultiplied 8-bit RGBA, one byte per channel.
	FormatRGBA8888
	// FormatRGBA8888Premultiplied is 8-bit RGBA with premultiplied alpha.
	FormatRGBA8888Premultiplied
	// FormatRGB565 is packed 16-bit RGB.
	FormatRGB565
	// FormatAlpha8 is a single 8-bit alpha channel.
	FormatAlpha8
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA_8888"
	case FormatRGBA8888Premultiplied:
		return "RGBA_8888_PREMULTIPLIED"
	case FormatRGB565:
		return "RGB_565"
	case FormatAlpha8:
		return "A_8"
	default:
		return "UNKNOWN"
	}
}

// Info describes the geometry of a pixel buffer.
type Info struct {
	Width  int
	Height int
	// Stride is the number of bytes between the start of two rows.
	// It may exceed Width*BytesPerPixel when rows are padded.
	Stride int
	Format Format
}

// Pixels returns the number of pixels described by the info.
func (i Info) Pixels() int {
	return i.Width * i.Height
}

// Validate checks that the info describes a usable RGBA8888 buffer.
func (i Info) Validate() error {
	if i.Format != FormatRGBA8888 {
		return fmt.Errorf("%w: got %s, want %s", ErrFormat, i.Format, FormatRGBA8888)
	}
	if i.Width <= 0 || i.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, i.Width, i.Height)
	}
	if i.Stride < i.Width*BytesPerPixel {
		return fmt.Errorf("%w: stride %d shorter than row of %d pixels", ErrFormat, i.Stride, i.Width)
	}
	return nil
}

// View is a read-only view over an RGBA8888 pixel buffer.
// The view does not own the buffer and must not outlive the source it came from.
type View struct {
	Info
	pix []byte
}

// NewView validates the info against the buffer and returns a view over it.
func NewView(info Info, pix []byte) (*View, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if pix == nil {
		return nil, fmt.Errorf("%w: nil pixel buffer", ErrUnreadable)
	}

	// The last row only needs to hold its pixels, not the padding.
	need := info.Stride*(info.Height-1) + info.Width*BytesPerPixel
	if len(pix) < need {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d", ErrFormat, len(pix), need)
	}

	return &View{Info: info, pix: pix}, nil
}

// PixelAt returns the pixel at (x, y) as the native 32-bit value: red in the
// low byte, then green, blue and alpha.
// Coordinates must satisfy 0 <= x < Width and 0 <= y < Height.
func (v *View) PixelAt(x, y int) uint32 {
	off := y*v.Stride + x*BytesPerPixel
	return binary.LittleEndian.Uint32(v.pix[off : off+BytesPerPixel])
}

// Row returns the pixel bytes of row y with the stride padding removed.
func (v *View) Row(y int) []byte {
	off := y * v.Stride
	return v.pix[off : off+v.Width*BytesPerPixel]
}

// Each calls fn for every pixel in row-major order, skipping row padding.
func (v *View) Each(fn func(x, y int, px uint32)) {
	for y := 0; y < v.Height; y++ {
		row := v.Row(y)
		for x := 0; x < v.Width; x++ {
			fn(x, y, binary.LittleEndian.Uint32(row[x*BytesPerPixel:]))
		}
	}
}
