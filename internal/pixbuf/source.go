// Package pixbuf provides a read-only view over raw RGBA pixel buffers and
// the sources that hand them out.
package pixbuf

import (
	"fmt"
	"image"
)

// Source hands out a View for the duration of one clustering call.
// Open locks the underlying pixels for reading and Close releases them.
type Source interface {
	Open() (*View, error)
	Close() error
}

// BufferSource serves a raw pixel buffer supplied by the caller.
type BufferSource struct {
	info Info
	pix  []byte
	err  error
}

// NewBufferSource creates a source over a raw buffer described by info.
func NewBufferSource(info Info, pix []byte) *BufferSource {
	return &BufferSource{info: info, pix: pix}
}

// Open validates the buffer and returns a view over it.
// The buffer is caller-owned, so concurrent opens share the same pixels.
func (s *BufferSource) Open() (*View, error) {
	if s.err != nil {
		return nil, s.err
	}
	return NewView(s.info, s.pix)
}

// Close is a no-op; the caller owns the buffer.
func (s *BufferSource) Close() error {
	return nil
}

// NewImageSource creates a source over a decoded image.
// Only *image.NRGBA is accepted as-is; any other image type is reported as an
// unsupported format when opened. Use image.ToNRGBA to convert first.
func NewImageSource(img image.Image) *BufferSource {
	if img == nil {
		return &BufferSource{err: fmt.Errorf("%w: nil image", ErrUnreadable)}
	}

	switch m := img.(type) {
	case *image.NRGBA:
		b := m.Bounds()
		// Sub-images share Pix with their parent; start at the first visible pixel.
		pix := m.Pix
		if !b.Empty() {
			pix = m.Pix[m.PixOffset(b.Min.X, b.Min.Y):]
		}
		return NewBufferSource(Info{
			Width:  b.Dx(),
			Height: b.Dy(),
			Stride: m.Stride,
			Format: FormatRGBA8888,
		}, pix)
	case *image.RGBA:
		b := m.Bounds()
		return NewBufferSource(Info{
			Width:  b.Dx(),
			Height: b.Dy(),
			Stride: m.Stride,
			Format: FormatRGBA8888Premultiplied,
		}, m.Pix)
	default:
		b := img.Bounds()
		return NewBufferSource(Info{
			Width:  b.Dx(),
			Height: b.Dy(),
			Format: FormatUnknown,
		}, nil)
	}
}
