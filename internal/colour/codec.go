// Package colour provides dominant colour extraction from pixel buffers.
package colour

const (
	alphaMask  Code = 0xFF000000
	blueMask   Code = 0x00FF0000
	blueShift       = 16
	greenMask  Code = 0x0000FF00
	greenShift      = 8
	redMask    Code = 0x000000FF
)

// Code is a packed colour in the pixel buffer's native channel order:
// red in the low byte, then green, blue and alpha.
type Code uint32

// Unassigned is the code given to a k-means centroid that ended a round with
// no members. It is the maximum packed value and so collides with opaque
// white; use Centroid.Empty to tell the two apart.
const Unassigned Code = 0xFFFFFFFF

// opaque forces the alpha byte of a raw pixel to 0xFF.
func opaque(px uint32) Code {
	return Code(px) | alphaMask
}

// Pack combines three channels into an opaque Code.
// Each channel is truncated to its low 8 bits, not clamped.
func Pack(r, g, b int) Code {
	return alphaMask |
		((Code(b) << blueShift) & blueMask) |
		((Code(g) << greenShift) & greenMask) |
		(Code(r) & redMask)
}

// PackClamped clamps each channel to [0, 255] before packing.
func PackClamped(r, g, b int) Code {
	return Pack(Clamp(r), Clamp(g), Clamp(b))
}

// Unpack extracts the red, green and blue channels of c.
func Unpack(c Code) (r, g, b int) {
	return int(c & redMask), int((c & greenMask) >> greenShift), int((c & blueMask) >> blueShift)
}

// SwapOrder exchanges the red and blue channels, converting between the
// native ABGR order and the ARGB order used by most destination formats.
func SwapOrder(c Code) Code {
	r, g, b := Unpack(c)
	return Pack(b, g, r)
}

// Clamp limits v to the channel range [0, 255].
func Clamp(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

// ARGB returns c in ARGB order with an opaque alpha.
func (c Code) ARGB() uint32 {
	return uint32(SwapOrder(c))
}

// RGB returns the channels of c.
func (c Code) RGB() RGB {
	r, g, b := Unpack(c)
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// FromRGB packs an RGB value into an opaque Code.
func FromRGB(rgb RGB) Code {
	return Pack(int(rgb.R), int(rgb.G), int(rgb.B))
}
