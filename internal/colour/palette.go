// Package colour provides dominant colour extraction from pixel buffers.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
)

// Palette represents a collection of colors extracted from an image.
// Weights, when present, is index-aligned with Colors.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colors.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a new Palette whose colors carry the fraction
// of the image they cover.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// PaletteFromCentroids converts k-means output into a weighted palette.
func PaletteFromCentroids(centroids []Centroid) *Palette {
	colors := make([]color.Color, len(centroids))
	weights := make([]float64, len(centroids))
	for i, c := range centroids {
		colors[i] = c.Code.RGB().Color()
		weights[i] = c.Fraction
	}
	return NewPaletteWithWeights(colors, weights)
}

// PaletteFromCodes converts packed colours into an unweighted palette.
func PaletteFromCodes(codes []Code) *Palette {
	colors := make([]color.Color, len(codes))
	for i, c := range codes {
		colors[i] = c.RGB().Color()
	}
	return NewPalette(colors)
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// HasWeights reports whether every color carries a weight.
func (p *Palette) HasWeights() bool {
	return len(p.Weights) == len(p.Colors) && len(p.Colors) > 0
}

// SortByWeight orders the colors by descending weight. Ties keep their
// original order. Palettes without weights are left untouched.
func (p *Palette) SortByWeight() {
	if !p.HasWeights() {
		return
	}
	sort.Stable(byWeight{p})
}

type byWeight struct{ p *Palette }

func (b byWeight) Len() int           { return len(b.p.Colors) }
func (b byWeight) Less(i, j int) bool { return b.p.Weights[i] > b.p.Weights[j] }
func (b byWeight) Swap(i, j int) {
	b.p.Colors[i], b.p.Colors[j] = b.p.Colors[j], b.p.Colors[i]
	b.p.Weights[i], b.p.Weights[j] = b.p.Weights[j], b.p.Weights[i]
}

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Color returns rgb as an opaque color.RGBA.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ToHex converts the palette colors to hex strings.
// Returns a slice of hex color codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = ToRGB(c).Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colors to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
	// ARGB is the packed 0xAARRGGBB value used by most host color APIs.
	ARGB   uint32   `json:"argb"`
	Weight *float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	weighted := p.HasWeights()
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex:  rgb.Hex(),
			RGB:  rgb,
			ARGB: FromRGB(rgb).ARGB(),
		}
		if weighted {
			w := p.Weights[i]
			colors[i].Weight = &w
		}
	}

	paletteJSON := PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	weighted := p.HasWeights()
	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		if weighted {
			result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, rgb.Hex(), rgb.String(), p.Weights[i]*100)
		} else {
			result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, rgb.Hex(), rgb.String())
		}
	}
	return result
}

// All returns an iterator over all colors in the palette using Go 1.23 range over functions.
func (p *Palette) All() func(func(int, color.Color) bool) {
	return func(yield func(int, color.Color) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
