package image

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultSide is the square the CLI fits images into before clustering.
const DefaultSide = 50

// FitInSquare scales img down with nearest-neighbour sampling until neither
// side exceeds side, keeping the aspect ratio. The shorter side is truncated
// and never drops below one pixel. Images already within the square, or a
// non-positive side, are returned unchanged.
func FitInSquare(img image.Image, side int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if side <= 0 || (w <= side && h <= side) {
		return img
	}

	dw, dh := side, side
	if w > h {
		dh = max(1, int(float64(side)*float64(h)/float64(w)))
	} else {
		dw = max(1, int(float64(side)*float64(w)/float64(h)))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToNRGBA returns img as a non-premultiplied RGBA image with its origin at
// (0, 0), copying only when img is some other type.
func ToNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
