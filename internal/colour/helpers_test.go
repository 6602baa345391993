package colour

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/domcol/internal/pixbuf"
)

// imageSource builds a w x h source from row-major pixels.
func imageSource(w, h int, pixels []color.NRGBA) *pixbuf.BufferSource {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range pixels {
		img.SetNRGBA(i%w, i/w, c)
	}
	return pixbuf.NewImageSource(img)
}

// solidSource builds a w x h source filled with c.
func solidSource(w, h int, c color.NRGBA) *pixbuf.BufferSource {
	pixels := make([]color.NRGBA, w*h)
	for i := range pixels {
		pixels[i] = c
	}
	return imageSource(w, h, pixels)
}

// paddedSource builds a source whose rows carry padPixels of padding filled
// with the pad colour.
func paddedSource(w, h, padPixels int, px, pad color.NRGBA) *pixbuf.BufferSource {
	stride := (w + padPixels) * pixbuf.BytesPerPixel
	buf := make([]byte, 0, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf = append(buf, px.R, px.G, px.B, px.A)
		}
		for x := 0; x < padPixels; x++ {
			buf = append(buf, pad.R, pad.G, pad.B, pad.A)
		}
	}
	return pixbuf.NewBufferSource(pixbuf.Info{
		Width:  w,
		Height: h,
		Stride: stride,
		Format: pixbuf.FormatRGBA8888,
	}, buf)
}

func openView(t *testing.T, src pixbuf.Source) *pixbuf.View {
	t.Helper()
	v, err := src.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return v
}

// seqRand replays a fixed sequence of values, each reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func nrgba(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
