package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func compressXZ(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFileLoaderPNG(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.png", encodePNG(t, testImage(4, 3)))

	img, err := NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	r, g, b, _ := img.At(2, 1).RGBA()
	assert.Equal(t, uint32(20), r>>8)
	assert.Equal(t, uint32(10), g>>8)
	assert.Equal(t, uint32(128), b>>8)
}

func TestFileLoaderXZ(t *testing.T) {
	want := testImage(5, 5)
	path := writeFile(t, t.TempDir(), "in.png.xz", compressXZ(t, encodePNG(t, want)))

	img, err := NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Bounds(), img.Bounds())
	assert.Equal(t, want.At(4, 4), ToNRGBA(img).At(4, 4))
}

func TestFileLoaderXZSizeLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.png.xz", compressXZ(t, encodePNG(t, testImage(64, 64))))

	l := &FileLoader{MaxDecompressedSize: 16}
	_, err := l.Load(path)
	require.Error(t, err)
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := writeFile(t, dir, "bad.png", []byte("not an image"))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty path", "", "cannot be empty"},
		{"missing", filepath.Join(dir, "nope.png"), "not found"},
		{"directory", dir, "directory"},
		{"undecodable", garbage, "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.png", encodePNG(t, testImage(2, 2)))
	packed := writeFile(t, dir, "ok.png.xz", compressXZ(t, encodePNG(t, testImage(2, 2))))
	bad := writeFile(t, dir, "bad.png", []byte("nope"))

	assert.NoError(t, ValidateImagePath(good))
	assert.NoError(t, ValidateImagePath(packed))
	assert.NoError(t, ValidateImagePath(dir))
	assert.Error(t, ValidateImagePath(bad))
	assert.Error(t, ValidateImagePath(""))
	assert.Error(t, ValidateImagePath("https://example.com/a.png"))
	assert.Error(t, ValidateImagePath(filepath.Join(dir, "missing.png")))
}

func TestGetImageDimensions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dims.png.xz", compressXZ(t, encodePNG(t, testImage(7, 3))))

	w, h, err := GetImageDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 7, w)
	assert.Equal(t, 3, h)
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", encodePNG(t, testImage(1, 1)))
	writeFile(t, dir, "b.JPG", []byte{})
	writeFile(t, dir, "c.webp.xz", []byte{})
	writeFile(t, dir, "notes.txt", []byte("hi"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o700))

	files, err := ScanDirectoryForImages(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.png", "b.JPG", "c.webp.xz"}, names)

	_, err = ScanDirectoryForImages(t.TempDir())
	assert.Error(t, err)
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	only := writeFile(t, dir, "only.png", encodePNG(t, testImage(1, 1)))

	got, err := ResolveImagePath(dir)
	require.NoError(t, err)
	assert.Equal(t, only, got)

	got, err = ResolveImagePath(only)
	require.NoError(t, err)
	assert.Equal(t, only, got)
}

func TestSelectRandomImage(t *testing.T) {
	_, err := SelectRandomImage(nil)
	assert.Error(t, err)

	paths := []string{"a", "b", "c"}
	got, err := SelectRandomImage(paths)
	require.NoError(t, err)
	assert.Contains(t, paths, got)
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("abcdef"), 4)

	buf := make([]byte, 10)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))

	_, err = r.Read(buf)
	assert.True(t, errors.Is(err, ErrSizeLimit))

	small := NewLimitedReader(strings.NewReader("ab"), 10)
	data, err := io.ReadAll(small)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}
