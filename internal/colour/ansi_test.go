package colour

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 1, G: 2, B: 3}, 4)
	assert.Equal(t, "\033[48;2;1;2;3m    \033[0m", got)

	got = ColourPreview(RGB{}, 0)
	assert.Equal(t, defaultWidth, strings.Count(got, " "))
}

func TestFormatColourWithPreview(t *testing.T) {
	got := FormatColourWithPreview(RGB{R: 255}, 2)
	assert.True(t, strings.HasSuffix(got, " #ff0000"))
}

func TestSupportsANSIColours(t *testing.T) {
	assert.False(t, SupportsANSIColours(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, SupportsANSIColours(f), "regular files are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, SupportsANSIColours(os.Stdout))
}
