package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRender(t *testing.T) {
	art := Render(solid(200, 100, color.RGBA{R: 255, A: 255}), 20)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")

	assert.Len(t, lines, 5)
	for _, l := range lines {
		assert.Equal(t, 20, VisibleWidth(l))
	}
	assert.Contains(t, lines[0], "\x1b[38;2;255;0;0m")
	assert.Empty(t, Render(solid(0, 0, color.Black), 20))
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(3, 2, color.White)))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = Decode([]byte(`<svg viewBox="0 0 1 1"/>`))
	assert.Error(t, err)
}

func TestCached(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	render := func() (string, error) {
		calls++
		return "art", nil
	}

	for i := 0; i < 2; i++ {
		art, err := Cached(dir, "https://cards.example/a.jpg", render)
		require.NoError(t, err)
		assert.Equal(t, "art", art)
	}
	assert.Equal(t, 1, calls)

	_, err := Cached(dir, "other", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
}

func TestWrapText(t *testing.T) {
	lines := WrapText("Flying\nWhen this creature enters, draw a card.", 20)
	assert.Equal(t, []string{"Flying", "When this creature", "enters, draw a card."}, lines)
}

func TestSideBySide(t *testing.T) {
	var buf bytes.Buffer
	SideBySide(&buf, "\x1b[31mAB\x1b[0m\nCD\n", []string{"one", "two", "three"})
	out := strings.Split(buf.String(), "\n")
	assert.Equal(t, "  \x1b[31mAB\x1b[0m    one", out[1])
	assert.Equal(t, "  CD    two", out[2])
	assert.Equal(t, "        three", out[3])
}

func TestArtWidth(t *testing.T) {
	assert.Equal(t, 40, ArtWidth(80))
	assert.Equal(t, 48, ArtWidth(200))
	assert.Equal(t, 16, ArtWidth(20))
}
