package upscale

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpscale(t *testing.T) {
	src := imaging.New(20, 10, color.NRGBA{R: 0x40, G: 0x80, B: 0x20, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	up := NewLocal(4)
	out, err := up.Upscale(context.Background(), buf.Bytes())
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
	assert.Equal(t, 4, up.Factor())
	assert.Equal(t, "lanczos", up.Model())
}

func TestUpscaleRejectsGarbage(t *testing.T) {
	_, err := NewLocal(2).Upscale(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestFactorFloor(t *testing.T) {
	assert.Equal(t, 2, NewLocal(0).Factor())
}
