// Package upscale enlarges art before it is hosted.
package upscale

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// Model is the name reported by the Lanczos upscaler
const Model = "lanczos"

// Local resizes images in-process with a Lanczos filter. It implements
// ports.Upscaler.
type Local struct {
	factor int
}

// NewLocal creates an upscaler for the given factor. Factors below 2 are
// raised to 2.
func NewLocal(factor int) *Local {
	if factor < 2 {
		factor = 2
	}
	return &Local{factor: factor}
}

// Upscale decodes data, resizes it by the factor and encodes it as PNG
func (l *Local) Upscale(ctx context.Context, data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("error decoding art: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	out := imaging.Resize(img, b.Dx()*l.factor, b.Dy()*l.factor, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error encoding upscaled art: %w", err)
	}
	return buf.Bytes(), nil
}

// Factor returns the scale factor
func (l *Local) Factor() int { return l.factor }

// Model returns the model name used in storage paths
func (l *Local) Model() string { return Model }
