// Package geometry computes art and set-symbol placement in the card's
// relative (0..1) coordinate space.
package geometry

import (
	"fmt"
	"math"

	"github.com/arcanaland/framesmith/internal/frameerr"
)

// minZoom is the smallest zoom treated as non-degenerate
const minZoom = 1e-6

// Size is a width and height in pixels
type Size struct {
	W float64 `toml:"width" json:"width"`
	H float64 `toml:"height" json:"height"`
}

// Box is a rectangle relative to the card dimensions
type Box struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
	W float64 `toml:"width" json:"width"`
	H float64 `toml:"height" json:"height"`
}

// Anchor is the point a contain-fitted set symbol is aligned to
type Anchor struct {
	RightX  float64 `toml:"right_x" json:"rightX"`
	CenterY float64 `toml:"center_y" json:"centerY"`
}

// Placement positions an image on the card
type Placement struct {
	X    float64 `toml:"x" json:"x" yaml:"x"`
	Y    float64 `toml:"y" json:"y" yaml:"y"`
	Zoom float64 `toml:"zoom" json:"zoom" yaml:"zoom"`
}

// CoverFit scales an image of the natural size so that it fills box,
// cropping the overflow, and centers it on the box.
func CoverFit(natural Size, box Box, cardSize Size) (Placement, error) {
	if err := checkDims(natural, box, cardSize); err != nil {
		return Placement{}, err
	}

	absW := box.W * cardSize.W
	absH := box.H * cardSize.H
	zoom := math.Max(absW/natural.W, absH/natural.H)
	if zoom <= minZoom {
		return Placement{}, fmt.Errorf("%w: zoom %g too small", frameerr.ErrInvalidGeometry, zoom)
	}

	return Placement{
		X:    box.X + (absW-natural.W*zoom)/2/cardSize.W,
		Y:    box.Y + (absH-natural.H*zoom)/2/cardSize.H,
		Zoom: zoom,
	}, nil
}

// ContainFit scales an image of the natural size to fit entirely inside the
// box size, then right-aligns it to anchor.RightX and centers it vertically
// on anchor.CenterY. The box position is not used.
func ContainFit(natural Size, box Box, anchor Anchor, cardSize Size) (Placement, error) {
	if err := checkDims(natural, box, cardSize); err != nil {
		return Placement{}, err
	}

	zoom := math.Min(box.W*cardSize.W/natural.W, box.H*cardSize.H/natural.H)
	if zoom <= minZoom {
		return Placement{}, fmt.Errorf("%w: zoom %g too small", frameerr.ErrInvalidGeometry, zoom)
	}

	scaledW := natural.W * zoom / cardSize.W
	scaledH := natural.H * zoom / cardSize.H
	return Placement{
		X:    anchor.RightX - scaledW,
		Y:    anchor.CenterY - scaledH/2,
		Zoom: zoom,
	}, nil
}

func checkDims(natural Size, box Box, cardSize Size) error {
	switch {
	case natural.W <= 0 || natural.H <= 0:
		return fmt.Errorf("%w: natural size %gx%g", frameerr.ErrInvalidGeometry, natural.W, natural.H)
	case box.W <= 0 || box.H <= 0:
		return fmt.Errorf("%w: box size %gx%g", frameerr.ErrInvalidGeometry, box.W, box.H)
	case cardSize.W <= 0 || cardSize.H <= 0:
		return fmt.Errorf("%w: card size %gx%g", frameerr.ErrInvalidGeometry, cardSize.W, cardSize.H)
	}
	return nil
}
