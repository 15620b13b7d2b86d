// Package compositor turns a color classification and a frame style into the
// ordered list of masked image layers a renderer paints, bottom first.
package compositor

import (
	"errors"
	"fmt"

	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/colors"
	"github.com/arcanaland/framesmith/internal/frameerr"
	"github.com/arcanaland/framesmith/internal/geometry"
	"github.com/arcanaland/framesmith/internal/pathtmpl"
	"github.com/arcanaland/framesmith/internal/style"
)

// Frame regions, each addressed by its own mask
const (
	RegionPinline = "Pinline"
	RegionType    = "Type"
	RegionTitle   = "Title"
	RegionRules   = "Rules"
	RegionFrame   = "Frame"
	RegionBorder  = "Border"
)

const (
	rightHalfName        = "Right Half"
	crownMaskName        = "Crown"
	crownCoverName       = "Legend Crown Border Cover"
	defaultRightHalfMask = "/img/frames/maskRightHalf.png"
	defaultCrownCover    = "/img/black.png"
)

// Mask restricts a layer to a region
type Mask struct {
	Source string `json:"src"`
	Name   string `json:"name"`
}

// Layer is one image in the paint list
type Layer struct {
	Name   string        `json:"name"`
	Source string        `json:"src"`
	Masks  []Mask        `json:"masks"`
	Bounds *geometry.Box `json:"bounds,omitempty"`
}

// Options are per-invocation switches
type Options struct {
	Crowns   bool   // emit legendary crowns
	FrameSet string // value of {frame_set}, defaults to style.DefaultFrameSet
}

// Compose builds the layer list for one card: legendary crown, then the
// power/toughness box, then the main frame body. It never fails outright;
// configuration problems degrade single layers or skip optional features and
// are reported through the returned error, which joins every problem found.
func Compose(cls colors.Classification, a card.Attributes, s *style.Style, opts Options) ([]Layer, error) {
	c := &composer{style: s, opts: opts, masks: make(map[string]string), seen: make(map[string]bool)}

	var layers []Layer
	if a.IsLegendary && opts.Crowns {
		layers = append(layers, c.crown(cls)...)
	}
	if a.HasPowerToughness() {
		layers = append(layers, c.powerToughness(cls)...)
	}
	layers = append(layers, c.mainBody(cls)...)

	return layers, errors.Join(c.errs...)
}

type composer struct {
	style *style.Style
	opts  Options
	masks map[string]string
	errs  []error
	seen  map[string]bool
}

func (c *composer) report(err error) {
	if err == nil || c.seen[err.Error()] {
		return
	}
	c.seen[err.Error()] = true
	c.errs = append(c.errs, err)
}

func (c *composer) frameSet() string {
	if c.opts.FrameSet == "" {
		return style.DefaultFrameSet
	}
	return c.opts.FrameSet
}

func (c *composer) params(col colors.Color) pathtmpl.Params {
	return pathtmpl.Params{
		"frame":            c.style.FrameDir(),
		"frame_set":        c.frameSet(),
		"color_code":       col.Code,
		"color_code_lower": col.Code,
		"color_code_upper": col.Upper(),
	}
}

func (c *composer) resolve(what, template string, col colors.Color) string {
	path, err := pathtmpl.Resolve(template, c.params(col))
	if err != nil {
		c.report(fmt.Errorf("%s: %w", what, err))
	}
	return path
}

func (c *composer) rightHalf() Mask {
	src := c.style.Paths.RightHalfMask
	if src == "" {
		src = defaultRightHalfMask
	}
	return Mask{Source: src, Name: rightHalfName}
}

func (c *composer) mask(region string) Mask {
	if src, ok := c.masks[region]; ok {
		return Mask{Source: src, Name: region}
	}

	src, ok := c.style.MaskSource(region)
	if !ok {
		params := pathtmpl.Params{
			"frame":     c.style.FrameDir(),
			"frame_set": c.frameSet(),
			"mask_name": c.style.MaskToken(region),
		}
		var err error
		src, err = pathtmpl.Resolve(c.style.Paths.Mask, params)
		if err != nil {
			c.report(fmt.Errorf("%s mask: %w", region, err))
		}
	}
	c.masks[region] = src
	return Mask{Source: src, Name: region}
}

// crown emits the secondary half, the primary crown and the border cover
func (c *composer) crown(cls colors.Classification) []Layer {
	s := c.style
	if s.Paths.Crown == "" || s.Bounds.Crown == nil || s.Bounds.CrownCover == nil {
		c.report(fmt.Errorf("%w: legendary crown needs paths.crown, bounds.crown and bounds.crown_cover in style %s",
			frameerr.ErrMisconfiguredFrameStyle, s.ID))
		return nil
	}

	cols := crownColors(cls)
	var shape []Mask
	if s.Paths.CrownMask != "" {
		shape = []Mask{{Source: s.Paths.CrownMask, Name: crownMaskName}}
	}

	var layers []Layer
	if len(cols) > 1 {
		layers = append(layers, Layer{
			Name:   cols[1].Name + " Legend Crown",
			Source: c.resolve("legend crown", s.Paths.Crown, cols[1]),
			Masks:  append(append([]Mask{}, shape...), c.rightHalf()),
			Bounds: copyBox(s.Bounds.Crown),
		})
	}
	layers = append(layers, Layer{
		Name:   cols[0].Name + " Legend Crown",
		Source: c.resolve("legend crown", s.Paths.Crown, cols[0]),
		Masks:  append([]Mask{}, shape...),
		Bounds: copyBox(s.Bounds.Crown),
	})

	cover := s.Paths.CrownCover
	if cover == "" {
		cover = defaultCrownCover
	}
	layers = append(layers, Layer{
		Name:   crownCoverName,
		Source: cover,
		Masks:  []Mask{},
		Bounds: copyBox(s.Bounds.CrownCover),
	})
	return layers
}

func (c *composer) powerToughness(cls colors.Classification) []Layer {
	s := c.style
	if s.Paths.PowerToughness == "" || s.Bounds.PowerToughness == nil {
		c.report(fmt.Errorf("%w: power/toughness box needs paths.power_toughness and bounds.power_toughness in style %s",
			frameerr.ErrMisconfiguredFrameStyle, s.ID))
		return nil
	}

	col := ptColor(cls)
	return []Layer{{
		Name:   col.Name + " Power/Toughness",
		Source: c.resolve("power/toughness", s.Paths.PowerToughness, col),
		Masks:  []Mask{},
		Bounds: copyBox(s.Bounds.PowerToughness),
	}}
}

// mainBody emits the two-tone frame when a secondary color exists and the
// six single-color layers otherwise.
func (c *composer) mainBody(cls colors.Classification) []Layer {
	p := mainPalette(cls)

	primary := c.frameLayer(p.primary, p.land)
	base := c.frameLayer(p.base, p.land)
	if p.secondary == nil {
		return []Layer{
			primary.masked(c.mask(RegionPinline)),
			base.masked(c.mask(RegionType)),
			base.masked(c.mask(RegionTitle)),
			primary.masked(c.mask(RegionRules)),
			base.masked(c.mask(RegionFrame)),
			base.masked(c.mask(RegionBorder)),
		}
	}

	secondary := c.frameLayer(*p.secondary, p.land)
	return []Layer{
		secondary.masked(c.mask(RegionPinline), c.rightHalf()),
		primary.masked(c.mask(RegionPinline)),
		base.masked(c.mask(RegionType)),
		base.masked(c.mask(RegionTitle)),
		secondary.masked(c.mask(RegionRules), c.rightHalf()),
		primary.masked(c.mask(RegionRules)),
		base.masked(c.mask(RegionFrame)),
		base.masked(c.mask(RegionBorder)),
	}
}

type frameImage struct {
	name   string
	source string
}

func (f frameImage) masked(masks ...Mask) Layer {
	return Layer{Name: f.name, Source: f.source, Masks: masks}
}

// frameLayer picks the template for a color. Colors a land produces use the
// land frame template when the style has one.
func (c *composer) frameLayer(col colors.Color, land bool) frameImage {
	if col == colors.LandC {
		return frameImage{name: "Land Frame", source: c.resolve("land frame", c.style.Paths.Frame, col)}
	}
	if land && c.style.Paths.LandFrame != "" {
		return frameImage{
			name:   col.Name + " Land Frame",
			source: c.resolve(col.Name+" land frame", c.style.Paths.LandFrame, col),
		}
	}
	return frameImage{name: col.Name + " Frame", source: c.resolve(col.Name+" frame", c.style.Paths.Frame, col)}
}

// copyBox gives a layer its own bounds so results never share the style's.
func copyBox(b *geometry.Box) *geometry.Box {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
