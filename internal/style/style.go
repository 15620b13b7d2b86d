// Package style loads frame styles: the per-skin path templates, bounds and
// defaults that drive layer composition.
package style

import (
	"strings"

	"github.com/arcanaland/framesmith/internal/geometry"
)

// DefaultFrameSet is used for the {frame_set} placeholder when none is given
const DefaultFrameSet = "regular"

// Style represents a frame style. It is loaded once and shared read-only.
type Style struct {
	ID                string  `toml:"id"`
	Name              string  `toml:"name"`
	Version           string  `toml:"version"`   // Renderer version string
	AssetDir          string  `toml:"asset_dir"` // Value of {frame}, defaults to ID
	Width             int     `toml:"width"`
	Height            int     `toml:"height"`
	MarginX           float64 `toml:"margin_x"`
	MarginY           float64 `toml:"margin_y"`
	UsesFrameSet      bool    `toml:"uses_frame_set"`
	ShowsFlavorBar    bool    `toml:"shows_flavor_bar"`
	NoCorners         bool    `toml:"no_corners"`
	PTStarAsX         bool    `toml:"pt_star_as_x"`
	AlwaysManaSymbols bool    `toml:"always_mana_symbols"`

	ManaSymbols     []string           `toml:"mana_symbols"`
	Paths           Paths              `toml:"paths"`
	Masks           Masks              `toml:"masks"`
	Bounds          Bounds             `toml:"bounds"`
	SetSymbolAnchor *geometry.Anchor   `toml:"set_symbol_anchor"`
	Defaults        Defaults           `toml:"defaults"`
	Text            map[string]TextBox `toml:"text"`
	BottomInfo      map[string]TextBox `toml:"bottom_info"`

	// Source is the file the style was loaded from, or "builtin"
	Source string `toml:"-"`
}

// Paths holds the asset path templates of a style
type Paths struct {
	Frame          string `toml:"frame"`
	LandFrame      string `toml:"land_frame"`
	Mask           string `toml:"mask"`
	PowerToughness string `toml:"power_toughness"`
	Crown          string `toml:"crown"`
	CrownMask      string `toml:"crown_mask"`
	CrownCover     string `toml:"crown_cover"`
	RightHalfMask  string `toml:"right_half_mask"`
}

// Masks customizes how region masks are located. Names maps a region to the
// token substituted for {mask_name}; Sources maps a region to a fixed path.
type Masks struct {
	Names   map[string]string `toml:"names"`
	Sources map[string]string `toml:"sources"`
}

// Bounds holds the relative boxes of a style. Optional features use pointers.
type Bounds struct {
	Art            geometry.Box  `toml:"art"`
	SetSymbol      geometry.Box  `toml:"set_symbol"`
	Watermark      geometry.Box  `toml:"watermark"`
	PowerToughness *geometry.Box `toml:"power_toughness"`
	Crown          *geometry.Box `toml:"crown"`
	CrownCover     *geometry.Box `toml:"crown_cover"`
}

// Defaults are the static placements used when auto-fit is off or fails
type Defaults struct {
	Art       ArtDefault         `toml:"art"`
	SetSymbol geometry.Placement `toml:"set_symbol"`
	Watermark Watermark          `toml:"watermark"`
}

// ArtDefault is the static art placement
type ArtDefault struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Zoom   float64 `toml:"zoom"`
	Rotate string  `toml:"rotate"`
}

// Watermark is the static watermark placement and tint
type Watermark struct {
	Source  string  `toml:"source"`
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Zoom    float64 `toml:"zoom"`
	Left    string  `toml:"left"`
	Right   string  `toml:"right"`
	Opacity float64 `toml:"opacity"`
}

// TextBox is a renderer text box definition, passed through as-is
type TextBox map[string]any

// Number returns a numeric field of the box, or fallback when absent
func (t TextBox) Number(key string, fallback float64) float64 {
	switch v := t[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return fallback
}

// With returns a copy of the box with the given fields set
func (t TextBox) With(fields map[string]any) TextBox {
	out := make(TextBox, len(t)+len(fields))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// CardSize returns the card dimensions in pixels
func (s *Style) CardSize() geometry.Size {
	return geometry.Size{W: float64(s.Width), H: float64(s.Height)}
}

// FrameDir returns the value substituted for {frame}
func (s *Style) FrameDir() string {
	if s.AssetDir != "" {
		return s.AssetDir
	}
	return s.ID
}

// VersionString returns the renderer version, falling back to the style id
func (s *Style) VersionString() string {
	if s.Version != "" {
		return s.Version
	}
	return s.ID
}

// MaskToken returns the {mask_name} value for a region. Without an explicit
// name the lowercase region name is used.
func (s *Style) MaskToken(region string) string {
	if name, ok := s.Masks.Names[strings.ToLower(region)]; ok && name != "" {
		return name
	}
	return strings.ToLower(region)
}

// MaskSource returns the fixed mask path configured for a region, if any
func (s *Style) MaskSource(region string) (string, bool) {
	src, ok := s.Masks.Sources[strings.ToLower(region)]
	return src, ok && src != ""
}

// SymbolAnchor returns the set symbol anchor. Styles without an explicit
// anchor align to the set symbol box, whose x is its right edge and y its
// vertical center.
func (s *Style) SymbolAnchor() geometry.Anchor {
	if s.SetSymbolAnchor != nil {
		return *s.SetSymbolAnchor
	}
	return geometry.Anchor{RightX: s.Bounds.SetSymbol.X, CenterY: s.Bounds.SetSymbol.Y}
}
