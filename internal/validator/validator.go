package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/framesmith/internal/compositor"
	"github.com/arcanaland/framesmith/internal/geometry"
	"github.com/arcanaland/framesmith/internal/pathtmpl"
	"github.com/arcanaland/framesmith/internal/style"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	StylePath string
	Results   ValidationResults
}

func NewValidator(stylePath string) *Validator {
	return &Validator{
		StylePath: stylePath,
		Results:   ValidationResults{},
	}
}

var (
	framePlaceholders = map[string]bool{
		"frame":            true,
		"frame_set":        true,
		"color_code":       true,
		"color_code_lower": true,
		"color_code_upper": true,
	}
	maskRegions = []string{
		compositor.RegionPinline,
		compositor.RegionType,
		compositor.RegionTitle,
		compositor.RegionRules,
		compositor.RegionFrame,
		compositor.RegionBorder,
	}
)

// Validate parses the style file and checks it. Parse failures are returned
// as an error; everything else is collected in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if _, err := os.Stat(v.StylePath); os.IsNotExist(err) {
		return v.Results, fmt.Errorf("style file not found: %s", v.StylePath)
	}

	var s style.Style
	md, err := toml.DecodeFile(v.StylePath, &s)
	if err != nil {
		return v.Results, fmt.Errorf("error parsing %s: %v", v.StylePath, err)
	}

	for _, key := range md.Undecoded() {
		v.warn("unknown key %s", key.String())
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(v.StylePath), filepath.Ext(v.StylePath))
		v.warn("id not set, using file name %q", s.ID)
	}

	v.check(&s)
	return v.Results, nil
}

// CheckStyle runs the semantic checks on an already loaded style
func CheckStyle(s *style.Style) ValidationResults {
	v := &Validator{StylePath: s.Source}
	v.check(s)
	return v.Results
}

func (v *Validator) check(s *style.Style) {
	v.validateIdentity(s)
	v.validatePaths(s)
	v.validateBounds(s)
	v.validateDefaults(s)
	v.validateText(s)
}

func (v *Validator) fail(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warn(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateIdentity(s *style.Style) {
	if s.Name == "" {
		v.fail("name is required")
	}
	if s.Width <= 0 || s.Height <= 0 {
		v.fail("width and height must be positive (got %dx%d)", s.Width, s.Height)
	}
	if s.Version == "" {
		v.warn("version not set, the renderer will receive %q", s.ID)
	}
}

func (v *Validator) validatePaths(s *style.Style) {
	p := s.Paths
	v.validateTemplate("paths.frame", p.Frame, true, nil)
	v.validateTemplate("paths.land_frame", p.LandFrame, false, nil)
	v.validateTemplate("paths.power_toughness", p.PowerToughness, false, nil)
	v.validateTemplate("paths.crown", p.Crown, false, nil)

	var unsourced []string
	for _, region := range maskRegions {
		if _, ok := s.MaskSource(region); !ok {
			unsourced = append(unsourced, strings.ToLower(region))
		}
	}
	if len(unsourced) > 0 {
		v.validateTemplate("paths.mask", p.Mask, true, map[string]bool{"mask_name": true})
	}
	for region := range s.Masks.Names {
		if !isRegion(region) {
			v.warn("masks.names.%s is not a mask region", region)
		}
	}
	for region := range s.Masks.Sources {
		if !isRegion(region) {
			v.warn("masks.sources.%s is not a mask region", region)
		}
	}

	if p.PowerToughness != "" && s.Bounds.PowerToughness == nil {
		v.fail("paths.power_toughness is set but bounds.power_toughness is missing")
	}
	if s.Bounds.PowerToughness != nil && p.PowerToughness == "" {
		v.warn("bounds.power_toughness is set but paths.power_toughness is missing")
	}
	if p.Crown != "" && s.Bounds.Crown == nil {
		v.fail("paths.crown is set but bounds.crown is missing")
	}
	if p.Crown != "" && s.Bounds.CrownCover == nil {
		v.warn("bounds.crown_cover is missing, legend crowns will not cover the title bar")
	}

	if s.UsesFrameSet && !usesPlaceholder(s, "frame_set") {
		v.warn("uses_frame_set is true but no template uses {frame_set}")
	}
	if !s.UsesFrameSet && usesPlaceholder(s, "frame_set") {
		v.warn("templates use {frame_set} but uses_frame_set is false; %q will be substituted", style.DefaultFrameSet)
	}
}

func (v *Validator) validateTemplate(field, tmpl string, required bool, extra map[string]bool) {
	if tmpl == "" {
		if required {
			v.fail("%s is required", field)
		}
		return
	}
	for _, name := range pathtmpl.Placeholders(tmpl) {
		if !framePlaceholders[name] && !extra[name] {
			v.fail("%s uses unknown placeholder {%s}", field, name)
		}
	}
}

func usesPlaceholder(s *style.Style, name string) bool {
	p := s.Paths
	for _, tmpl := range []string{p.Frame, p.LandFrame, p.Mask, p.PowerToughness, p.Crown} {
		for _, n := range pathtmpl.Placeholders(tmpl) {
			if n == name {
				return true
			}
		}
	}
	return false
}

func isRegion(name string) bool {
	for _, r := range maskRegions {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

func (v *Validator) validateBounds(s *style.Style) {
	v.validateBox("bounds.art", &s.Bounds.Art, true)
	v.validateBox("bounds.set_symbol", &s.Bounds.SetSymbol, true)
	v.validateBox("bounds.watermark", &s.Bounds.Watermark, false)
	v.validateBox("bounds.power_toughness", s.Bounds.PowerToughness, false)
	v.validateBox("bounds.crown", s.Bounds.Crown, false)
	v.validateBox("bounds.crown_cover", s.Bounds.CrownCover, false)

	if a := s.SetSymbolAnchor; a != nil {
		if !inUnit(a.RightX) || !inUnit(a.CenterY) {
			v.fail("set_symbol_anchor must lie within the card (got %.4f, %.4f)", a.RightX, a.CenterY)
		}
	}
}

func (v *Validator) validateBox(field string, b *geometry.Box, required bool) {
	if b == nil {
		return
	}
	if *b == (geometry.Box{}) {
		if required {
			v.fail("%s is required", field)
		}
		return
	}
	if b.W <= 0 || b.H <= 0 {
		v.fail("%s must have positive width and height", field)
	}
	if !inUnit(b.X) || !inUnit(b.Y) || b.W > 1 || b.H > 1 {
		v.fail("%s must be relative to the card (values between 0 and 1)", field)
	}
}

func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}

func (v *Validator) validateDefaults(s *style.Style) {
	d := s.Defaults
	if d.Art.Zoom <= 0 {
		v.fail("defaults.art.zoom must be positive")
	}
	if d.SetSymbol.Zoom <= 0 {
		v.fail("defaults.set_symbol.zoom must be positive")
	}

	w := d.Watermark
	if w.Source == "" {
		v.warn("defaults.watermark.source not set")
	}
	for field, value := range map[string]string{"left": w.Left, "right": w.Right} {
		if value == "" || value == "none" {
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			v.fail("defaults.watermark.%s is not a hex color: %q", field, value)
		}
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		v.fail("defaults.watermark.opacity must be between 0 and 1")
	}
}

func (v *Validator) validateText(s *style.Style) {
	for _, key := range []string{"mana", "title", "type", "rules", "pt"} {
		if _, ok := s.Text[key]; !ok {
			v.warn("text.%s is not defined", key)
		}
	}

	keys := make([]string, 0, len(s.Text))
	for key := range s.Text {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		box := s.Text[key]
		if box.Number("width", 0) <= 0 || box.Number("height", 0) <= 0 {
			v.fail("text.%s needs a positive width and height", key)
		}
	}

	if s.AlwaysManaSymbols && len(s.ManaSymbols) == 0 {
		v.warn("always_mana_symbols is set but mana_symbols is empty")
	}
}
