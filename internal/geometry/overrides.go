package geometry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides is a read-only table of hand-tuned set symbol placements, keyed
// by "<set>-<style>". Load it once and share it.
type Overrides struct {
	entries map[string]Placement
	invalid []string
}

// legacyStyleKeys maps style ids to the frame names older placement tables
// were keyed by.
var legacyStyleKeys = map[string]string{
	"eighth": "8th",
}

// OverrideKey builds the table key for a set code and frame style id
func OverrideKey(setCode, styleID string) string {
	return strings.ToLower(setCode) + "-" + strings.ToLower(styleID)
}

// lookupKeys lists the keys tried for a set and style, the style id first.
func lookupKeys(setCode, styleID string) []string {
	keys := []string{OverrideKey(setCode, styleID)}
	if legacy, ok := legacyStyleKeys[strings.ToLower(styleID)]; ok {
		keys = append(keys, OverrideKey(setCode, legacy))
	}
	return keys
}

// LoadOverrides reads a placement table from a JSON or YAML file.
// An empty path yields an empty table.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{entries: map[string]Placement{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read placement table: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes a placement table. JSON input is accepted since it
// is valid YAML. Entries that are not a mapping with numeric x, y and zoom
// are set aside and reported by Invalid.
func ParseOverrides(data []byte) (*Overrides, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode placement table: %w", err)
	}

	o := &Overrides{entries: make(map[string]Placement, len(raw))}
	for key, value := range raw {
		fields, ok := value.(map[string]any)
		if !ok {
			o.invalid = append(o.invalid, key)
			continue
		}
		x, okX := number(fields["x"])
		y, okY := number(fields["y"])
		zoom, okZ := number(fields["zoom"])
		if !okX || !okY || !okZ {
			o.invalid = append(o.invalid, key)
			continue
		}
		o.entries[strings.ToLower(key)] = Placement{X: x, Y: y, Zoom: zoom}
	}
	sort.Strings(o.invalid)
	return o, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Lookup returns the override for a set and style, if one is present and valid
func (o *Overrides) Lookup(setCode, styleID string) (Placement, bool) {
	if o == nil || setCode == "" {
		return Placement{}, false
	}
	for _, key := range lookupKeys(setCode, styleID) {
		if p, ok := o.entries[key]; ok {
			return p, true
		}
	}
	return Placement{}, false
}

// Len returns the number of valid entries
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Invalid returns the keys that were rejected at load time
func (o *Overrides) Invalid() []string {
	if o == nil {
		return nil
	}
	return o.invalid
}

// SymbolPlacement consults the override table before contain-fitting the
// symbol. An override is returned verbatim and measure is only called when
// the table has no entry.
func SymbolPlacement(o *Overrides, setCode, styleID string, box Box, anchor Anchor, cardSize Size, measure func() (Size, error)) (Placement, bool, error) {
	if p, ok := o.Lookup(setCode, styleID); ok {
		return p, true, nil
	}
	natural, err := measure()
	if err != nil {
		return Placement{}, false, err
	}
	p, err := ContainFit(natural, box, anchor, cardSize)
	return p, false, err
}
