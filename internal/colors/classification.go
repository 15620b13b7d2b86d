package colors

import (
	"fmt"
	"strings"
)

// Kind names the active variant of a Classification
type Kind int

const (
	KindColorless Kind = iota
	KindMonocolor
	KindMulticolor
	KindArtifact
	KindVehicle
	KindLand
)

func (k Kind) String() string {
	switch k {
	case KindColorless:
		return "colorless"
	case KindMonocolor:
		return "monocolor"
	case KindMulticolor:
		return "multicolor"
	case KindArtifact:
		return "artifact"
	case KindVehicle:
		return "vehicle"
	case KindLand:
		return "land"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classification describes how a card is colored. The implementations are
// Monocolor, Colorless, Multicolor, Artifact, Vehicle and Land; no other
// package can add variants.
type Classification interface {
	Kind() Kind
	// Colors returns the colors carried by the classification, primary first.
	Colors() []Color
	String() string
	sealed()
}

// Coloring is the subset of classifications an artifact or vehicle can carry
type Coloring interface {
	Classification
	coloring()
}

// Monocolor is a single-colored card
type Monocolor struct {
	Color Color
}

// Colorless is a card with no resolvable color
type Colorless struct{}

// Multicolor is a gold card. Components holds at least two colors.
type Multicolor struct {
	Components []Color
}

// Artifact is a non-vehicle artifact with its own coloring
type Artifact struct {
	Coloring Coloring
}

// Vehicle is an artifact vehicle with its own coloring
type Vehicle struct {
	Coloring Coloring
}

// Land is a land with zero to two produced colors in first-appearance order
type Land struct {
	Produced []Color
}

func (Monocolor) Kind() Kind  { return KindMonocolor }
func (Colorless) Kind() Kind  { return KindColorless }
func (Multicolor) Kind() Kind { return KindMulticolor }
func (Artifact) Kind() Kind   { return KindArtifact }
func (Vehicle) Kind() Kind    { return KindVehicle }
func (Land) Kind() Kind       { return KindLand }

func (m Monocolor) Colors() []Color  { return []Color{m.Color} }
func (Colorless) Colors() []Color    { return nil }
func (m Multicolor) Colors() []Color { return m.Components }
func (a Artifact) Colors() []Color   { return coloringColors(a.Coloring) }
func (v Vehicle) Colors() []Color    { return coloringColors(v.Coloring) }
func (l Land) Colors() []Color       { return l.Produced }

func (m Monocolor) String() string { return "Monocolor(" + m.Color.Name + ")" }
func (Colorless) String() string   { return "Colorless" }
func (m Multicolor) String() string {
	return "Multicolor(" + joinNames(m.Components) + ")"
}
func (a Artifact) String() string { return "Artifact(" + coloringString(a.Coloring) + ")" }
func (v Vehicle) String() string  { return "Vehicle(" + coloringString(v.Coloring) + ")" }
func (l Land) String() string     { return "Land(" + joinNames(l.Produced) + ")" }

func (Monocolor) sealed()  {}
func (Colorless) sealed()  {}
func (Multicolor) sealed() {}
func (Artifact) sealed()   {}
func (Vehicle) sealed()    {}
func (Land) sealed()       {}

func (Monocolor) coloring()  {}
func (Colorless) coloring()  {}
func (Multicolor) coloring() {}

// a nil coloring is treated as colorless
func coloringColors(c Coloring) []Color {
	if c == nil {
		return nil
	}
	return c.Colors()
}

func coloringString(c Coloring) string {
	if c == nil {
		return Colorless{}.String()
	}
	return c.String()
}

func joinNames(cs []Color) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
