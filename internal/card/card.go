package card

import "strings"

// Attributes represents a card record as supplied by the catalog
type Attributes struct {
	Name            string   // Printed name
	TypeLine        string   // Full type line, e.g. "Legendary Creature — Elf Druid"
	ManaCost        string   // Mana cost in brace notation, e.g. "{1}{G}{W}"
	ColorIdentity   []string // Catalog color keys in WUBRG order
	RulesText       string   // Oracle rules text
	FlavorText      string   // Flavor text, may be empty
	Power           *string  // nil when the card has no power
	Toughness       *string  // nil when the card has no toughness
	Rarity          string   // common, uncommon, rare, mythic, special or bonus
	SetCode         string   // Lowercase set code, e.g. "m15"
	CollectorNumber string
	Artist          string
	ArtCropRef      string   // URL or local path of the art crop
	ProducedMana    []string // Mana the card can produce, as reported by the catalog

	IsArtifact  bool
	IsVehicle   bool
	IsLand      bool
	IsLegendary bool
}

// TypeLine is a type line split into its three word groups
type TypeLine struct {
	Supertypes []string // Legendary, Basic, Snow, World, Tribal
	Types      []string // Artifact, Creature, Land, ...
	Subtypes   []string // Words after the dash
}

var supertypes = map[string]bool{
	"legendary": true,
	"basic":     true,
	"snow":      true,
	"world":     true,
	"ongoing":   true,
	"elite":     true,
	"host":      true,
}

// ParseTypeLine splits a type line on its dash. Only the front face of a
// double-faced type line ("A // B") is considered.
func ParseTypeLine(line string) TypeLine {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	var left, right string
	switch {
	case strings.Contains(line, "—"):
		left, right, _ = strings.Cut(line, "—")
	case strings.Contains(line, " - "):
		left, right, _ = strings.Cut(line, " - ")
	default:
		left = line
	}

	var tl TypeLine
	for _, word := range strings.Fields(left) {
		if supertypes[strings.ToLower(word)] {
			tl.Supertypes = append(tl.Supertypes, word)
		} else {
			tl.Types = append(tl.Types, word)
		}
	}
	tl.Subtypes = strings.Fields(right)
	return tl
}

// Has reports whether any of the type line's words matches word, ignoring case
func (t TypeLine) Has(word string) bool {
	for _, group := range [][]string{t.Supertypes, t.Types, t.Subtypes} {
		for _, w := range group {
			if strings.EqualFold(w, word) {
				return true
			}
		}
	}
	return false
}

// ApplyTypeLine derives the type flags from TypeLine
func (a *Attributes) ApplyTypeLine() {
	tl := ParseTypeLine(a.TypeLine)
	a.IsArtifact = tl.Has("Artifact")
	a.IsVehicle = tl.Has("Vehicle")
	a.IsLand = tl.Has("Land")
	a.IsLegendary = tl.Has("Legendary")
}

// HasPowerToughness reports whether the card prints a power/toughness box
func (a Attributes) HasPowerToughness() bool {
	return a.Power != nil || a.Toughness != nil
}
