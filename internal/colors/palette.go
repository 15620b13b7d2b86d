// Package colors classifies cards into the coloring model used to pick frame
// layers.
package colors

import "strings"

// Color is a frame color: a lowercase asset code and a display name
type Color struct {
	Code string
	Name string
}

// Upper returns the color code in upper case, as some asset packs name files that way
func (c Color) Upper() string {
	return strings.ToUpper(c.Code)
}

var (
	White        = Color{Code: "w", Name: "White"}
	Blue         = Color{Code: "u", Name: "Blue"}
	Black        = Color{Code: "b", Name: "Black"}
	Red          = Color{Code: "r", Name: "Red"}
	Green        = Color{Code: "g", Name: "Green"}
	ColorlessC   = Color{Code: "c", Name: "Colorless"}
	LandC        = Color{Code: "l", Name: "Land"}
	ArtifactC    = Color{Code: "a", Name: "Artifact"}
	Multicolored = Color{Code: "m", Name: "Multicolored"}
	VehicleC     = Color{Code: "v", Name: "Vehicle"}
)

// Basics holds the five basic colors in catalog (WUBRG) order
var Basics = []Color{White, Blue, Black, Red, Green}

var byKey = map[string]Color{
	"W": White,
	"U": Blue,
	"B": Black,
	"R": Red,
	"G": Green,
	"C": ColorlessC,
	"L": LandC,
	"A": ArtifactC,
	"M": Multicolored,
	"V": VehicleC,
}

// Lookup returns the color registered under a catalog key such as "W" or "g"
func Lookup(key string) (Color, bool) {
	c, ok := byKey[strings.ToUpper(strings.TrimSpace(key))]
	return c, ok
}

// basicLandColors maps basic land subtypes to the color they produce
var basicLandColors = map[string]Color{
	"plains":   White,
	"island":   Blue,
	"swamp":    Black,
	"mountain": Red,
	"forest":   Green,
}
