package compositor

import "github.com/arcanaland/framesmith/internal/colors"

// palette holds the colors of the main frame body. base paints the
// structural regions: type, title, frame and border.
type palette struct {
	primary   colors.Color
	secondary *colors.Color
	base      colors.Color
	land      bool // primary and secondary are land-produced colors
}

func single(c colors.Color) palette {
	return palette{primary: c, base: c}
}

func twoTone(first, second, base colors.Color) palette {
	return palette{primary: first, secondary: &second, base: base}
}

func mainPalette(cls colors.Classification) palette {
	switch v := cls.(type) {
	case colors.Monocolor:
		return single(v.Color)
	case colors.Colorless:
		return single(colors.ColorlessC)
	case colors.Multicolor:
		return multicolorPalette(v.Components, colors.Multicolored)
	case colors.Artifact:
		return coloringPalette(v.Coloring)
	case colors.Vehicle:
		return coloringPalette(v.Coloring)
	case colors.Land:
		switch len(v.Produced) {
		case 0:
			return single(colors.LandC)
		case 1:
			p := single(v.Produced[0])
			p.land = true
			return p
		default:
			p := twoTone(v.Produced[0], v.Produced[1], colors.LandC)
			p.land = true
			return p
		}
	}
	return single(colors.ColorlessC)
}

// coloringPalette keeps an artifact's own colors on the pinline and rules
// box and puts everything else on the artifact frame.
func coloringPalette(c colors.Coloring) palette {
	switch v := c.(type) {
	case colors.Monocolor:
		return palette{primary: v.Color, base: colors.ArtifactC}
	case colors.Multicolor:
		return multicolorPalette(v.Components, colors.ArtifactC)
	}
	return single(colors.ArtifactC)
}

func multicolorPalette(components []colors.Color, base colors.Color) palette {
	switch len(components) {
	case 0:
		return single(base)
	case 1:
		return palette{primary: components[0], base: base}
	}
	return twoTone(components[0], components[1], base)
}

// crownColors returns the primary crown color and, for two-tone cards, the
// secondary one.
func crownColors(cls colors.Classification) []colors.Color {
	var cols []colors.Color
	switch v := cls.(type) {
	case colors.Monocolor, colors.Multicolor:
		cols = v.Colors()
	case colors.Artifact, colors.Vehicle:
		cols = v.Colors()
		if len(cols) == 0 {
			cols = []colors.Color{colors.ArtifactC}
		}
	case colors.Land:
		cols = v.Produced
		if len(cols) == 0 {
			cols = []colors.Color{colors.LandC}
		}
	}
	if len(cols) == 0 {
		return []colors.Color{colors.ColorlessC}
	}
	if len(cols) > 2 {
		cols = cols[:2]
	}
	return cols
}

// ptColor picks the single color of the power/toughness box
func ptColor(cls colors.Classification) colors.Color {
	switch v := cls.(type) {
	case colors.Multicolor:
		return colors.Multicolored
	case colors.Vehicle:
		return colors.VehicleC
	case colors.Artifact:
		return colors.ArtifactC
	case colors.Monocolor:
		return v.Color
	case colors.Land:
		switch len(v.Produced) {
		case 0:
			return colors.LandC
		case 1:
			return v.Produced[0]
		default:
			return colors.Multicolored
		}
	}
	return colors.ColorlessC
}
