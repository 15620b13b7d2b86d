package assembler

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/style"
)

const (
	fontStep        = 0.001
	charAspectRatio = 0.5
)

// FitFontSize shrinks initial in steps of 0.001 until text, estimated at
// charAspectRatio width per character, fits a box of the given relative size.
func FitFontSize(text string, boxWidth, boxHeight, initial float64) float64 {
	size := initial
	for size > fontStep {
		perLine := boxWidth / (size * charAspectRatio)
		if perLine <= 0 {
			return fontStep
		}
		var lines float64
		for _, line := range strings.Split(text, "\n") {
			lines += float64(len([]rune(line))) / perLine
		}
		if lines*size <= boxHeight {
			return size
		}
		size -= fontStep
	}
	return size
}

var (
	unsafeChars = regexp.MustCompile(`[\s/:<>"\\|?*&]+`)
	dashes      = regexp.MustCompile(`-+`)
	foldAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

// SanitizeFilename folds a card name, set code or collector number into a
// lowercase ASCII filename component.
func SanitizeFilename(value string) string {
	value = strings.ReplaceAll(value, "'", "")
	folded, _, err := transform.String(foldAccents, value)
	if err == nil {
		value = folded
	}
	value = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, value)
	value = unsafeChars.ReplaceAllString(value, "-")
	value = dashes.ReplaceAllString(value, "-")
	return strings.ToLower(strings.Trim(value, "-"))
}

// rulesText appends flavor text behind the renderer's {flavor} marker. The
// flavor bar is shown whenever flavor text is present.
func rulesText(a card.Attributes, s *style.Style) (string, bool) {
	text := a.RulesText
	if a.FlavorText == "" {
		return text, s.ShowsFlavorBar
	}
	flavor := strings.ReplaceAll(a.FlavorText, "*", "")
	if text == "" {
		return "{flavor}" + flavor, true
	}
	return text + "\n{flavor}" + flavor, true
}

func ptText(a card.Attributes, s *style.Style) string {
	if a.Power == nil || a.Toughness == nil {
		return ""
	}
	power, toughness := *a.Power, *a.Toughness
	if s.PTStarAsX {
		if power == "*" {
			power = "X"
		}
		if toughness == "*" {
			toughness = "X"
		}
	}
	return power + "/" + toughness
}
