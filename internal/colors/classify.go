package colors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/frameerr"
)

// maxLandColors caps the produced colors of a land; frames only have two halves.
const maxLandColors = 2

// Classify maps card attributes to a classification. Rules are tried in
// order: vehicle, artifact, land, then color identity. The returned
// classification is always usable; a non-nil error wraps
// frameerr.ErrUnclassifiableColor and lists dropped color codes.
func Classify(a card.Attributes) (Classification, error) {
	switch {
	case a.IsVehicle:
		c, err := classifyIdentity(a.ColorIdentity)
		return Vehicle{Coloring: c}, err
	case a.IsArtifact:
		c, err := classifyIdentity(a.ColorIdentity)
		return Artifact{Coloring: c}, err
	case a.IsLand:
		return Land{Produced: ProducedColors(a.RulesText, a.TypeLine)}, nil
	}
	return classifyIdentity(a.ColorIdentity)
}

// classifyIdentity resolves catalog keys, drops unknown and duplicate keys and
// branches on the number of remaining colors.
func classifyIdentity(identity []string) (Coloring, error) {
	var (
		resolved []Color
		dropped  []string
		seen     = make(map[string]bool)
	)
	for _, key := range identity {
		c, ok := Lookup(key)
		if !ok || !isBasic(c) {
			dropped = append(dropped, key)
			continue
		}
		if seen[c.Code] {
			continue
		}
		seen[c.Code] = true
		resolved = append(resolved, c)
	}

	var err error
	if len(dropped) > 0 {
		err = fmt.Errorf("%w: dropped %q", frameerr.ErrUnclassifiableColor, dropped)
	}

	switch len(resolved) {
	case 0:
		return Colorless{}, err
	case 1:
		return Monocolor{Color: resolved[0]}, err
	default:
		return Multicolor{Components: resolved}, err
	}
}

func isBasic(c Color) bool {
	for _, b := range Basics {
		if b == c {
			return true
		}
	}
	return false
}

// ProducedColors returns up to two colors a land produces. Mana symbols only
// count inside clauses starting with "Add"; colors are ordered by their first
// occurrence. Basic land subtypes in the type line fill in colors the text
// does not mention.
func ProducedColors(rulesText, typeLine string) []Color {
	first := make(map[Color]int)
	for _, clause := range addClauses(rulesText) {
		segment := rulesText[clause[0]:clause[1]]
		for _, c := range Basics {
			i := strings.Index(segment, "{"+c.Upper()+"}")
			if i < 0 {
				continue
			}
			offset := clause[0] + i
			if prev, ok := first[c]; !ok || offset < prev {
				first[c] = offset
			}
		}
	}

	produced := make([]Color, 0, len(first))
	for c := range first {
		produced = append(produced, c)
	}
	sort.Slice(produced, func(i, j int) bool {
		return first[produced[i]] < first[produced[j]]
	})

	for _, sub := range card.ParseTypeLine(typeLine).Subtypes {
		c, ok := basicLandColors[strings.ToLower(sub)]
		if !ok {
			continue
		}
		if _, found := first[c]; found {
			continue
		}
		first[c] = len(rulesText)
		produced = append(produced, c)
	}

	if len(produced) > maxLandColors {
		produced = produced[:maxLandColors]
	}
	return produced
}

// addClauses returns [start, end) offsets of every clause that begins with
// the word "add". A clause ends at the next period or newline.
func addClauses(text string) [][2]int {
	lower := strings.ToLower(text)
	var clauses [][2]int
	for from := 0; from < len(lower); {
		i := strings.Index(lower[from:], "add ")
		if i < 0 {
			break
		}
		start := from + i
		from = start + len("add ")
		if start > 0 && isLetter(lower[start-1]) {
			continue
		}
		end := strings.IndexAny(lower[start:], ".\n")
		if end < 0 {
			end = len(lower)
		} else {
			end += start
		}
		clauses = append(clauses, [2]int{start, end})
	}
	return clauses
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
