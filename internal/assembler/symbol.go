package assembler

import (
	"regexp"
	"strings"
)

var rarityCodes = map[string]string{
	"common":   "c",
	"uncommon": "u",
	"rare":     "r",
	"mythic":   "m",
	"special":  "s",
	"bonus":    "b",
}

// RarityCode maps a catalog rarity to its one-letter code. Unknown rarities
// pass through unchanged.
func RarityCode(rarity string) string {
	if code, ok := rarityCodes[strings.ToLower(rarity)]; ok {
		return code
	}
	return strings.ToLower(rarity)
}

// SymbolURL builds the set symbol location on the asset host
func SymbolURL(assetsBase, setCode, rarityCode string) string {
	return joinURL(assetsBase, "/img/setSymbols/official/"+strings.ToLower(setCode)+"-"+rarityCode+".svg")
}

var symbolSetCode = regexp.MustCompile(`/(\w+)-\w+\.(svg|png)$`)

// SetCodeFromURL extracts the set code from a set symbol URL
func SetCodeFromURL(url string) (string, bool) {
	m := symbolSetCode.FindStringSubmatch(strings.ToLower(url))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func joinURL(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
