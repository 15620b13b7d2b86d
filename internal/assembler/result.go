package assembler

import (
	"github.com/arcanaland/framesmith/internal/colors"
	"github.com/arcanaland/framesmith/internal/compositor"
	"github.com/arcanaland/framesmith/internal/geometry"
	"github.com/arcanaland/framesmith/internal/style"
)

// Result is everything the renderer needs for one card. It is built once by
// Assemble and not modified afterwards.
type Result struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	MarginX float64 `json:"marginX"`
	MarginY float64 `json:"marginY"`

	Frames []compositor.Layer `json:"frames"`

	ArtSource         string  `json:"artSource"`
	ArtX              float64 `json:"artX"`
	ArtY              float64 `json:"artY"`
	ArtZoom           float64 `json:"artZoom"`
	ArtRotate         string  `json:"artRotate"`
	ArtSourceOriginal string  `json:"artSourceOriginalScryfall"`
	ArtSourceHosted   string  `json:"artSourceHostedOriginal,omitempty"`
	ArtSourceUpscaled string  `json:"artSourceHostedUpscaled,omitempty"`

	SetSymbolSource string  `json:"setSymbolSource"`
	SetSymbolX      float64 `json:"setSymbolX"`
	SetSymbolY      float64 `json:"setSymbolY"`
	SetSymbolZoom   float64 `json:"setSymbolZoom"`

	WatermarkSource  string  `json:"watermarkSource"`
	WatermarkX       float64 `json:"watermarkX"`
	WatermarkY       float64 `json:"watermarkY"`
	WatermarkZoom    float64 `json:"watermarkZoom"`
	WatermarkLeft    string  `json:"watermarkLeft"`
	WatermarkRight   string  `json:"watermarkRight"`
	WatermarkOpacity float64 `json:"watermarkOpacity"`

	Version        string   `json:"version"`
	ShowsFlavorBar bool     `json:"showsFlavorBar"`
	ManaSymbols    []string `json:"manaSymbols"`
	NoCorners      bool     `json:"noCorners"`

	ArtBounds       geometry.Box             `json:"artBounds"`
	SetSymbolBounds geometry.Box             `json:"setSymbolBounds"`
	WatermarkBounds geometry.Box             `json:"watermarkBounds"`
	BottomInfo      map[string]style.TextBox `json:"bottomInfo"`
	Text            map[string]style.TextBox `json:"text"`

	InfoYear     string `json:"infoYear"`
	InfoNumber   string `json:"infoNumber"`
	InfoRarity   string `json:"infoRarity"`
	InfoSet      string `json:"infoSet"`
	InfoLanguage string `json:"infoLanguage"`
	InfoArtist   string `json:"infoArtist"`
	InfoNote     string `json:"infoNote"`

	// Classification is kept for display; it is not serialized
	Classification colors.Classification `json:"-"`
}
