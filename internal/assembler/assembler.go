// Package assembler builds the complete frame description of a card: it runs
// the classifier and compositor, places art and set symbol, and fills in text
// and metadata.
package assembler

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/colors"
	"github.com/arcanaland/framesmith/internal/compositor"
	"github.com/arcanaland/framesmith/internal/frameerr"
	"github.com/arcanaland/framesmith/internal/geometry"
	"github.com/arcanaland/framesmith/internal/ports"
	"github.com/arcanaland/framesmith/internal/style"
)

// Defaults for metadata the catalog leaves empty
const (
	DefaultYear     = "2025"
	DefaultRarity   = "P"
	DefaultSet      = "MTG"
	DefaultLanguage = "EN"
	DefaultArtist   = "Unknown Artist"
	DefaultNumber   = "000"

	originalDir = "original"
)

var artExts = []string{".jpg", ".png", ".jpeg", ".webp", ".gif"}

// Config controls how cards are assembled
type Config struct {
	Style             *style.Style
	Overrides         *geometry.Overrides
	Compose           compositor.Options
	AutoFitArt        bool
	AutoFitSymbol     bool
	SetSymbolOverride string // use this set's symbol for every card
	AssetsBaseURL     string // host serving set symbols and watermarks
	Year              string
}

// Assembler builds Results. It is safe for concurrent use when its
// collaborators are.
type Assembler struct {
	cfg      Config
	images   ports.ImageSource
	store    ports.Store
	upscaler ports.Upscaler
	logger   *zap.Logger
}

// New creates an Assembler. store and upscaler may be nil; without a store
// the art is referenced where the catalog hosts it.
func New(cfg Config, images ports.ImageSource, store ports.Store, upscaler ports.Upscaler, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Year == "" {
		cfg.Year = DefaultYear
	}
	return &Assembler{
		cfg:      cfg,
		images:   images,
		store:    store,
		upscaler: upscaler,
		logger:   logger,
	}
}

// Style returns the frame style cards are assembled in
func (a *Assembler) Style() *style.Style {
	return a.cfg.Style
}

// Assemble builds the Result for one card. Only a missing art reference fails
// the card; every other problem is logged and worked around.
func (a *Assembler) Assemble(ctx context.Context, attrs card.Attributes) (*Result, error) {
	s := a.cfg.Style
	log := a.logger.With(zap.String("card", attrs.Name), zap.String("style", s.ID))

	if attrs.ArtCropRef == "" {
		return nil, fmt.Errorf("%w: %s", frameerr.ErrMissingArt, attrs.Name)
	}

	cls, err := colors.Classify(attrs)
	if err != nil {
		log.Warn("color classification degraded", zap.Error(err))
	}

	layers, err := compositor.Compose(cls, attrs, s, a.cfg.Compose)
	if err != nil {
		log.Warn("frame composition degraded", zap.Error(err))
	}

	res := &Result{
		Width:           s.Width,
		Height:          s.Height,
		MarginX:         s.MarginX,
		MarginY:         s.MarginY,
		Frames:          layers,
		Version:         s.VersionString(),
		NoCorners:       s.NoCorners,
		ArtBounds:       s.Bounds.Art,
		SetSymbolBounds: s.Bounds.SetSymbol,
		WatermarkBounds: s.Bounds.Watermark,
		BottomInfo:      s.BottomInfo,
		ManaSymbols:     []string{},
		Classification:  cls,
	}
	if _, ok := cls.(colors.Land); ok || s.AlwaysManaSymbols {
		res.ManaSymbols = s.ManaSymbols
	}

	a.placeArt(ctx, attrs, res, log)
	a.placeSymbol(ctx, attrs, res, log)
	a.placeWatermark(res)
	a.fillText(attrs, res)
	a.fillInfo(attrs, res)

	log.Debug("card assembled",
		zap.String("classification", cls.String()),
		zap.Int("layers", len(layers)),
		zap.String("art", res.ArtSource))
	return res, nil
}

func (a *Assembler) placeArt(ctx context.Context, attrs card.Attributes, res *Result, log *zap.Logger) {
	d := a.cfg.Style.Defaults.Art
	res.ArtX, res.ArtY, res.ArtZoom, res.ArtRotate = d.X, d.Y, d.Zoom, d.Rotate
	if res.ArtRotate == "" {
		res.ArtRotate = "0"
	}
	res.ArtSource = attrs.ArtCropRef
	res.ArtSourceOriginal = attrs.ArtCropRef

	if a.store == nil {
		if a.cfg.AutoFitArt {
			img, err := a.images.Fetch(ctx, attrs.ArtCropRef)
			if err != nil {
				log.Warn("art fetch failed, using default placement", zap.Error(err))
				return
			}
			a.fitArt(img, res, log)
		}
		return
	}

	base := fileBase(attrs)
	img, hosted, ok := a.hostedOriginal(ctx, base, attrs.ArtCropRef)
	if !ok {
		var err error
		img, err = a.images.Fetch(ctx, attrs.ArtCropRef)
		if err != nil {
			log.Warn("art fetch failed, keeping catalog reference", zap.Error(err))
			return
		}
		ext := img.Ext()
		if ext == "" {
			ext = guessExt(attrs.ArtCropRef)
		}
		hosted, err = a.store.Save(ctx, img.Data, originalDir, base+ext)
		if err != nil {
			log.Warn("saving original art failed", zap.Error(err))
			hosted = ""
		}
	}
	res.ArtSourceHosted = hosted

	if a.cfg.AutoFitArt {
		a.fitArt(img, res, log)
	}

	if upscaled := a.upscale(ctx, base, img, log); upscaled != "" {
		res.ArtSource = upscaled
		res.ArtSourceUpscaled = upscaled
		if f := a.upscaler.Factor(); f > 0 {
			res.ArtZoom /= float64(f)
		}
		return
	}
	if hosted != "" {
		res.ArtSource = hosted
	}
}

// hostedOriginal looks for art already saved by an earlier run, trying the
// extension of the catalog reference first.
func (a *Assembler) hostedOriginal(ctx context.Context, base, ref string) (ports.Image, string, bool) {
	first := guessExt(ref)
	candidates := []string{first}
	for _, ext := range artExts {
		if ext != first {
			candidates = append(candidates, ext)
		}
	}
	for _, ext := range candidates {
		hosted, ok := a.store.Lookup(ctx, originalDir, base+ext)
		if !ok {
			continue
		}
		img, err := a.images.Fetch(ctx, hosted)
		if err != nil {
			continue
		}
		return img, hosted, true
	}
	return ports.Image{}, "", false
}

func (a *Assembler) fitArt(img ports.Image, res *Result, log *zap.Logger) {
	s := a.cfg.Style
	p, err := geometry.CoverFit(geometry.Size{W: img.Width, H: img.Height}, s.Bounds.Art, s.CardSize())
	if err != nil {
		log.Warn("art auto-fit failed, using default placement", zap.Error(err))
		return
	}
	res.ArtX, res.ArtY, res.ArtZoom = p.X, p.Y, p.Zoom
}

// upscale returns the reference of the upscaled art, reusing a stored copy
func (a *Assembler) upscale(ctx context.Context, base string, img ports.Image, log *zap.Logger) string {
	if a.upscaler == nil {
		return ""
	}
	dir := SanitizeFilename(a.upscaler.Model()) + "-" + strconv.Itoa(a.upscaler.Factor()) + "x"
	if ref, ok := a.store.Lookup(ctx, dir, base+".png"); ok {
		log.Info("found existing upscaled art", zap.String("ref", ref))
		return ref
	}

	data, err := a.upscaler.Upscale(ctx, img.Data)
	if err != nil {
		log.Warn("upscaling failed, using original art", zap.Error(err))
		return ""
	}
	ext := ports.Image{MIME: http.DetectContentType(data)}.Ext()
	if ext == "" {
		ext = ".png"
	}
	ref, err := a.store.Save(ctx, data, dir, base+ext)
	if err != nil {
		log.Warn("saving upscaled art failed", zap.Error(err))
		return ""
	}
	return ref
}

func (a *Assembler) placeSymbol(ctx context.Context, attrs card.Attributes, res *Result, log *zap.Logger) {
	s := a.cfg.Style
	d := s.Defaults.SetSymbol
	res.SetSymbolX, res.SetSymbolY, res.SetSymbolZoom = d.X, d.Y, d.Zoom

	setCode := a.cfg.SetSymbolOverride
	if setCode == "" {
		setCode = attrs.SetCode
	}
	if setCode == "" {
		setCode = DefaultSet
	}
	res.SetSymbolSource = SymbolURL(a.cfg.AssetsBaseURL, setCode, RarityCode(attrs.Rarity))

	if !a.cfg.AutoFitSymbol {
		return
	}

	code, _ := SetCodeFromURL(res.SetSymbolSource)
	measure := func() (geometry.Size, error) {
		img, err := a.images.Fetch(ctx, res.SetSymbolSource)
		if err != nil {
			return geometry.Size{}, fmt.Errorf("set symbol fetch failed: %w", err)
		}
		return geometry.Size{W: img.Width, H: img.Height}, nil
	}
	p, _, err := geometry.SymbolPlacement(a.cfg.Overrides, code, s.ID, s.Bounds.SetSymbol, s.SymbolAnchor(), s.CardSize(), measure)
	if err != nil {
		log.Warn("set symbol auto-fit failed, using default placement", zap.Error(err))
		return
	}
	res.SetSymbolX, res.SetSymbolY, res.SetSymbolZoom = p.X, p.Y, p.Zoom
}

func (a *Assembler) placeWatermark(res *Result) {
	w := a.cfg.Style.Defaults.Watermark
	res.WatermarkSource = joinURL(a.cfg.AssetsBaseURL, w.Source)
	res.WatermarkX, res.WatermarkY, res.WatermarkZoom = w.X, w.Y, w.Zoom
	res.WatermarkLeft, res.WatermarkRight, res.WatermarkOpacity = w.Left, w.Right, w.Opacity
}

func (a *Assembler) fillText(attrs card.Attributes, res *Result) {
	s := a.cfg.Style
	rules, flavorBar := rulesText(attrs, s)
	res.ShowsFlavorBar = flavorBar

	typeBox, rulesBox := s.Text["type"], s.Text["rules"]
	typeSize := FitFontSize(attrs.TypeLine, typeBox.Number("width", 0.8), typeBox.Number("height", 0.05), typeBox.Number("size", 0.032))
	rulesSize := FitFontSize(rules, rulesBox.Number("width", 0.8), rulesBox.Number("height", 0.28), rulesBox.Number("size", 0.036))

	res.Text = map[string]style.TextBox{
		"mana":  s.Text["mana"].With(map[string]any{"text": attrs.ManaCost}),
		"title": s.Text["title"].With(map[string]any{"text": attrs.Name}),
		"type":  typeBox.With(map[string]any{"text": attrs.TypeLine, "size": typeSize}),
		"rules": rulesBox.With(map[string]any{"text": rules, "size": rulesSize}),
		"pt":    s.Text["pt"].With(map[string]any{"text": ptText(attrs, s)}),
	}
}

func (a *Assembler) fillInfo(attrs card.Attributes, res *Result) {
	res.InfoYear = a.cfg.Year
	res.InfoNumber = orDefault(attrs.CollectorNumber, DefaultNumber)
	res.InfoRarity = DefaultRarity
	if attrs.Rarity != "" {
		res.InfoRarity = strings.ToUpper(RarityCode(attrs.Rarity))
	}
	res.InfoSet = strings.ToUpper(orDefault(attrs.SetCode, DefaultSet))
	res.InfoLanguage = DefaultLanguage
	res.InfoArtist = orDefault(attrs.Artist, DefaultArtist)
}

// fileBase names stored art "<name>_<set>_<number>"
func fileBase(attrs card.Attributes) string {
	return SanitizeFilename(attrs.Name) + "_" +
		SanitizeFilename(orDefault(attrs.SetCode, DefaultSet)) + "_" +
		SanitizeFilename(orDefault(attrs.CollectorNumber, DefaultNumber))
}

// guessExt reads the extension from a URL or path, defaulting to .jpg
func guessExt(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ext := strings.ToLower(path.Ext(ref))
	for _, known := range artExts {
		if ext == known {
			return ext
		}
	}
	return ".jpg"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
