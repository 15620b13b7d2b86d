package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/assembler"
	"github.com/arcanaland/framesmith/internal/compositor"
	"github.com/arcanaland/framesmith/internal/geometry"
	"github.com/arcanaland/framesmith/internal/imagesrc"
	"github.com/arcanaland/framesmith/internal/ports"
	"github.com/arcanaland/framesmith/internal/scryfall"
	"github.com/arcanaland/framesmith/internal/storage"
	"github.com/arcanaland/framesmith/internal/upscale"
)

// catalogHosts are rate limited together with the API
var catalogHosts = []string{"scryfall.com", "scryfall.io"}

// frameFlags are shared by the commands that assemble cards
type frameFlags struct {
	style         string
	frameSet      string
	crowns        bool
	autoFitArt    bool
	autoFitSymbol bool
	setSymbol     string
	placements    string
	artMode       string
	outputDir     string
	upload        bool
	upscale       bool
	factor        int
}

func (f *frameFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.style, "style", "s", "", "Frame style from the library, a builtin, or a path (default from config)")
	fl.StringVar(&f.frameSet, "frame-set", "", "Frame set for styles that have several (default from config)")
	fl.BoolVar(&f.crowns, "crowns", false, "Add legend crowns to legendary cards")
	fl.BoolVar(&f.autoFitArt, "auto-fit-art", false, "Scale art to cover the art box")
	fl.BoolVar(&f.autoFitSymbol, "auto-fit-symbol", false, "Scale set symbols to fit the symbol box")
	fl.StringVar(&f.setSymbol, "set-symbol", "", "Use this set's symbol for every card")
	fl.StringVar(&f.placements, "placements", "", "Set symbol placement overrides (JSON or YAML)")
	fl.StringVar(&f.artMode, "art-mode", "", "Printing that supplies the art: earliest or latest")
	fl.StringVar(&f.outputDir, "output-dir", "", "Save art below this directory, served by 'framesmith serve'")
	fl.BoolVar(&f.upload, "upload", false, "Upload art to the configured image server")
	fl.BoolVar(&f.upscale, "upscale", false, "Upscale art before hosting it")
	fl.IntVar(&f.factor, "factor", 0, "Upscale factor (default from config)")
}

type pipeline struct {
	catalog   ports.Catalog
	images    ports.ImageSource
	assembler *assembler.Assembler
}

func newPipeline(f *frameFlags, logger *zap.Logger) (*pipeline, error) {
	s, err := resolveStyle(f.style)
	if err != nil {
		return nil, err
	}

	mode, err := scryfall.ParseArtMode(f.artMode)
	if err != nil {
		return nil, err
	}

	placements := f.placements
	if placements == "" {
		placements = cfg.PlacementsFile
	}
	overrides, err := geometry.LoadOverrides(placements)
	if err != nil {
		return nil, err
	}
	for _, key := range overrides.Invalid() {
		logger.Warn("ignoring invalid placement override", zap.String("key", key))
	}

	frameSet := f.frameSet
	if frameSet == "" {
		frameSet = cfg.FrameSet
	}

	limiter := scryfall.NewLimiter(cfg.APIDelay())
	client := &http.Client{Timeout: 30 * time.Second}
	catalog := scryfall.NewClient(client, scryfall.DefaultBaseURL, limiter, mode, logger)
	images := imagesrc.New(client, limiter, catalogHosts...)

	store, err := newStore(f)
	if err != nil {
		return nil, err
	}

	var up ports.Upscaler
	if f.upscale {
		if cfg.Upscaler.Model != "" && cfg.Upscaler.Model != upscale.Model {
			return nil, fmt.Errorf("unsupported upscaler model %q (available: %s)", cfg.Upscaler.Model, upscale.Model)
		}
		factor := f.factor
		if factor == 0 {
			factor = cfg.Upscaler.Factor
		}
		up = upscale.NewLocal(factor)
	}

	asm := assembler.New(assembler.Config{
		Style:     s,
		Overrides: overrides,
		Compose: compositor.Options{
			Crowns:   f.crowns,
			FrameSet: frameSet,
		},
		AutoFitArt:        f.autoFitArt,
		AutoFitSymbol:     f.autoFitSymbol,
		SetSymbolOverride: f.setSymbol,
		AssetsBaseURL:     cfg.Assets.BaseURL,
	}, images, store, up, logger)

	logger.Debug("pipeline ready",
		zap.String("style", s.ID),
		zap.String("source", s.Source),
		zap.Int("overrides", overrides.Len()),
		zap.Bool("store", store != nil),
		zap.Bool("upscale", up != nil))

	return &pipeline{catalog: catalog, images: images, assembler: asm}, nil
}

// newStore picks where art is hosted. Upscaling needs a store, so it falls
// back to the image server root.
func newStore(f *frameFlags) (ports.Store, error) {
	is := cfg.ImageServer
	switch {
	case f.upload && f.outputDir != "":
		return nil, fmt.Errorf("--upload and --output-dir are mutually exclusive")
	case f.upload:
		return storage.NewRemote(nil, is.BaseURL, is.PathPrefix), nil
	case f.outputDir != "":
		return storage.NewLocal(f.outputDir, is.PathPrefix, is.BaseURL), nil
	case f.upscale:
		return storage.NewLocal(is.Root, is.PathPrefix, is.BaseURL), nil
	}
	return nil, nil
}
