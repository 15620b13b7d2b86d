package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/assembler"
	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/config"
	"github.com/arcanaland/framesmith/internal/preview"
)

var (
	showFlags frameFlags
	showJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display the frame a card would be built with, next to its art",
	Long: `Show looks a single card up, assembles its frame and prints the color
classification, the frame layers and the text fields beside an ANSI rendering
of the art.

Examples:
  framesmith show "Llanowar Elves"
  framesmith show --style eighth "Sol Ring"
  framesmith show --crowns --style m15ub "Jodah, Archmage Eternal"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		p, err := newPipeline(&showFlags, logger)
		if err != nil {
			return err
		}

		attrs, err := p.catalog.Lookup(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("error getting card: %v", err)
		}
		res, err := p.assembler.Assemble(cmd.Context(), attrs)
		if err != nil {
			return fmt.Errorf("error assembling card: %v", err)
		}

		if showJSON {
			return writeJSON(os.Stdout, res)
		}

		termWidth := preview.TerminalWidth()
		artWidth := preview.ArtWidth(termWidth)
		art, err := preview.Cached(filepath.Join(config.GetCacheDir(), "ansi_cache"),
			fmt.Sprintf("%s@%d", attrs.ArtCropRef, artWidth),
			func() (string, error) {
				img, err := p.images.Fetch(cmd.Context(), attrs.ArtCropRef)
				if err != nil {
					return "", err
				}
				decoded, err := preview.Decode(img.Data)
				if err != nil {
					return "", err
				}
				return preview.Render(decoded, artWidth), nil
			})
		if err != nil {
			logger.Warn("no art preview", zap.Error(err))
			art = ""
		}

		info := describeCard(attrs, res, preview.InfoWidth(termWidth, artWidth))
		preview.SideBySide(os.Stdout, art, info)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showFlags.register(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the assembled card as JSON")
}

// describeCard lists what was assembled for a card
func describeCard(attrs card.Attributes, res *assembler.Result, width int) []string {
	label := func(s string) string { return colorize.CyanString("%-9s", s) }

	lines := []string{
		label("Card:") + colorize.HiWhiteString("%s", attrs.Name),
		label("Type:") + colorize.HiWhiteString("%s", attrs.TypeLine),
		label("Frame:") + colorize.HiWhiteString("%s", res.Classification),
		label("Set:") + colorize.HiWhiteString("%s #%s · %s", res.InfoSet, res.InfoNumber, res.InfoRarity),
		label("Artist:") + colorize.HiWhiteString("%s", res.InfoArtist),
		label("Style:") + colorize.HiWhiteString("%s", res.Version),
	}

	lines = append(lines, "", colorize.CyanString("Layers:"))
	for i, l := range res.Frames {
		masks := make([]string, len(l.Masks))
		for j, m := range l.Masks {
			masks[j] = m.Name
		}
		line := fmt.Sprintf("%2d. %s", i+1, l.Name)
		if len(masks) > 0 {
			line += colorize.HiBlackString(" [%s]", strings.Join(masks, ", "))
		}
		lines = append(lines, line)
	}

	lines = append(lines, "",
		colorize.CyanString("Art:")+fmt.Sprintf(" x=%.4f y=%.4f zoom=%.4f", res.ArtX, res.ArtY, res.ArtZoom),
		colorize.CyanString("Symbol:")+fmt.Sprintf(" x=%.4f y=%.4f zoom=%.4f", res.SetSymbolX, res.SetSymbolY, res.SetSymbolZoom))

	if rules, ok := res.Text["rules"]["text"].(string); ok && rules != "" {
		lines = append(lines, "", colorize.CyanString("Rules:"))
		rules = strings.ReplaceAll(rules, "{flavor}", "")
		lines = append(lines, preview.WrapText(rules, width)...)
	}
	if pt, ok := res.Text["pt"]["text"].(string); ok && pt != "" {
		lines = append(lines, label("P/T:")+colorize.HiWhiteString("%s", pt))
	}
	return lines
}
