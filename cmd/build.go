package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/batch"
)

var (
	buildFlags  frameFlags
	buildOutput string
	buildWorker int
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [cards.txt]",
	Short: "Build a CardConjurer project from a list of card names",
	Long: `Build reads one card name per line (blank lines and lines starting with #
are skipped), looks each card up on Scryfall and writes a CardConjurer project.

Examples:
  framesmith build cards.txt -o deck.cardconjurer
  framesmith build cards.txt --style seventh --frame-set regular --auto-fit-art
  framesmith build cards.txt --style m15 --crowns --upscale --output-dir ./art`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening card list: %v", err)
		}
		names, err := batch.ReadNames(in)
		in.Close()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no card names found in %s", args[0])
		}

		p, err := newPipeline(&buildFlags, logger)
		if err != nil {
			return err
		}

		workers := buildWorker
		if workers == 0 {
			workers = cfg.Workers
		}
		runner := batch.NewRunner(p.catalog, p.assembler, workers, logger,
			batch.WithProgress(func(done, total int) {
				fmt.Fprintf(os.Stderr, "\r%s %d/%d", colorize.CyanString("Building"), done, total)
			}))

		outcomes, err := runner.Run(cmd.Context(), names)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("build interrupted: %v", err)
		}

		output := buildOutput
		if output == "" {
			output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".cardconjurer"
		}
		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating output file: %v", err)
		}
		defer out.Close()

		written, err := batch.WriteProject(out, outcomes)
		if err != nil {
			return err
		}

		var failed []batch.Outcome
		for _, o := range outcomes {
			if o.Err != nil {
				failed = append(failed, o)
			}
		}

		logger.Info("project written",
			zap.String("output", output),
			zap.Int("cards", written),
			zap.Int("skipped", len(failed)))

		fmt.Printf("%s %d of %d cards to %s\n", colorize.GreenString("Wrote"), written, len(names), output)
		for _, o := range failed {
			fmt.Printf("  %s %s: %v\n", colorize.RedString("skipped"), o.Name, o.Err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildFlags.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output project file (default <input>.cardconjurer)")
	buildCmd.Flags().IntVarP(&buildWorker, "workers", "w", 0, "Cards processed in parallel (default from config)")
}
