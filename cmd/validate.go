package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/framesmith/internal/config"
	"github.com/arcanaland/framesmith/internal/style"
	"github.com/arcanaland/framesmith/internal/validator"
)

var validateAll bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [style.toml]",
	Short: "Validate a frame style file",
	Long: `Validate checks a frame style file before it is added to the style library.
It verifies path templates and their placeholders, relative bounds, default
placements, watermark colors and text boxes.

With --all, every builtin and library style is checked instead.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if validateAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateAll {
			return validateLibrary()
		}

		stylePath := args[0]
		v := validator.NewValidator(stylePath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")
		if !report(stylePath, results) {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func validateLibrary() error {
	styles, err := style.List(config.GetStyleLibraryPath())
	if err != nil {
		return err
	}

	failed := 0
	for _, s := range styles {
		if !report(s.ID, validator.CheckStyle(s)) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d styles failed validation", failed, len(styles))
	}
	return nil
}

// report prints results for one style and reports whether it passed.
func report(label string, results validator.ValidationResults) bool {
	if len(results.Errors) == 0 {
		fmt.Printf("%s Style '%s' is valid.\n", colorize.GreenString("✔"), label)
	} else {
		fmt.Printf("%s Style '%s' has %d validation errors:\n", colorize.RedString("✘"), label, len(results.Errors))
		for i, err := range results.Errors {
			fmt.Printf("  %d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		colorize.Yellow("  Warnings:")
		for i, warn := range results.Warnings {
			fmt.Printf("  %d. %s\n", i+1, warn)
		}
	}
	return len(results.Errors) == 0
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "validate every builtin and library style")
	RootCmd.AddCommand(validateCmd)
}
