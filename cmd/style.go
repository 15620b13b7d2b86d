package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/framesmith/internal/config"
	"github.com/arcanaland/framesmith/internal/style"
)

// styleCmd represents the style command group
var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage frame styles in your style library",
	Long:  `Commands for managing the frame styles framesmith can build cards in.`,
}

// styleListCmd represents the style ls command
var styleListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List builtin styles and the styles in your library",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles, err := style.List(config.GetStyleLibraryPath())
		if err != nil {
			return err
		}

		for _, s := range styles {
			source := colorize.HiBlackString("(%s)", s.Source)
			if s.ID == cfg.DefaultStyle {
				fmt.Printf("* %s  %s %s %s\n", colorize.HiWhiteString(s.ID), s.Name, source, colorize.GreenString("[DEFAULT]"))
			} else {
				fmt.Printf("  %s  %s %s\n", colorize.HiWhiteString(s.ID), s.Name, source)
			}
		}
		return nil
	},
}

// styleSetDefaultCmd represents the style set-default command
var styleSetDefaultCmd = &cobra.Command{
	Use:   "set-default [style]",
	Short: "Set the default style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Make sure it resolves before saving it
		if _, err := style.Find(name, config.GetStyleLibraryPath()); err != nil {
			return err
		}
		if err := config.SetDefaultStyle(name); err != nil {
			return fmt.Errorf("error setting default style: %v", err)
		}

		fmt.Printf("Default style set to: %s\n", name)
		return nil
	},
}

// styleInitCmd represents the style init command
var styleInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the style library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetStyleLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating style library: %v", err)
		}

		fmt.Println("Style library initialized at:", libraryPath)
		fmt.Println("Add a style by copying a .toml file into this directory; check it with 'framesmith validate'.")
		fmt.Println("Config file at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(styleCmd)
	styleCmd.AddCommand(styleListCmd)
	styleCmd.AddCommand(styleSetDefaultCmd)
	styleCmd.AddCommand(styleInitCmd)
}
