package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/config"
	"github.com/arcanaland/framesmith/internal/logging"
	"github.com/arcanaland/framesmith/internal/style"
)

var (
	logger   *zap.Logger
	cfg      *config.Config
	logLevel string
	devLog   bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "framesmith",
	Short: "Build CardConjurer frames for Magic: The Gathering cards",
	Long: `Framesmith looks cards up on Scryfall and turns them into CardConjurer
projects: frame layers picked by color, art and set symbol placed in the frame,
and the card text filled in.

Frame styles (7th, 8th, M15 and M15 UB) are built in; more can be added to the
style library at XDG_DATA_HOME/framesmith/styles.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}

		level := logLevel
		if level == "" {
			level = cfg.LogLevel
		}
		logger, err = logging.New(level, devLog)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")
	RootCmd.PersistentFlags().BoolVar(&devLog, "dev", false, "Human-readable development logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// resolveStyle finds the named style, falling back to the configured default
func resolveStyle(name string) (*style.Style, error) {
	if name == "" {
		name = cfg.DefaultStyle
	}
	s, err := style.Find(name, config.GetStyleLibraryPath())
	if err != nil {
		return nil, fmt.Errorf("error loading style: %v", err)
	}
	return s, nil
}
