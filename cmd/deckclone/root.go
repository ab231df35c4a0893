package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/avacx/deckclone/internal/config"
	"github.com/avacx/deckclone/internal/home"
	"github.com/avacx/deckclone/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string

	cfgManager *config.Manager
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "deckclone",
	Short: "Create presentations from a PPTX template by pruning slides and substituting text",
	Long: `Deckclone builds a new presentation from a template: it keeps the
slides a content plan selects, deletes the rest, and substitutes text
on the survivors while preserving the template's formatting and
internal document relationships.

Typical workflow:
  deckclone analyze template.pptx            # inspect slides and categories
  deckclone create template.pptx plan.json out.pptx`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.deckclone/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "deckclone home directory (default: ~/.deckclone)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "analyze output format: text, json or yaml",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)

	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger before any command
// runs.
func setup(cmd *cobra.Command, args []string) error {
	hd, err := home.New(homeDir)
	if err != nil {
		return err
	}

	cfgManager, err = config.NewManager(cfgFile, hd.Path())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := cfgManager.Get()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With("run", uuid.NewString()[:8])
	slog.SetDefault(logger)

	return nil
}
