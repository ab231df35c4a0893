package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avacx/deckclone/internal/analyze"
	"github.com/avacx/deckclone/internal/pptx"
	"github.com/avacx/deckclone/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <template.pptx> [analysis.json]",
	Short: "Inspect a template's slides, text and inferred categories",
	Long: `Analyze opens a template and reports each slide's layout, shape
count, replaceable text and inferred category (cover, divider, toc,
ending or content).

With a second argument, the structured analysis is also written there
as JSON. Use -o json or -o yaml to print the structured form to stdout
instead of the human-readable report.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templatePath := args[0]
		if _, err := os.Stat(templatePath); err != nil {
			return fmt.Errorf("template file not found: %s", templatePath)
		}

		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		cfg := cfgManager.Get()
		cls, err := cfg.BuildClassifier()
		if err != nil {
			return err
		}

		pres, err := pptx.OpenPresentation(templatePath)
		if err != nil {
			return err
		}
		logger.Debug("template opened", "path", templatePath, "slides", pres.SlideCount())

		a := analyze.Template(pres, templatePath, cls, analyze.Options{
			PreviewLength: cfg.PreviewLength,
		})

		if err := report.Write(os.Stdout, format, a); err != nil {
			return err
		}

		if len(args) == 2 {
			if err := report.Export(args[1], a); err != nil {
				return err
			}
			fmt.Printf("Analysis saved: %s\n", args[1])
		}
		return nil
	},
}
