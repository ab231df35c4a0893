package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avacx/deckclone/internal/compose"
	"github.com/avacx/deckclone/internal/plan"
)

var createCmd = &cobra.Command{
	Use:   "create <template.pptx> <plan.json> <output.pptx>",
	Short: "Create a presentation from a template and a content plan",
	Long: `Create resolves each content plan entry to a template slide (by
explicit template_slide position, or by category), deletes every slide
the plan does not keep, applies the entry's text replacements to the
surviving slides, and writes the result.

Content plan format:
  [
    {
      "template_slide": 0,
      "replacements": {
        "old text": "new text",
        "shape:Title": "replaces the whole Title shape"
      }
    },
    {"type": "ending"}
  ]`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		templatePath, planPath, outputPath := args[0], args[1], args[2]
		if _, err := os.Stat(templatePath); err != nil {
			return fmt.Errorf("template file not found: %s", templatePath)
		}

		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		cls, err := cfgManager.Get().BuildClassifier()
		if err != nil {
			return err
		}

		if err := compose.New(cls, logger).Create(templatePath, p, outputPath); err != nil {
			return err
		}

		fmt.Printf("Created: %s\n", outputPath)
		return nil
	},
}
