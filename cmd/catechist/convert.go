package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veritaspress/catechist/internal/catechism"
	"github.com/veritaspress/catechist/internal/render"
	"github.com/veritaspress/catechist/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert catechism TOML sources to Markdown or LaTeX",
	Long: `Convert loads the TOML source files, validates the catechism schema, and
renders a single document. Markdown mode emits semantic fenced divs for the
filter stage; latex mode emits the complete typesetting document directly.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	output, _ := cmd.Flags().GetString("output")

	var renderMode types.RenderMode
	switch mode {
	case "markdown":
		renderMode = types.ModeMarkdown
	case "latex":
		renderMode = types.ModeLatex
	default:
		return fmt.Errorf("unknown mode %q: use markdown or latex", mode)
	}

	cfg := renderConfigFromFlags(cmd)
	cat, err := catechism.LoadDir(cfg.SourceDir, cfg.Title, cfg.Translation)
	if err != nil {
		return err
	}
	applyReferenceColumns(cat, cfg.ReferenceColumns)

	if err := render.RenderToFile(cat, renderMode, output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "rendered: %s (%d sections, %d entries)\n",
		output, len(cat.Sections), len(cat.Entries()))
	return nil
}

// renderConfigFromFlags assembles the render settings: flags win over
// config file values, which win over defaults.
func renderConfigFromFlags(cmd *cobra.Command) types.RenderConfig {
	cfg := types.RenderConfig{
		Title:            viper.GetString("title"),
		SourceDir:        viper.GetString("source_dir"),
		OutputDir:        viper.GetString("output_dir"),
		Translation:      viper.GetString("translation"),
		ReferenceColumns: viper.GetInt("reference_columns"),
	}

	if v, _ := cmd.Flags().GetString("source"); cmd.Flags().Changed("source") || cfg.SourceDir == "" {
		cfg.SourceDir = v
	}
	if v, _ := cmd.Flags().GetString("title"); cmd.Flags().Changed("title") || cfg.Title == "" {
		cfg.Title = v
	}
	if v, _ := cmd.Flags().GetString("translation"); cmd.Flags().Changed("translation") || cfg.Translation == "" {
		cfg.Translation = v
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	return cfg
}

// applyReferenceColumns sets the configured column hint on reference
// blocks whose source carries none. Explicit hints in the source win.
func applyReferenceColumns(cat *types.Catechism, columns int) {
	if columns <= 0 {
		return
	}
	for si := range cat.Sections {
		for ei := range cat.Sections[si].Entries {
			refs := cat.Sections[si].Entries[ei].References
			if len(refs) == 0 {
				continue
			}
			hinted := false
			for _, r := range refs {
				if r.Columns > 0 {
					hinted = true
					break
				}
			}
			if !hinted {
				refs[0].Columns = columns
			}
		}
	}
}

func init() {
	convertCmd.Flags().String("source", "src", "source directory containing TOML files")
	convertCmd.Flags().String("output", "catechism.md", "output file path")
	convertCmd.Flags().String("mode", "markdown", "output mode: markdown or latex")
	convertCmd.Flags().String("title", "Catechism", "document title")
	convertCmd.Flags().String("translation", "ESV", "Bible translation for passage links")

	rootCmd.AddCommand(convertCmd)
}
