package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veritaspress/catechist/internal/catechism"
	"github.com/veritaspress/catechist/internal/container"
	"github.com/veritaspress/catechist/internal/render"
	"github.com/veritaspress/catechist/internal/typeset"
	"github.com/veritaspress/catechist/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the whole pipeline: load, render LaTeX, typeset PDF",
	Long: `Build loads the TOML sources, renders the LaTeX document directly, and
typesets it to PDF. It is equivalent to convert --mode latex followed by
typeset. Artifacts land under the output directory.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := renderConfigFromFlags(cmd)
	if v, _ := cmd.Flags().GetString("output-dir"); cmd.Flags().Changed("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = v
	}

	cat, err := catechism.LoadDir(cfg.SourceDir, cfg.Title, cfg.Translation)
	if err != nil {
		return err
	}
	applyReferenceColumns(cat, cfg.ReferenceColumns)

	texPath := filepath.Join(cfg.OutputDir, "catechism.tex")
	if err := render.RenderToFile(cat, types.ModeLatex, texPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "rendered: %s\n", texPath)

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}
	eng, err := typeset.New(rt, typesetConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	pdfPath, err := eng.Typeset(texPath, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "typeset: %s\n", pdfPath)
	return nil
}

func init() {
	buildCmd.Flags().String("source", "src", "source directory containing TOML files")
	buildCmd.Flags().String("output-dir", "out", "directory for rendered artifacts")
	buildCmd.Flags().String("title", "Catechism", "document title")
	buildCmd.Flags().String("translation", "ESV", "Bible translation for passage links")
	buildCmd.Flags().String("engine", typeset.DefaultEngine, "latexmk engine: xelatex, lualatex, or pdflatex")
	buildCmd.Flags().String("image", typeset.DefaultImage, "TeX container image")

	rootCmd.AddCommand(buildCmd)
}
