package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veritaspress/catechist/internal/container"
	"github.com/veritaspress/catechist/internal/typeset"
	"github.com/veritaspress/catechist/pkg/types"
)

var typesetCmd = &cobra.Command{
	Use:   "typeset",
	Short: "Typeset a LaTeX document to PDF in a TeX container",
	Long: `Typeset runs latexmk inside a containerized TeX distribution (docker or
podman) against the given .tex file. The document directory is mounted
into the container; engine failures are reported verbatim.`,
	RunE: runTypeset,
}

func runTypeset(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	rt, err := container.DetectRuntime()
	if err != nil {
		return err
	}

	eng, err := typeset.New(rt, typesetConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	pdfPath, err := eng.Typeset(input, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "typeset: %s\n", pdfPath)
	return nil
}

// typesetConfigFromFlags assembles the typesetting settings: flags win
// over config file values.
func typesetConfigFromFlags(cmd *cobra.Command) types.TypesetConfig {
	cfg := types.TypesetConfig{
		Engine: viper.GetString("engine"),
		Image:  viper.GetString("image"),
	}
	if v, _ := cmd.Flags().GetString("engine"); cmd.Flags().Changed("engine") || cfg.Engine == "" {
		cfg.Engine = v
	}
	if v, _ := cmd.Flags().GetString("image"); cmd.Flags().Changed("image") || cfg.Image == "" {
		cfg.Image = v
	}
	return cfg
}

func init() {
	typesetCmd.Flags().String("input", "catechism.tex", "LaTeX file to typeset")
	typesetCmd.Flags().String("engine", typeset.DefaultEngine, "latexmk engine: xelatex, lualatex, or pdflatex")
	typesetCmd.Flags().String("image", typeset.DefaultImage, "TeX container image")

	rootCmd.AddCommand(typesetCmd)
}
