package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veritaspress/catechist/internal/filter"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Rewrite semantic Markdown blocks into LaTeX environments",
	Long: `Filter reads Markdown produced by convert, recognizes the semantic blocks
(catechism-question, catechism-answer, scripture-references), and rewrites
them into the corresponding typesetting environments. Unrecognized blocks
pass through. With --standalone the output is a complete LaTeX document;
otherwise only the body is emitted.`,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	standalone, _ := cmd.Flags().GetBool("standalone")

	if err := filter.ApplyFile(input, output, standalone); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "filtered: %s -> %s\n", input, output)
	return nil
}

func init() {
	filterCmd.Flags().String("input", "catechism.md", "intermediate Markdown file")
	filterCmd.Flags().String("output", "catechism.tex", "output LaTeX file")
	filterCmd.Flags().Bool("standalone", true, "emit a complete LaTeX document instead of the body only")

	rootCmd.AddCommand(filterCmd)
}
