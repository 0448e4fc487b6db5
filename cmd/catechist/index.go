package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veritaspress/catechist/internal/catechism"
	"github.com/veritaspress/catechist/internal/index"
	"github.com/veritaspress/catechist/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the scripture reference index (build, query, export)",
	Long: `Index maintains a SQLite database mapping scripture citations to the
catechism entries that cite them. Use subcommands to rebuild the index
from source, query it by citation, or export its contents.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the reference index from the TOML sources",
	RunE:  runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	cfg := renderConfigFromFlags(cmd)
	cat, err := catechism.LoadDir(cfg.SourceDir, cfg.Title, cfg.Translation)
	if err != nil {
		return err
	}

	store, err := index.NewStore(indexConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Build(context.Background(), cat)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "indexed: %d sections, %d entries, %d references\n",
		summary.Sections, summary.Entries, summary.Refs)
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [citation]",
	Short: "List catechism entries citing a passage",
	Long: `Query searches the reference index by citation text (substring match) and
lists the entries citing the passage, with question number and section.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Query(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(hits, jsonOutput)
}

func formatQueryOutput(hits []index.CitationHit, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No entries cite that passage.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-24s  %s\n", "Q", "Citation", "Section", "Question")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))

	for _, h := range hits {
		question := h.Question
		if len(question) > 34 {
			question = question[:31] + "..."
		}
		section := h.SectionTitle
		if len(section) > 24 {
			section = section[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-24s  %s\n", h.EntryNumber, h.Citation, section, question)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(hits))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the reference index to YAML or JSON",
	RunE:  runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := index.NewStore(indexConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfigFromFlags(cmd *cobra.Command) types.IndexConfig {
	cfg := types.IndexConfig{
		IndexDir:   viper.GetString("index_dir"),
		MaxResults: viper.GetInt("max_results"),
	}
	if v, _ := cmd.Flags().GetString("index-dir"); cmd.Flags().Changed("index-dir") || cfg.IndexDir == "" {
		cfg.IndexDir = v
	}
	if v, _ := cmd.Flags().GetInt("max-results"); cmd.Flags().Changed("max-results") || cfg.MaxResults == 0 {
		cfg.MaxResults = v
	}
	return cfg
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory for the SQLite database and exports")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Build flags.
	indexBuildCmd.Flags().String("source", "src", "source directory containing TOML files")
	indexBuildCmd.Flags().String("title", "Catechism", "document title")
	indexBuildCmd.Flags().String("translation", "ESV", "Bible translation for passage links")

	// Query flags.
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexQueryCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
