// Copyright Veritas Press, 2026. All rights reserved.

// Package main is the entry point for the catechist CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the catechist CLI.
var rootCmd = &cobra.Command{
	Use:   "catechist",
	Short: "Convert catechism TOML sources into Markdown, LaTeX, and PDF",
	Long: `catechist turns a catechism written as TOML source files into publishable
documents. The pipeline loads the sources into a document tree, renders
Markdown with semantic blocks or LaTeX directly, rewrites semantic blocks
into typesetting environments, and drives a containerized TeX engine to
produce the final PDF.

Each stage is a subcommand: convert, filter, typeset, and build. The index
subcommand maintains a queryable SQLite index of scripture references.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catechist.yaml or ~/.config/catechist/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catechist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catechist"))
		}
	}

	viper.SetEnvPrefix("CATECHIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
