//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run executes the catechist binary with the given arguments.
func run(args ...string) error {
	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", bin, args, err)
	}
	return nil
}

// Convert renders the TOML sources under src/ to Markdown and LaTeX.
func Convert() error {
	mg.Deps(Build)
	if err := run("convert", "--source", "src", "--mode", "markdown",
		"--output", filepath.Join("out/markdown", "catechism.md")); err != nil {
		return err
	}
	return run("convert", "--source", "src", "--mode", "latex",
		"--output", filepath.Join("out/latex", "catechism.tex"))
}

// Typeset compiles the rendered LaTeX into a PDF with the container engine.
func Typeset() error {
	mg.Deps(Build)
	return run("typeset", "--input", filepath.Join("out/latex", "catechism.tex"))
}

// Index rebuilds the scripture reference index from the TOML sources.
func Index() error {
	mg.Deps(Build)
	return run("index", "build", "--source", "src", "--index-dir", "index")
}

// Pipeline runs the full conversion, typesetting, and indexing sequence.
func Pipeline() error {
	mg.SerialDeps(Convert, Typeset, Index)
	return nil
}
