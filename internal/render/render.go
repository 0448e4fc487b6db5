// Copyright Veritas Press, 2026. All rights reserved.

// Package render turns the catechism document model into text: Markdown
// with semantic fenced divs for the filter stage, or a complete LaTeX
// document directly. Both forms carry the same environments after the
// filter runs, so downstream typesetting cannot tell them apart.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/veritaspress/catechist/pkg/types"
)

// Render produces the document text for the given mode. Rendering is
// all-or-nothing: any malformed entry fails the whole document.
func Render(cat *types.Catechism, mode types.RenderMode) (string, error) {
	if len(cat.Sections) == 0 {
		return "", fmt.Errorf("catechism has no sections")
	}

	switch mode {
	case types.ModeMarkdown:
		return renderMarkdown(cat)
	case types.ModeLatex:
		return renderLatex(cat)
	default:
		return "", fmt.Errorf("unknown render mode %q", mode)
	}
}

// RenderToFile renders the catechism and writes the result to path,
// creating parent directories as needed. Nothing is written unless the
// whole document rendered.
func RenderToFile(cat *types.Catechism, mode types.RenderMode, path string) error {
	content, err := Render(cat, mode)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
