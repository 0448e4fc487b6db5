// Copyright Veritas Press, 2026. All rights reserved.

// Package typeset drives the external typesetting engine. latexmk runs in
// a TeX container with the document directory mounted; the call blocks
// until the engine exits, and a non-zero exit is reported verbatim.
package typeset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/veritaspress/catechist/internal/container"
	"github.com/veritaspress/catechist/pkg/types"
)

const (
	// DefaultImage is the TeX container image used when none is configured.
	DefaultImage = "texlive/texlive:latest"

	// DefaultEngine is the latexmk engine flag default.
	DefaultEngine = "xelatex"
)

// engineFlags maps supported engine names to their latexmk flag.
var engineFlags = map[string]string{
	"xelatex":  "-xelatex",
	"lualatex": "-lualatex",
	"pdflatex": "-pdf",
}

// Engine typesets LaTeX documents through a containerized TeX distribution.
type Engine struct {
	runtime container.Runtime
	image   string
	flag    string
}

// New creates an Engine using the given container runtime. It verifies
// that the TeX image exists locally and that the configured engine is
// supported before returning.
func New(rt container.Runtime, cfg types.TypesetConfig) (*Engine, error) {
	image := cfg.Image
	if image == "" {
		image = DefaultImage
	}
	engine := cfg.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	flag, ok := engineFlags[engine]
	if !ok {
		return nil, fmt.Errorf("unsupported engine %q (want xelatex, lualatex, or pdflatex)", engine)
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("TeX image not available in %s: %w", rt.Name(), err)
	}

	return &Engine{runtime: rt, image: image, flag: flag}, nil
}

// Typeset runs latexmk on the .tex file at texPath and returns the path of
// the produced PDF. Engine output goes to log.
func (e *Engine) Typeset(texPath string, log io.Writer) (string, error) {
	abs, err := filepath.Abs(texPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", texPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("reading %s: %w", texPath, err)
	}

	dir := filepath.Dir(abs)
	base := filepath.Base(abs)

	args := []string{"latexmk", e.flag, "-interaction=nonstopmode", "-halt-on-error", base}
	if err := e.runtime.RunMounted(e.image, dir, log, args...); err != nil {
		return "", fmt.Errorf("typesetting %s: %w", base, err)
	}

	pdfPath := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("engine exited cleanly but produced no PDF at %s", pdfPath)
	}
	return pdfPath, nil
}
