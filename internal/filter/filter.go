// Copyright Veritas Press, 2026. All rights reserved.

// Package filter rewrites the intermediate Markdown into LaTeX. Semantic
// fenced divs become the typesetting environments the latex-direct
// renderer emits; everything else passes through conservatively. The block
// tree comes from goldmark extended with the fenced-div syntax.
package filter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.yaml.in/yaml/v3"

	"github.com/veritaspress/catechist/internal/render"
)

// handler inspects one semantic div and, when it recognizes the block,
// returns its LaTeX chunk. Handlers are pure; composition below is ordered
// first-match-wins, so a block should carry only one recognized class.
type handler func(div *SemanticDiv, source []byte) (chunk string, ok bool, err error)

// handlers in application order: question, answer, references. Unmatched
// divs fall through to stringification.
var handlers = []handler{handleQuestion, handleAnswer, handleReferences}

func handleQuestion(div *SemanticDiv, source []byte) (string, bool, error) {
	if !div.HasClass(render.ClassQuestion) {
		return "", false, nil
	}
	number, err := strconv.Atoi(div.Attr("number", ""))
	if err != nil || number < 1 {
		return "", false, fmt.Errorf("question block: missing or invalid number attribute %q", div.Attr("number", ""))
	}
	escaped := render.EscapeLatex(render.UnescapeMarkdown(div.Content(source)))
	return render.QuestionEnv(number, escaped), true, nil
}

func handleAnswer(div *SemanticDiv, source []byte) (string, bool, error) {
	if !div.HasClass(render.ClassAnswer) {
		return "", false, nil
	}
	escaped := render.EscapeLatex(render.UnescapeMarkdown(div.Content(source)))
	return render.AnswerEnv(escaped), true, nil
}

// refLink matches one Markdown reference line: [citation](url).
var refLink = regexp.MustCompile(`^\[((?:\\.|[^\]\\])*)\]\((\S*)\)$`)

func handleReferences(div *SemanticDiv, source []byte) (string, bool, error) {
	if !div.HasClass(render.ClassReferences) {
		return "", false, nil
	}
	columns, err := strconv.Atoi(div.Attr("columns", "2"))
	if err != nil || columns < 1 {
		return "", false, fmt.Errorf("references block: invalid columns attribute %q", div.Attr("columns", ""))
	}

	var lines []render.RefLine
	for _, raw := range div.ContentLines(source) {
		if raw == "" {
			continue
		}
		if m := refLink.FindStringSubmatch(raw); m != nil {
			lines = append(lines, render.RefLine{
				Citation: render.EscapeLatex(render.UnescapeMarkdown(m[1])),
				URL:      m[2],
			})
			continue
		}
		// Bare lines render as plain text in the same block.
		lines = append(lines, render.RefLine{
			Citation: render.EscapeLatex(render.UnescapeMarkdown(raw)),
		})
	}
	return render.ReferencesEnv(columns, lines), true, nil
}

// applyHandlers runs the handler chain over a div. Divs nothing recognizes
// pass through as stringified content.
func applyHandlers(div *SemanticDiv, source []byte) (string, error) {
	for _, h := range handlers {
		chunk, ok, err := h(div, source)
		if err != nil {
			return "", err
		}
		if ok {
			return chunk, nil
		}
	}
	return render.EscapeLatex(render.UnescapeMarkdown(div.Content(source))), nil
}

// Apply transforms intermediate Markdown into LaTeX. With standalone set,
// the output is a complete document (preamble, title from the Markdown
// frontmatter); otherwise only the body is produced.
func Apply(src []byte, standalone bool) (string, error) {
	title, body, err := splitFrontmatter(src)
	if err != nil {
		return "", err
	}

	md := goldmark.New(goldmark.WithExtensions(&DivExtension{}))
	doc := md.Parser().Parse(text.NewReader(body))

	var chunks []string
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *SemanticDiv:
			chunk, err := applyHandlers(node, body)
			if err != nil {
				return ast.WalkStop, err
			}
			chunks = append(chunks, chunk)
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			chunks = append(chunks, render.SectionHeading(render.UnescapeMarkdown(rawText(node, body))))
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			chunks = append(chunks, render.EscapeLatex(render.UnescapeMarkdown(rawText(node, body))))
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			chunks = append(chunks, `\hrulefill`)
			return ast.WalkSkipChildren, nil

		default:
			return ast.WalkContinue, nil
		}
	})
	if walkErr != nil {
		return "", walkErr
	}

	if standalone {
		return render.BuildDocument(title, chunks), nil
	}
	return render.BuildBody(chunks), nil
}

// ApplyFile filters the Markdown at inputPath and writes the LaTeX to
// outputPath. Nothing is written when filtering fails.
func ApplyFile(inputPath, outputPath string, standalone bool) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	out, err := Apply(src, standalone)
	if err != nil {
		return fmt.Errorf("filtering %s: %w", inputPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// rawText joins the raw source lines of a block node, without trailing
// newlines.
func rawText(n ast.Node, source []byte) string {
	var b bytes.Buffer
	segments := n.Lines()
	for i := 0; i < segments.Len(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		s := segments.At(i)
		b.Write(bytes.TrimRight(s.Value(source), "\n"))
	}
	return b.String()
}

// splitFrontmatter strips the YAML frontmatter block and extracts the
// document title. Input without frontmatter passes through with an empty
// title.
func splitFrontmatter(src []byte) (title string, body []byte, err error) {
	delim := []byte("---\n")
	if !bytes.HasPrefix(src, delim) {
		return "", src, nil
	}
	rest := src[len(delim):]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return "", nil, fmt.Errorf("unterminated frontmatter")
	}

	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal(rest[:end+1], &fm); err != nil {
		return "", nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm.Title, rest[end+len("\n---\n"):], nil
}
