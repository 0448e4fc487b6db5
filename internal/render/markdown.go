// Copyright Veritas Press, 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/veritaspress/catechist/pkg/types"
)

// Semantic classes carried by the fenced divs of the intermediate Markdown.
// The filter stage dispatches on these.
const (
	ClassQuestion   = "catechism-question"
	ClassAnswer     = "catechism-answer"
	ClassReferences = "scripture-references"
)

// frontmatter is the YAML header of the intermediate Markdown document.
type frontmatter struct {
	Title string `yaml:"title"`
}

// renderMarkdown walks the catechism and emits Markdown with semantic
// fenced divs: one catechism-question, one catechism-answer, and (when
// references exist) one scripture-references block per entry.
func renderMarkdown(cat *types.Catechism) (string, error) {
	var b strings.Builder

	fm, err := yaml.Marshal(frontmatter{Title: cat.Title})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	for _, section := range cat.Sections {
		fmt.Fprintf(&b, "## %s\n\n", EscapeMarkdown(section.Title))
		for _, entry := range section.Entries {
			if err := checkEntry(entry); err != nil {
				return "", err
			}

			fmt.Fprintf(&b, "::: {.%s number=\"%d\"}\n%s\n:::\n\n",
				ClassQuestion, entry.Number, EscapeMarkdown(entry.Question))
			fmt.Fprintf(&b, "::: {.%s}\n%s\n:::\n\n",
				ClassAnswer, EscapeMarkdown(entry.Answer))

			if len(entry.References) > 0 {
				fmt.Fprintf(&b, "::: {.%s columns=\"%d\"}\n",
					ClassReferences, referenceColumns(entry.References))
				for _, r := range entry.References {
					fmt.Fprintf(&b, "[%s](%s)\n", EscapeMarkdown(r.Citation), r.URL)
				}
				b.WriteString(":::\n\n")
			}
		}
	}

	return b.String(), nil
}

// checkEntry verifies every text field of an entry is representable in the
// target markup. A failure aborts the whole render.
func checkEntry(entry types.Entry) error {
	if err := checkRenderable(entry.Question); err != nil {
		return &types.RenderError{Entry: entry.Number, Field: "question", Reason: err.Error()}
	}
	if err := checkRenderable(entry.Answer); err != nil {
		return &types.RenderError{Entry: entry.Number, Field: "answer", Reason: err.Error()}
	}
	for _, r := range entry.References {
		if err := checkRenderable(r.Citation); err != nil {
			return &types.RenderError{Entry: entry.Number, Field: "reference", Reason: err.Error()}
		}
	}
	return nil
}
