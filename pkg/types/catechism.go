// Copyright Veritas Press, 2026. All rights reserved.

// Package types holds the catechism document model shared across the
// pipeline stages: a strict ownership tree of sections, entries, and
// scripture references, built once per run from TOML source and discarded
// after rendering.
package types

// DefaultReferenceColumns is the column count used for a scripture
// reference block when the source gives no explicit hint.
const DefaultReferenceColumns = 2

// Catechism is the root of the document tree: an ordered sequence of
// sections under a document title.
type Catechism struct {
	// Title is the document title (e.g. "The Baptist Larger Catechism").
	Title string `json:"title" yaml:"title"`

	// Sections holds the sections in declaration order. A valid catechism
	// has at least one.
	Sections []Section `json:"sections" yaml:"sections"`
}

// Entries returns all entries of all sections in document order.
func (c *Catechism) Entries() []Entry {
	var out []Entry
	for _, s := range c.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Section groups consecutive entries under a heading.
type Section struct {
	// Title is the section heading (e.g. "Of God").
	Title string `json:"title" yaml:"title"`

	// Entries holds the question/answer entries in declaration order.
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is one question/answer pair with its scripture references.
type Entry struct {
	// Number is the question number. The loader assigns sequential
	// document-wide numbers when the source does not set them explicitly.
	Number int `json:"number" yaml:"number"`

	// Question is the catechism question text. Never empty.
	Question string `json:"question" yaml:"question"`

	// Answer is the answer text. Never empty.
	Answer string `json:"answer" yaml:"answer"`

	// References lists the supporting scripture references in source order.
	References []ScriptureReference `json:"references,omitempty" yaml:"references,omitempty"`
}

// ScriptureReference is one citation supporting an answer.
type ScriptureReference struct {
	// Citation is the human-readable reference text (e.g. "Jn 4:24").
	Citation string `json:"citation" yaml:"citation"`

	// Columns is the display-column hint for the reference block this
	// citation belongs to. Zero means "unset"; consumers fall back to
	// DefaultReferenceColumns.
	Columns int `json:"columns,omitempty" yaml:"columns,omitempty"`

	// URL is the passage lookup link derived from Citation at load time.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ColumnsOrDefault returns the display-column hint, or
// DefaultReferenceColumns when unset.
func (r ScriptureReference) ColumnsOrDefault() int {
	if r.Columns > 0 {
		return r.Columns
	}
	return DefaultReferenceColumns
}

// RenderMode selects the renderer output format.
type RenderMode string

const (
	// ModeMarkdown emits Markdown with semantic fenced divs, consumed by
	// the filter stage.
	ModeMarkdown RenderMode = "markdown"

	// ModeLatex emits a complete LaTeX document directly, bypassing the
	// filter stage.
	ModeLatex RenderMode = "latex"
)
