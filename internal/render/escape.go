// Copyright Veritas Press, 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"
	"unicode"
)

// latexSpecial maps LaTeX reserved characters to their escaped form. The
// set follows the classic TeX special-character table.
var latexSpecial = map[rune]string{
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
	'\\': `\textbackslash{}`,
}

// EscapeLatex escapes LaTeX reserved characters in text. The replacement is
// a single pass, so backslashes introduced by one substitution are never
// re-escaped by another.
func EscapeLatex(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if esc, ok := latexSpecial[r]; ok {
			b.WriteString(esc)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// markdownSpecial is the set of characters escaped in Markdown output.
// UnescapeMarkdown inverts exactly this set; keep the two in sync.
const markdownSpecial = "\\`*_{}[]<>#|$"

// EscapeMarkdown backslash-escapes Markdown-significant characters so
// source text survives the intermediate format verbatim.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UnescapeMarkdown removes the backslash escapes added by EscapeMarkdown.
func UnescapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	escaped := false
	for _, r := range text {
		if escaped {
			if !strings.ContainsRune(markdownSpecial, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// checkRenderable rejects text the target formats cannot carry: control
// characters (other than newline and tab) and lines that would collide
// with the fenced-div delimiter. Content is never dropped silently.
func checkRenderable(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return fmt.Errorf("unsupported control character %q", r)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ":::") {
			return fmt.Errorf("line %q collides with the block delimiter", line)
		}
	}
	return nil
}
