// Copyright Veritas Press, 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/veritaspress/catechist/pkg/types"
)

// preamble is the fixed document setup shared by latex-direct output and
// the filter's standalone mode. It defines one environment per semantic
// block kind: catquestion (takes the question number), catanswer, and
// screfs (takes a column count).
const preamble = `\documentclass[12pt,article]{article}
\usepackage{geometry}
\geometry{margin=1in}
\usepackage{hyperref}
\hypersetup{colorlinks=true,linkcolor=blue,urlcolor=blue}
\usepackage{titlesec}
\usepackage{xcolor}
\usepackage{fancyhdr}
\usepackage{fontspec}
\setmainfont[Path=./fonts/,UprightFont=EBGaramond12-Regular.otf,ItalicFont=EBGaramond12-Italic.otf]{EB Garamond}
\usepackage{setspace}
\onehalfspacing
\usepackage{mdframed}
\usepackage{multicol}
\usepackage{enumitem}

\setcounter{secnumdepth}{0}

\titleformat{\section}{\Large\bfseries\color{black}}{\thesection}{1em}{}

\pagestyle{fancy}
\fancyhead[R]{\doctitle}
\fancyhead[L]{\thepage}
\fancyfoot{}

\newenvironment{catquestion}[1]%
  {\par\addvspace{1.5em}\noindent\large\bfseries\color[RGB]{231, 76, 60}Q.~#1:~}%
  {\par\normalsize\normalfont\color{black}}
\newenvironment{catanswer}%
  {\par\addvspace{0.5em}\noindent A:~}%
  {\par}
\newenvironment{screfs}[1]%
  {\begin{mdframed}[linecolor=blue!20,backgroundcolor=blue!5,linewidth=1pt]%
   \setlength{\columnsep}{2em}\setlength{\parindent}{0pt}%
   \begin{multicols}{#1}\footnotesize\color[RGB]{0, 0, 150}}%
  {\end{multicols}\end{mdframed}}
`

// BuildDocument assembles a complete LaTeX document from body chunks. The
// latex-direct renderer and the filter both go through here, so the two
// paths produce identical documents for equivalent input.
func BuildDocument(title string, chunks []string) string {
	escaped := EscapeLatex(title)
	var b strings.Builder
	fmt.Fprintf(&b, "\\newcommand{\\doctitle}{%s}\n", escaped)
	b.WriteString(preamble)
	b.WriteString("\n\\begin{document}\n\n")
	fmt.Fprintf(&b, "\\title{%s}\n", escaped)
	b.WriteString("\\maketitle\n\\tableofcontents\n\\newpage\n\n")
	b.WriteString(BuildBody(chunks))
	b.WriteString("\n\\end{document}\n")
	return b.String()
}

// BuildBody joins body chunks with blank lines.
func BuildBody(chunks []string) string {
	return strings.Join(chunks, "\n\n") + "\n"
}

// SectionHeading returns the LaTeX heading chunk for a section title.
func SectionHeading(title string) string {
	return fmt.Sprintf("\\section{%s}", EscapeLatex(title))
}

// QuestionEnv wraps an already-escaped question text in the catquestion
// environment carrying its number.
func QuestionEnv(number int, escaped string) string {
	return fmt.Sprintf("\\begin{catquestion}{%d}\n%s\n\\end{catquestion}", number, escaped)
}

// AnswerEnv wraps an already-escaped answer text in the catanswer
// environment.
func AnswerEnv(escaped string) string {
	return fmt.Sprintf("\\begin{catanswer}\n%s\n\\end{catanswer}", escaped)
}

// RefLine is one scripture reference ready for LaTeX emission: the escaped
// citation text and its hyperlink target. An empty URL emits plain text.
type RefLine struct {
	Citation string
	URL      string
}

// ReferencesEnv wraps reference lines in the screfs environment with the
// given column count. Each reference renders as a hyperlink followed by a
// line break.
func ReferencesEnv(columns int, lines []RefLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{screfs}{%d}\n", columns)
	for _, l := range lines {
		if l.URL != "" {
			fmt.Fprintf(&b, "\\href{%s}{%s}\\\\\n", l.URL, l.Citation)
		} else {
			fmt.Fprintf(&b, "%s\\\\\n", l.Citation)
		}
	}
	b.WriteString("\\end{screfs}")
	return b.String()
}

// renderLatex walks the catechism and emits a complete LaTeX document,
// using the same environment emitters the filter stage uses.
func renderLatex(cat *types.Catechism) (string, error) {
	var chunks []string

	for _, section := range cat.Sections {
		chunks = append(chunks, SectionHeading(section.Title))
		for _, entry := range section.Entries {
			if err := checkEntry(entry); err != nil {
				return "", err
			}

			chunks = append(chunks,
				QuestionEnv(entry.Number, EscapeLatex(entry.Question)),
				AnswerEnv(EscapeLatex(entry.Answer)))

			if len(entry.References) > 0 {
				lines := make([]RefLine, len(entry.References))
				for i, r := range entry.References {
					lines[i] = RefLine{Citation: EscapeLatex(r.Citation), URL: r.URL}
				}
				chunks = append(chunks, ReferencesEnv(referenceColumns(entry.References), lines))
			}
		}
	}

	return BuildDocument(cat.Title, chunks), nil
}

// referenceColumns returns the column hint of the first reference that
// carries one, or the default. The hint applies to the whole block.
func referenceColumns(refs []types.ScriptureReference) int {
	for _, r := range refs {
		if r.Columns > 0 {
			return r.Columns
		}
	}
	return types.DefaultReferenceColumns
}
