// Copyright Veritas Press, 2026. All rights reserved.

package filter

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// SemanticDiv is a block node for a pandoc-style fenced div:
//
//	::: {.some-class key="value"}
//	content lines
//	:::
//
// Content is kept raw; the filter decides how to interpret it based on the
// classes the div carries.
type SemanticDiv struct {
	ast.BaseBlock

	// Classes holds the dot-prefixed classes of the opening line, in order.
	Classes []string

	// Attrs holds the key="value" attributes of the opening line.
	Attrs map[string]string
}

// KindSemanticDiv is the node kind of SemanticDiv.
var KindSemanticDiv = ast.NewNodeKind("SemanticDiv")

// Kind implements ast.Node.
func (n *SemanticDiv) Kind() ast.NodeKind { return KindSemanticDiv }

// IsRaw reports that div content is not parsed as inline Markdown.
func (n *SemanticDiv) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *SemanticDiv) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Classes": strings.Join(n.Classes, " "),
	}, nil)
}

// HasClass reports whether the div carries the given class. Matching is by
// membership; a div may carry several classes.
func (n *SemanticDiv) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Attr returns the named attribute, or fallback when absent.
func (n *SemanticDiv) Attr(key, fallback string) string {
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	return fallback
}

// ContentLines returns the raw content lines of the div, without trailing
// newlines.
func (n *SemanticDiv) ContentLines(source []byte) []string {
	segments := n.Lines()
	lines := make([]string, 0, segments.Len())
	for i := 0; i < segments.Len(); i++ {
		s := segments.At(i)
		lines = append(lines, strings.TrimRight(string(s.Value(source)), "\n"))
	}
	return lines
}

// Content returns the raw content of the div as a single string.
func (n *SemanticDiv) Content(source []byte) string {
	return strings.Join(n.ContentLines(source), "\n")
}

// divHeader matches the opening line after the ::: marker, e.g.
// ` {.catechism-question number="1"}`.
var (
	divHeader  = regexp.MustCompile(`^\s*\{([^}]*)\}\s*$`)
	divAttr    = regexp.MustCompile(`^([A-Za-z][\w-]*)="([^"]*)"$`)
	divMarker  = ":::"
	closerLine = regexp.MustCompile(`^:::\s*$`)
)

// parseDivHeader splits the brace content into classes and attributes.
func parseDivHeader(rest string) (classes []string, attrs map[string]string, ok bool) {
	m := divHeader.FindStringSubmatch(rest)
	if m == nil {
		return nil, nil, false
	}
	attrs = make(map[string]string)
	for _, tok := range strings.Fields(m[1]) {
		switch {
		case strings.HasPrefix(tok, "."):
			classes = append(classes, tok[1:])
		default:
			am := divAttr.FindStringSubmatch(tok)
			if am == nil {
				return nil, nil, false
			}
			attrs[am[1]] = am[2]
		}
	}
	return classes, attrs, true
}

// divParser is a goldmark block parser for fenced divs.
type divParser struct{}

// NewDivParser returns the fenced-div block parser.
func NewDivParser() parser.BlockParser { return &divParser{} }

func (p *divParser) Trigger() []byte { return []byte{':'} }

func (p *divParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != ':' {
		return nil, parser.NoChildren
	}
	rest := strings.TrimRight(string(line[pos:]), "\n")
	if !strings.HasPrefix(rest, divMarker) {
		return nil, parser.NoChildren
	}
	classes, attrs, ok := parseDivHeader(rest[len(divMarker):])
	if !ok {
		return nil, parser.NoChildren
	}

	reader.Advance(segment.Len() - 1)
	return &SemanticDiv{Classes: classes, Attrs: attrs}, parser.NoChildren
}

func (p *divParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if closerLine.MatchString(strings.TrimRight(string(line), "\n")) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *divParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *divParser) CanInterruptParagraph() bool { return true }

func (p *divParser) CanAcceptIndentedLine() bool { return false }

// DivExtension registers the fenced-div syntax on a goldmark parser.
type DivExtension struct{}

// Extend implements goldmark.Extender.
func (e *DivExtension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewDivParser(), 500),
	))
}
