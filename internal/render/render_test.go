// Copyright Veritas Press, 2026. All rights reserved.

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veritaspress/catechist/pkg/types"
)

// ofGod is the single-section catechism used throughout these tests.
func ofGod() *types.Catechism {
	return &types.Catechism{
		Title: "Test Catechism",
		Sections: []types.Section{{
			Title: "Of God",
			Entries: []types.Entry{{
				Number:   1,
				Question: "What is God?",
				Answer:   "God is a Spirit.",
				References: []types.ScriptureReference{{
					Citation: "Jn 4:24",
					URL:      "https://www.biblegateway.com/passage/?search=Jn+4%3A24&version=ESV",
				}},
			}},
		}},
	}
}

func TestRenderMarkdown_TaggedBlockOrder(t *testing.T) {
	out, err := Render(ofGod(), types.ModeMarkdown)
	if err != nil {
		t.Fatal(err)
	}

	// three tagged blocks, in question/answer/references order
	qi := strings.Index(out, `::: {.catechism-question number="1"}`)
	ai := strings.Index(out, `::: {.catechism-answer}`)
	ri := strings.Index(out, `::: {.scripture-references columns="2"}`)
	if qi < 0 || ai < 0 || ri < 0 {
		t.Fatalf("missing tagged block in output:\n%s", out)
	}
	if !(qi < ai && ai < ri) {
		t.Errorf("blocks out of order: question=%d answer=%d references=%d", qi, ai, ri)
	}

	for _, want := range []string{
		"## Of God",
		"What is God?",
		"God is a Spirit.",
		"[Jn 4:24](https://www.biblegateway.com/passage/?search=Jn+4%3A24&version=ESV)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderMarkdown_DefaultColumns(t *testing.T) {
	out, err := Render(ofGod(), types.ModeMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `columns="2"`) {
		t.Errorf("reference without explicit columns should render with 2:\n%s", out)
	}
}

func TestRenderMarkdown_ExplicitColumns(t *testing.T) {
	cat := ofGod()
	cat.Sections[0].Entries[0].References[0].Columns = 3

	out, err := Render(cat, types.ModeMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `columns="3"`) {
		t.Errorf("explicit column hint lost:\n%s", out)
	}
}

func TestRenderLatex_Environments(t *testing.T) {
	out, err := Render(ofGod(), types.ModeLatex)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"\\begin{catquestion}{1}\nWhat is God?\n\\end{catquestion}",
		"\\begin{catanswer}\nGod is a Spirit.\n\\end{catanswer}",
		"\\begin{screfs}{2}",
		"\\href{https://www.biblegateway.com/passage/?search=Jn+4%3A24&version=ESV}{Jn 4:24}\\\\",
		"\\section{Of God}",
		"\\begin{document}",
		"\\end{document}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("latex output missing %q", want)
		}
	}
}

func TestRender_Escaping(t *testing.T) {
	cat := ofGod()
	cat.Sections[0].Entries[0].Answer = "Mercy & grace, 100% free, $0 cost, #1 priority_here."

	md, err := Render(cat, types.ModeMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, `\$0 cost, \#1 priority\_here`) {
		t.Errorf("markdown escaping missing:\n%s", md)
	}

	tex, err := Render(cat, types.ModeLatex)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tex, `Mercy \& grace, 100\% free, \$0 cost, \#1 priority\_here.`) {
		t.Errorf("latex escaping missing:\n%s", tex)
	}
}

func TestRender_Deterministic(t *testing.T) {
	for _, mode := range []types.RenderMode{types.ModeMarkdown, types.ModeLatex} {
		first, err := Render(ofGod(), mode)
		if err != nil {
			t.Fatal(err)
		}
		second, err := Render(ofGod(), mode)
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("mode %s: repeated renders differ", mode)
		}
	}
}

func TestRender_ControlCharacterFails(t *testing.T) {
	cat := ofGod()
	cat.Sections[0].Entries[0].Answer = "God is\x00a Spirit."

	_, err := Render(cat, types.ModeMarkdown)
	var re *types.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("want RenderError, got %T: %v", err, err)
	}
	if re.Entry != 1 || re.Field != "answer" {
		t.Errorf("error should locate the fault, got entry=%d field=%q", re.Entry, re.Field)
	}
}

func TestRender_DelimiterCollisionFails(t *testing.T) {
	cat := ofGod()
	cat.Sections[0].Entries[0].Answer = "God is a Spirit.\n::: not a block\nMore text."

	_, err := Render(cat, types.ModeMarkdown)
	var re *types.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("want RenderError, got %T: %v", err, err)
	}
}

func TestRender_EmptyCatechism(t *testing.T) {
	_, err := Render(&types.Catechism{Title: "t"}, types.ModeMarkdown)
	if err == nil {
		t.Fatal("want error for catechism without sections")
	}
}

func TestRenderToFile_NoPartialOutput(t *testing.T) {
	cat := ofGod()
	cat.Sections[0].Entries[0].Question = "bad\x01question"

	path := filepath.Join(t.TempDir(), "out", "catechism.md")
	if err := RenderToFile(cat, types.ModeMarkdown, path); err == nil {
		t.Fatal("want render failure")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed render must not leave an output file")
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "catechism.tex")
	if err := RenderToFile(ofGod(), types.ModeLatex, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\\begin{document}") {
		t.Error("written file is not a latex document")
	}
}

func TestEscapeMarkdownRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		`special *chars* _here_ [and] {braces} #tag | $5 \back`,
		"multi\nline\ntext",
		"`code` and <angle>",
	}
	for _, in := range inputs {
		if got := UnescapeMarkdown(EscapeMarkdown(in)); got != in {
			t.Errorf("round trip failed: %q -> %q", in, got)
		}
	}
}

func TestEscapeLatex_SinglePass(t *testing.T) {
	// A backslash escaped in one substitution must not be re-escaped.
	got := EscapeLatex(`a & b \ c`)
	want := `a \& b \textbackslash{} c`
	if got != want {
		t.Errorf("EscapeLatex = %q, want %q", got, want)
	}
}
