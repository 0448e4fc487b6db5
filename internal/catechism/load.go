// Copyright Veritas Press, 2026. All rights reserved.

// Package catechism loads catechism source files into the document model.
// Each TOML file declares one section: a title and its question/answer
// entries with their scripture references. Files are read in lexical
// filename order, which fixes the section order of the document.
package catechism

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/veritaspress/catechist/internal/refs"
	"github.com/veritaspress/catechist/pkg/types"
)

// sectionFile mirrors the TOML schema of one source file.
type sectionFile struct {
	Title   string      `toml:"title"`
	Entries []entryData `toml:"entries"`
}

type entryData struct {
	Number     int             `toml:"number"`
	Question   string          `toml:"question"`
	Answer     string          `toml:"answer"`
	References []referenceData `toml:"references"`
}

type referenceData struct {
	Citation string `toml:"citation"`
	Columns  int    `toml:"columns"`
}

// LoadDir reads all *.toml files under dir and assembles a Catechism with
// the given title. Passage links use the given translation, and compound
// citations ("Jn 4:24; Ps 90:2") become one reference per passage. It fails
// with a *types.SchemaError naming the file, entry index, and field of the
// first fault found; declaration order of sections and entries is preserved.
func LoadDir(dir, title, translation string) (*types.Catechism, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no TOML files found in %s", dir)
	}
	sort.Strings(paths)

	cat := &types.Catechism{Title: title}
	numbering := &numberAssigner{seen: make(map[int]string)}

	for _, path := range paths {
		section, err := loadFile(path, translation, numbering)
		if err != nil {
			return nil, err
		}
		cat.Sections = append(cat.Sections, *section)
	}

	return cat, nil
}

// loadFile parses and validates one section file.
func loadFile(path, translation string, numbering *numberAssigner) (*types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var sf sectionFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, &types.SchemaError{File: path, Reason: fmt.Sprintf("invalid TOML: %v", err)}
	}

	if sf.Title == "" {
		return nil, &types.SchemaError{File: path, Field: "title", Reason: "missing or empty"}
	}
	if len(sf.Entries) == 0 {
		return nil, &types.SchemaError{File: path, Field: "entries", Reason: "section has no entries"}
	}

	section := &types.Section{Title: sf.Title}
	for i, ed := range sf.Entries {
		entry, err := buildEntry(path, i+1, ed, translation, numbering)
		if err != nil {
			return nil, err
		}
		section.Entries = append(section.Entries, *entry)
	}

	return section, nil
}

func buildEntry(path string, idx int, ed entryData, translation string, numbering *numberAssigner) (*types.Entry, error) {
	if ed.Question == "" {
		return nil, &types.SchemaError{File: path, Entry: idx, Field: "question", Reason: "missing or empty"}
	}
	if ed.Answer == "" {
		return nil, &types.SchemaError{File: path, Entry: idx, Field: "answer", Reason: "missing or empty"}
	}
	if ed.Number < 0 {
		return nil, &types.SchemaError{File: path, Entry: idx, Field: "number", Reason: "must be positive"}
	}

	number, err := numbering.assign(path, idx, ed.Number)
	if err != nil {
		return nil, err
	}

	entry := &types.Entry{
		Number:   number,
		Question: ed.Question,
		Answer:   ed.Answer,
	}

	for _, rd := range ed.References {
		if rd.Columns < 0 {
			return nil, &types.SchemaError{File: path, Entry: idx, Field: "columns", Reason: "must be positive"}
		}
		citations := refs.SplitCitations(rd.Citation)
		if len(citations) == 0 {
			return nil, &types.SchemaError{File: path, Entry: idx, Field: "citation", Reason: "missing or empty"}
		}
		for _, cit := range citations {
			entry.References = append(entry.References, types.ScriptureReference{
				Citation: cit,
				Columns:  rd.Columns,
				URL:      refs.GatewayURL(cit, translation),
			})
		}
	}

	return entry, nil
}

// numberAssigner hands out document-wide question numbers. Entries without
// an explicit number get the next sequential value; explicit numbers are
// honored and duplicates rejected.
type numberAssigner struct {
	next int            // last assigned number
	seen map[int]string // number -> file that claimed it
}

func (n *numberAssigner) assign(path string, idx, explicit int) (int, error) {
	number := explicit
	if number == 0 {
		number = n.next + 1
	}

	if prev, dup := n.seen[number]; dup {
		return 0, &types.SchemaError{
			File:   path,
			Entry:  idx,
			Field:  "number",
			Reason: fmt.Sprintf("duplicate question number %d (already used in %s)", number, prev),
		}
	}
	n.seen[number] = path

	if number > n.next {
		n.next = number
	}
	return number, nil
}
