// Copyright Veritas Press, 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one catechism entry with its references for export.
type ExportEntry struct {
	Number     int      `json:"number" yaml:"number"`
	Section    string   `json:"section" yaml:"section"`
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// ExportYAML writes the index contents to indexDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the index contents to indexDir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.json"), data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.number, sec.title, e.question, e.answer
		FROM entries e
		JOIN sections sec ON sec.id = e.section_id
		ORDER BY e.number`)
	if err != nil {
		return nil, fmt.Errorf("querying entries for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var e ExportEntry
		if err := rows.Scan(&e.Number, &e.Section, &e.Question, &e.Answer); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		refs, err := s.entryRefs(ctx, entries[i].Number)
		if err != nil {
			return nil, err
		}
		entries[i].References = refs
	}
	return entries, nil
}

func (s *Store) entryRefs(ctx context.Context, number int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT citation FROM refs WHERE entry_number = ? ORDER BY id`, number)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}
		refs = append(refs, c)
	}
	return refs, rows.Err()
}
