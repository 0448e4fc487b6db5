// Copyright Veritas Press, 2026. All rights reserved.

// Package index maintains a queryable SQLite index of the catechism:
// which entries exist, and which scripture passages each one cites. The
// index is rebuilt from source on every build; it is a derived artifact,
// not a store of record.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veritaspress/catechist/pkg/types"
)

const dbFile = "catechism.db"

// Store manages the scripture reference SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the index database at indexDir/catechism.db
// and ensures the schema exists.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, indexDir: cfg.IndexDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			title TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			number INTEGER PRIMARY KEY,
			section_id INTEGER NOT NULL REFERENCES sections(id),
			question TEXT NOT NULL,
			answer TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS refs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_number INTEGER NOT NULL REFERENCES entries(number),
			citation TEXT NOT NULL,
			columns INTEGER NOT NULL DEFAULT 0,
			url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_citation ON refs(citation)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_section ON entries(section_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BuildSummary holds counts from an index build.
type BuildSummary struct {
	Sections int
	Entries  int
	Refs     int
}

// Build replaces the index contents with the given catechism. The rebuild
// runs in one transaction, so a failure leaves the previous index intact.
func (s *Store) Build(ctx context.Context, cat *types.Catechism) (BuildSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"refs", "entries", "sections"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return BuildSummary{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	var summary BuildSummary
	for pos, section := range cat.Sections {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sections (position, title) VALUES (?, ?)`, pos+1, section.Title)
		if err != nil {
			return BuildSummary{}, fmt.Errorf("inserting section %q: %w", section.Title, err)
		}
		sectionID, err := res.LastInsertId()
		if err != nil {
			return BuildSummary{}, fmt.Errorf("section id: %w", err)
		}
		summary.Sections++

		for _, entry := range section.Entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO entries (number, section_id, question, answer) VALUES (?, ?, ?, ?)`,
				entry.Number, sectionID, entry.Question, entry.Answer); err != nil {
				return BuildSummary{}, fmt.Errorf("inserting entry %d: %w", entry.Number, err)
			}
			summary.Entries++

			for _, ref := range entry.References {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO refs (entry_number, citation, columns, url) VALUES (?, ?, ?, ?)`,
					entry.Number, ref.Citation, ref.Columns, ref.URL); err != nil {
					return BuildSummary{}, fmt.Errorf("inserting reference %q: %w", ref.Citation, err)
				}
				summary.Refs++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return BuildSummary{}, fmt.Errorf("committing index: %w", err)
	}
	return summary, nil
}

// CitationHit is one query result: an entry citing the searched passage.
type CitationHit struct {
	Citation     string `json:"citation" yaml:"citation"`
	EntryNumber  int    `json:"entry_number" yaml:"entry_number"`
	Question     string `json:"question" yaml:"question"`
	SectionTitle string `json:"section_title" yaml:"section_title"`
}

// Query returns the entries whose references match the given citation
// text (substring match), in question-number order.
func (s *Store) Query(ctx context.Context, citation string) ([]CitationHit, error) {
	if citation == "" {
		return nil, fmt.Errorf("citation query must not be empty")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.citation, e.number, e.question, sec.title
		FROM refs r
		JOIN entries e ON e.number = r.entry_number
		JOIN sections sec ON sec.id = e.section_id
		WHERE r.citation LIKE ?
		ORDER BY e.number, r.id
		LIMIT ?`,
		"%"+citation+"%", s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var hits []CitationHit
	for rows.Next() {
		var h CitationHit
		if err := rows.Scan(&h.Citation, &h.EntryNumber, &h.Question, &h.SectionTitle); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
