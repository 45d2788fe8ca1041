// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps a local bibliography in SQLite so it can be searched
// alongside remote sources. Records are imported from CSL-YAML files and
// matched with per-term LIKE filters.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/metasearch/pkg/types"
)

// Store manages the bibliography database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			snippet TEXT NOT NULL DEFAULT '',
			lang TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			authors TEXT NOT NULL DEFAULT '[]',
			venue TEXT NOT NULL DEFAULT '',
			doi TEXT NOT NULL DEFAULT '',
			citations INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_date ON records(date)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordID derives the stable row identity of r: a name-based UUID over the
// lower-cased DOI, URL, or title. It returns "" when all three are empty.
func RecordID(r types.RawResult) string {
	var key string
	switch {
	case r.DOI != "":
		key = "doi:" + strings.ToLower(r.DOI)
	case r.URL != "":
		key = "url:" + strings.ToLower(r.URL)
	case strings.TrimSpace(r.Title) != "":
		key = "title:" + strings.ToLower(strings.TrimSpace(r.Title))
	default:
		return ""
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// ImportSummary holds counts from one import run.
type ImportSummary struct {
	Added   int
	Updated int
	Skipped int
}

// Import upserts records in a single transaction. Records with no identity
// are skipped.
func (s *Store) Import(ctx context.Context, records []types.RawResult) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, title, url, snippet, lang, date, authors, venue, doi, citations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, url=excluded.url, snippet=excluded.snippet,
			lang=excluded.lang, date=excluded.date, authors=excluded.authors,
			venue=excluded.venue, doi=excluded.doi, citations=excluded.citations`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		id := RecordID(r)
		if id == "" {
			summary.Skipped++
			continue
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM records WHERE id = ?`, id).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking record %s: %w", id, err)
		}

		authors := r.Authors
		if authors == nil {
			authors = []string{}
		}
		authorsJSON, err := json.Marshal(authors)
		if err != nil {
			return summary, fmt.Errorf("encoding authors: %w", err)
		}

		var citations sql.NullInt64
		if r.Citations != nil {
			citations = sql.NullInt64{Int64: int64(*r.Citations), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			id, r.Title, r.URL, r.Snippet, r.Lang, r.Date,
			string(authorsJSON), r.Venue, r.DOI, citations,
		); err != nil {
			return summary, fmt.Errorf("upserting record %s: %w", id, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// SearchOptions narrows a library search.
type SearchOptions struct {
	Limit  int
	Offset int

	// From and To bound the record date lexically (ISO dates compare in order).
	From string
	To   string
}

// Search returns records where every whitespace-separated term occurs in
// the title, snippet, or author list. Records with more citations come first.
func (s *Store) Search(ctx context.Context, text string, opts SearchOptions) ([]types.RawResult, error) {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty library query")
	}

	var (
		where []string
		args  []any
	)
	for _, t := range terms {
		pattern := "%" + escapeLike(strings.ToLower(t)) + "%"
		where = append(where,
			`(lower(title) LIKE ? ESCAPE '\' OR lower(snippet) LIKE ? ESCAPE '\' OR lower(authors) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if opts.From != "" {
		where = append(where, `date >= ?`)
		args = append(args, opts.From)
	}
	if opts.To != "" {
		where = append(where, `date <= ?`)
		args = append(args, opts.To)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, opts.Offset)

	query := `SELECT title, url, snippet, lang, date, authors, venue, doi, citations
		FROM records WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY COALESCE(citations, -1) DESC, title
		LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []types.RawResult
	for rows.Next() {
		var (
			r           types.RawResult
			authorsJSON string
			citations   sql.NullInt64
		)
		if err := rows.Scan(&r.Title, &r.URL, &r.Snippet, &r.Lang, &r.Date,
			&authorsJSON, &r.Venue, &r.DOI, &citations); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &r.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
		if len(r.Authors) == 0 {
			r.Authors = nil
		}
		if citations.Valid {
			c := int(citations.Int64)
			r.Citations = &c
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
