// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store indexes the publications of a built CV record in SQLite so
// the website can query them by category, year or venue.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cvdata/pkg/types"
)

// Store manages the publication index database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS builds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			revision TEXT,
			built_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			category TEXT NOT NULL,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT,
			author TEXT,
			year TEXT,
			venue TEXT,
			doi TEXT,
			url TEXT,
			impact_factor TEXT,
			jcr_quantile TEXT,
			jcr_ranking TEXT,
			jcr_field TEXT,
			build_id INTEGER NOT NULL REFERENCES builds(id),
			PRIMARY KEY (category, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_key ON publications(key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary counts the publications stored per category.
type IngestSummary struct {
	BuildID    int64
	Categories map[string]int
}

// Total returns the number of publications stored.
func (s IngestSummary) Total() int {
	n := 0
	for _, c := range s.Categories {
		n += c
	}
	return n
}

// Ingest replaces the indexed publications with those of rec in a single
// transaction and records the build under revision. Order within each
// category is kept.
func (s *Store) Ingest(ctx context.Context, rec *types.Record, revision string) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO builds (revision, built_at) VALUES (?, ?)`,
		revision, s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("recording build: %w", err)
	}
	buildID, err := res.LastInsertId()
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading build id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM publications`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing publications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (category, position, key, type, title, author, year, venue, doi, url,
			impact_factor, jcr_quantile, jcr_ranking, jcr_field, build_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	summary := IngestSummary{BuildID: buildID, Categories: make(map[string]int)}
	for _, cat := range types.Categories() {
		for i, p := range rec.Publications.Category(cat) {
			_, err := stmt.ExecContext(ctx,
				cat, i, p.Key, p.Type, p.Title, p.Author, p.Year, p.Venue(), p.DOI, p.URL,
				p.ImpactFactor, p.JCRQuantile, p.JCRRanking, p.JCRField, buildID,
			)
			if err != nil {
				return IngestSummary{}, fmt.Errorf("inserting publication %s: %w", p.Key, err)
			}
			summary.Categories[cat]++
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// Row is one indexed publication.
type Row struct {
	Category     string `json:"category"`
	Key          string `json:"key"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Year         string `json:"year"`
	Venue        string `json:"venue"`
	DOI          string `json:"doi"`
	URL          string `json:"url"`
	ImpactFactor string `json:"impact_factor"`
	JCRQuantile  string `json:"jcr_quantile"`
	JCRRanking   string `json:"jcr_ranking"`
	JCRField     string `json:"jcr_field"`
}

// Publications returns the indexed publications of category in stored
// order. An empty category returns every publication, grouped in output
// category order.
func (s *Store) Publications(ctx context.Context, category string) ([]Row, error) {
	query := `SELECT category, key, type, title, author, year, venue, doi, url,
			impact_factor, jcr_quantile, jcr_ranking, jcr_field
		FROM publications`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY CASE category
			WHEN 'early_access' THEN 0 WHEN 'journals' THEN 1
			WHEN 'conferences' THEN 2 ELSE 3 END, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Category, &r.Key, &r.Type, &r.Title, &r.Author, &r.Year, &r.Venue,
			&r.DOI, &r.URL, &r.ImpactFactor, &r.JCRQuantile, &r.JCRRanking, &r.JCRField); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastBuild returns the revision and time of the most recent ingest. It
// returns sql.ErrNoRows when nothing has been ingested.
func (s *Store) LastBuild(ctx context.Context) (revision string, builtAt time.Time, err error) {
	var ts string
	err = s.db.QueryRowContext(ctx,
		`SELECT revision, built_at FROM builds ORDER BY id DESC LIMIT 1`,
	).Scan(&revision, &ts)
	if err != nil {
		return "", time.Time{}, err
	}
	builtAt, err = time.Parse(time.RFC3339, ts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parsing build time: %w", err)
	}
	return revision, builtAt, nil
}
