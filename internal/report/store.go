// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store writes reports into a SQLite database. Each run adds one reports
// entry and its report_rows; earlier runs are kept.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and its schema.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS reports (
			run_id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS report_rows (
			run_id TEXT NOT NULL REFERENCES reports(run_id),
			position INTEGER NOT NULL,
			pubmed_id TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			edtf_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_author_email TEXT,
			PRIMARY KEY (run_id, pubmed_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_rows_pubmed_id ON report_rows(pubmed_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReport stores meta and rows in one transaction.
func (s *Store) SaveReport(ctx context.Context, meta Meta, rows []Row) error {
	if meta.RunID == "" {
		return fmt.Errorf("saving report: run ID is empty")
	}
	created := meta.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reports (run_id, query, created_at) VALUES (?, ?, ?)`,
		meta.RunID, meta.Query, created.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("inserting report %s: %w", meta.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO report_rows
		(run_id, position, pubmed_id, title, publication_date, edtf_date,
		 non_academic_authors, company_affiliations, corresponding_author_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			meta.RunID, i, r.PubmedID, r.Title, r.PublicationDate, r.EDTFDate,
			r.NonAcademicAuthors, r.CompanyAffiliations, r.CorrespondingAuthorEmail,
		); err != nil {
			return fmt.Errorf("inserting row %s: %w", r.PubmedID, err)
		}
	}

	return tx.Commit()
}

// Rows returns the rows stored for runID in report order.
func (s *Store) Rows(ctx context.Context, runID string) ([]Row, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT pubmed_id, title, publication_date, edtf_date,
		non_academic_authors, company_affiliations, corresponding_author_email
		FROM report_rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rs.Close()

	var rows []Row
	for rs.Next() {
		var r Row
		if err := rs.Scan(&r.PubmedID, &r.Title, &r.PublicationDate, &r.EDTFDate,
			&r.NonAcademicAuthors, &r.CompanyAffiliations, &r.CorrespondingAuthorEmail); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

// Reports returns the stored run IDs, oldest first.
func (s *Store) Reports(ctx context.Context) ([]Meta, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT run_id, query, created_at FROM reports ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rs.Close()

	var metas []Meta
	for rs.Next() {
		var m Meta
		var created string
		if err := rs.Scan(&m.RunID, &m.Query, &created); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at for run %s: %w", m.RunID, err)
		}
		metas = append(metas, m)
	}
	return metas, rs.Err()
}
