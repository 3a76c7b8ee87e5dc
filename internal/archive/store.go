// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists fetched paper batches to a local SQLite
// database. Only the CLI writes here; the fetch path itself never reads
// the archive, so every fetch still produces fresh records.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/research-gateway/pkg/types"
)

// Store manages the batch archive database.
type Store struct {
	db *sql.DB
}

// Batch describes one saved fetch run.
type Batch struct {
	ID        string
	CreatedAt time.Time
	Topics    []string
	Count     int
}

// NewStore opens or creates the archive database at cfg.Path, creating
// parent directories and the schema as needed.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("archive path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			topics TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL REFERENCES batches(id),
			identifier TEXT,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			authors TEXT,
			published TEXT,
			link TEXT,
			topic TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_batch_id ON papers(batch_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, summary, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveBatch stores one fetch run and returns the generated batch ID.
func (s *Store) SaveBatch(ctx context.Context, topics []string, papers []types.PaperRecord) (string, error) {
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return "", fmt.Errorf("marshaling topics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, created_at, topics, count) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), string(topicsJSON), len(papers),
	); err != nil {
		return "", fmt.Errorf("inserting batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (batch_id, identifier, title, summary, authors, published, link, topic)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		authorsJSON, err := json.Marshal(p.Authors)
		if err != nil {
			return "", fmt.Errorf("marshaling authors: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			id, p.Identifier, p.Title, p.Summary, string(authorsJSON), p.Published, p.Link, p.Topic,
		); err != nil {
			return "", fmt.Errorf("inserting paper: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing batch: %w", err)
	}
	return id, nil
}

// ListBatches returns all saved batches, newest first.
func (s *Store) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, topics, count FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetBatch returns one batch and its papers in insertion order.
func (s *Store) GetBatch(ctx context.Context, id string) (Batch, []types.PaperRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, topics, count FROM batches WHERE id = ?`, id)
	b, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return Batch{}, nil, fmt.Errorf("batch %s not found", id)
	}
	if err != nil {
		return Batch{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier, title, summary, authors, published, link, topic
		 FROM papers WHERE batch_id = ? ORDER BY rowid`, id)
	if err != nil {
		return Batch{}, nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return Batch{}, nil, err
		}
		papers = append(papers, p)
	}
	return b, papers, rows.Err()
}

// SearchPapers runs a full-text query over archived titles and summaries.
func (s *Store) SearchPapers(ctx context.Context, term string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.identifier, p.title, p.summary, p.authors, p.published, p.link, p.topic
		 FROM papers_fts f JOIN papers p ON p.rowid = f.rowid
		 WHERE papers_fts MATCH ? ORDER BY rank LIMIT ?`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching archive: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner) (Batch, error) {
	var b Batch
	var createdAt, topicsJSON string
	if err := row.Scan(&b.ID, &createdAt, &topicsJSON, &b.Count); err != nil {
		return Batch{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		b.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(topicsJSON), &b.Topics); err != nil {
		return Batch{}, fmt.Errorf("parsing batch topics: %w", err)
	}
	return b, nil
}

func scanPaper(row scanner) (types.PaperRecord, error) {
	var p types.PaperRecord
	var authorsJSON string
	if err := row.Scan(&p.Identifier, &p.Title, &p.Summary, &authorsJSON, &p.Published, &p.Link, &p.Topic); err != nil {
		return types.PaperRecord{}, fmt.Errorf("scanning paper: %w", err)
	}
	if authorsJSON != "" {
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return types.PaperRecord{}, fmt.Errorf("parsing authors: %w", err)
		}
	}
	if p.Authors == nil {
		p.Authors = []string{}
	}
	return p, nil
}
