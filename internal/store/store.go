// Package store persists analyzed scripts in an embedded SQLite library.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a script ID does not exist in the library.
var ErrNotFound = errors.New("script not found")

// Script is one analyzed screenplay in the library.
type Script struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Pages       int       `json:"pages"`
	Elements    int       `json:"elements"`
	Scenes      int       `json:"scenes"`
	Words       int       `json:"words"`
	ContentHash string    `json:"content_hash"`
	ReportMD    string    `json:"report_md,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats summarizes the whole library.
type Stats struct {
	Scripts    int `json:"scripts"`
	TotalPages int `json:"total_pages"`
	TotalWords int `json:"total_words"`
}

// Store wraps the SQLite script library.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scripts (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	title        TEXT NOT NULL,
	pages        INTEGER NOT NULL,
	elements     INTEGER NOT NULL,
	scenes       INTEGER NOT NULL,
	words        INTEGER NOT NULL,
	content_hash TEXT NOT NULL UNIQUE,
	report_md    TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scripts_created_at ON scripts(created_at);
`

// Open creates or opens the library database at path, enables WAL mode,
// and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The modernc driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent returns the dedup key for a script source.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Save inserts a script. If another script with the same content hash
// already exists, Save returns the existing record and inserts nothing.
func (s *Store) Save(ctx context.Context, script Script) (Script, error) {
	existing, err := s.byHash(ctx, script.ContentHash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Script{}, err
	}

	if script.CreatedAt.IsZero() {
		script.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scripts (id, filename, title, pages, elements, scenes, words, content_hash, report_md, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		script.ID, script.Filename, script.Title, script.Pages, script.Elements,
		script.Scenes, script.Words, script.ContentHash, script.ReportMD,
		script.CreatedAt.Format(time.RFC3339))
	if err != nil {
		// A concurrent Save of the same content can win between the hash
		// check and the insert; the UNIQUE constraint trips here. Treat
		// that as a duplicate and hand back the record that won.
		if existing, lookupErr := s.byHash(ctx, script.ContentHash); lookupErr == nil {
			return existing, nil
		}
		return Script{}, fmt.Errorf("insert script: %w", err)
	}
	return script, nil
}

// Get returns one script by ID, including its stored report.
func (s *Store) Get(ctx context.Context, id string) (Script, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, title, pages, elements, scenes, words, content_hash, report_md, created_at
		 FROM scripts WHERE id = ?`, id)
	return scanScript(row)
}

func (s *Store) byHash(ctx context.Context, hash string) (Script, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, title, pages, elements, scenes, words, content_hash, report_md, created_at
		 FROM scripts WHERE content_hash = ?`, hash)
	return scanScript(row)
}

// List returns scripts newest first, without report bodies.
func (s *Store) List(ctx context.Context) ([]Script, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, title, pages, elements, scenes, words, content_hash, created_at
		 FROM scripts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []Script
	for rows.Next() {
		var sc Script
		var created string
		if err := rows.Scan(&sc.ID, &sc.Filename, &sc.Title, &sc.Pages, &sc.Elements,
			&sc.Scenes, &sc.Words, &sc.ContentHash, &created); err != nil {
			return nil, fmt.Errorf("scan script: %w", err)
		}
		sc.CreatedAt, _ = time.Parse(time.RFC3339, created)
		scripts = append(scripts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scripts: %w", err)
	}
	return scripts, nil
}

// Delete removes a script by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scripts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete script: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete script: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns aggregate counts over the library.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(pages), 0), COALESCE(SUM(words), 0) FROM scripts`).
		Scan(&st.Scripts, &st.TotalPages, &st.TotalWords)
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	return st, nil
}

func scanScript(row *sql.Row) (Script, error) {
	var sc Script
	var created string
	err := row.Scan(&sc.ID, &sc.Filename, &sc.Title, &sc.Pages, &sc.Elements,
		&sc.Scenes, &sc.Words, &sc.ContentHash, &sc.ReportMD, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Script{}, ErrNotFound
	}
	if err != nil {
		return Script{}, fmt.Errorf("scan script: %w", err)
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return sc, nil
}
