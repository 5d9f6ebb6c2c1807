package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/tlpad/internal"
)

// Store is the translation history log.
type Store struct {
	db *sql.DB
}

// New opens (and creates when missing) the history database at dbPath.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_history (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		service_name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_lookup ON translation_history(source_text, source_lang, target_lang);
	CREATE INDEX IF NOT EXISTS idx_history_created ON translation_history(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record appends entry. Missing ID and Timestamp are filled in.
func (s *Store) Record(ctx context.Context, entry internal.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_history (id, source_text, source_lang, target_lang, translated_text, service_name, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, normalizeText(entry.SourceText), entry.SourceLang, entry.TargetLang,
		entry.TranslatedText, entry.ServiceName, entry.Timestamp.UTC())
	return err
}

// Latest returns the most recent translation of text for the language pair.
func (s *Store) Latest(ctx context.Context, sourceText, sourceLang, targetLang string) (*internal.HistoryEntry, bool, error) {
	var e internal.HistoryEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_text, source_lang, target_lang, translated_text, service_name, created_at
		 FROM translation_history
		 WHERE source_text = ? AND source_lang = ? AND target_lang = ?
		 ORDER BY created_at DESC LIMIT 1`,
		normalizeText(sourceText), sourceLang, targetLang).Scan(
		&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.TranslatedText, &e.ServiceName, &e.Timestamp)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &e, true, nil
}

// List returns entries newest first. A limit of zero or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]internal.HistoryEntry, error) {
	query := `SELECT id, source_text, source_lang, target_lang, translated_text, service_name, created_at
		FROM translation_history ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []internal.HistoryEntry
	for rows.Next() {
		var e internal.HistoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.TranslatedText, &e.ServiceName, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats summarises the history log.
type Stats struct {
	TotalEntries  int
	LanguagePairs int
	Services      int
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT source_lang || '|' || target_lang),
			COUNT(DISTINCT service_name)
		FROM translation_history`).Scan(
		&stats.TotalEntries,
		&stats.LanguagePairs,
		&stats.Services,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Delete removes one entry by ID. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM translation_history WHERE id = ?`, id)
	return err
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// so equal texts typed differently land on the same lookup key.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
