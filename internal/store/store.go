// Package store handles SQLite persistence of the prompt library.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/typeracer/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a prompt id does not exist.
var ErrNotFound = errors.New("prompt not found")

// ErrEmptyPrompt is returned when adding a blank prompt.
var ErrEmptyPrompt = errors.New("prompt text is empty")

// Store wraps SQLite access for user-added prompts.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prompts (
			id INTEGER PRIMARY KEY,
			level INTEGER NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (level, text)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_level ON prompts(level);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddPrompts stores prompts for a level in one transaction. Prompts already
// present for the level are skipped. It returns the number of new rows.
func (s *Store) AddPrompts(ctx context.Context, level model.Level, texts []string, now time.Time) (int, error) {
	texts = lo.Map(texts, func(text string, _ int) string { return strings.TrimSpace(text) })
	if len(texts) == 0 || lo.Contains(texts, "") {
		return 0, ErrEmptyPrompt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO prompts (level, text, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	added := 0
	for _, text := range texts {
		var res sql.Result
		res, err = stmt.ExecContext(ctx, int(level), text, now.Format(time.RFC3339Nano))
		if err != nil {
			return 0, err
		}
		var n int64
		n, err = res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// ListPrompts returns stored prompts ordered by level and id. A zero level
// lists every level.
func (s *Store) ListPrompts(ctx context.Context, level model.Level) ([]model.StoredPrompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level, text, created_at FROM prompts
		WHERE (? = 0 OR level = ?)
		ORDER BY level ASC, id ASC`, int(level), int(level))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var prompts []model.StoredPrompt
	for rows.Next() {
		var p model.StoredPrompt
		var lvl int
		var createdAt string
		if err := rows.Scan(&p.ID, &lvl, &p.Text, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		p.Level = model.Level(lvl)
		p.CreatedAt = parsed
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}

// PromptPools groups every stored prompt by level, ready to merge into a bank.
func (s *Store) PromptPools(ctx context.Context) (map[model.Level][]string, error) {
	prompts, err := s.ListPrompts(ctx, 0)
	if err != nil {
		return nil, err
	}
	grouped := lo.GroupBy(prompts, func(p model.StoredPrompt) model.Level { return p.Level })
	return lo.MapValues(grouped, func(ps []model.StoredPrompt, _ model.Level) []string {
		return lo.Map(ps, func(p model.StoredPrompt, _ int) string { return p.Text })
	}), nil
}

// RemovePrompt deletes a stored prompt by id.
func (s *Store) RemovePrompt(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
