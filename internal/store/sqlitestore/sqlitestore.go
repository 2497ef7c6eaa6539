package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/idilsaglam/wishlist/internal/model"
)

// SchemaVersion is recorded in schema_meta on first open.
const SchemaVersion = 1

const DefaultFileName = "wishes.db"

// Store persists wishes in an embedded SQLite database. Insertion order is
// kept by an autoincrement sequence column.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultFileName
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_meta table: %w", err)
	}
	var version int
	err := s.db.QueryRow(`SELECT value FROM schema_meta WHERE key = 'version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.Exec(`INSERT INTO schema_meta(key, value) VALUES('version', ?)`, SchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version > SchemaVersion:
		return fmt.Errorf("unsupported schema version %d (max %d)", version, SchemaVersion)
	}
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS wishes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create wishes table: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]model.Wish, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM wishes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select wishes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	wishes := []model.Wish{}
	for rows.Next() {
		var rawID, title string
		if err := rows.Scan(&rawID, &title); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("decode wish id %q: %w", rawID, err)
		}
		wishes = append(wishes, model.Wish{ID: id, Title: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishes: %w", err)
	}
	return wishes, nil
}

func (s *Store) Insert(ctx context.Context, w model.Wish) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO wishes(id, title) VALUES(?, ?)`, w.ID.String(), w.Title); err != nil {
		return fmt.Errorf("insert wish: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) (found bool, retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx, `DELETE FROM wishes WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("delete wish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
