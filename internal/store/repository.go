package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/idilsaglam/wishlist/internal/config"
	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/store/jsonstore"
	"github.com/idilsaglam/wishlist/internal/store/memstore"
	"github.com/idilsaglam/wishlist/internal/store/sqlitestore"
)

// Repository is the persistence contract behind a WishStore.
// Insert and Delete are all-or-nothing; Load returns insertion order.
type Repository interface {
	Load(ctx context.Context) ([]model.Wish, error)
	Insert(ctx context.Context, w model.Wish) error
	// Delete reports whether a record with id existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Close() error
}

var (
	_ Repository = (*memstore.Store)(nil)
	_ Repository = (*jsonstore.Store)(nil)
	_ Repository = (*sqlitestore.Store)(nil)
)

// OpenRepository selects a Repository implementation for the configured backend.
//
//	json:   single JSON file (default wishes.json)
//	sqlite: embedded SQLite database (default wishes.db)
//	memory: nothing persisted
func OpenRepository(cfg config.Storage) (Repository, error) {
	cfg.ApplyDefaults()
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.New(cfg.Path), nil
	case config.BackendSQLite:
		return sqlitestore.Open(cfg.Path)
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %s", cfg.Backend)
	}
}
