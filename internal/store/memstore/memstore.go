package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/wishlist/internal/model"
)

// Store keeps wishes in memory only. Nothing survives the process.
type Store struct {
	mu     sync.Mutex
	wishes []model.Wish
}

func New(seed ...model.Wish) *Store {
	return &Store{wishes: append([]model.Wish(nil), seed...)}
}

func (s *Store) Load(_ context.Context) ([]model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Wish(nil), s.wishes...), nil
}

func (s *Store) Insert(_ context.Context, w model.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.wishes {
		if existing.ID == w.ID {
			return fmt.Errorf("duplicate wish id %s", w.ID)
		}
	}
	s.wishes = append(s.wishes, w)
	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.wishes {
		if w.ID == id {
			s.wishes = append(s.wishes[:i:i], s.wishes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Close() error { return nil }
