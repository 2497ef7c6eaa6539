package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/wishlist/internal/logger"
	"github.com/idilsaglam/wishlist/internal/model"
)

// Observer receives the full ordered collection after every committed change.
// The slice is a copy owned by the observer.
//
// Observers run synchronously on the mutating goroutine. They may call List,
// Count and IsEmpty but must not call Add, Delete or Subscribe.
type Observer func(wishes []model.Wish)

type subscription struct {
	id int
	fn Observer
}

// WishStore owns the wish collection: it commits mutations to a Repository,
// keeps the ordered snapshot in memory and pushes it to observers.
type WishStore struct {
	repo  Repository
	newID func() uuid.UUID // nil means model.NewWish picks the ID

	// writeMu serializes commit + cache update + fan-out so observers see
	// snapshots in mutation order.
	writeMu sync.Mutex

	mu        sync.RWMutex
	wishes    []model.Wish
	observers []subscription
	nextSubID int
}

type Option func(*WishStore)

// WithIDGenerator replaces uuid.New for new wishes.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *WishStore) { s.newID = fn }
}

// Open loads the persisted collection from repo and returns a ready store.
func Open(ctx context.Context, repo Repository, opts ...Option) (*WishStore, error) {
	wishes, err := repo.Load(ctx)
	if err != nil {
		logger.Error("Failed to load wishes", err)
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	s := &WishStore{
		repo:   repo,
		wishes: append([]model.Wish(nil), wishes...),
	}
	for _, opt := range opts {
		opt(s)
	}
	logger.Debug("Wish store opened", map[string]interface{}{
		"count": len(wishes),
	})
	return s, nil
}

// Add creates a wish with a fresh ID. A blank title is declined with a
// ValidationError and leaves everything untouched.
func (s *WishStore) Add(ctx context.Context, title string) (uuid.UUID, error) {
	t, ok := model.NormalizeTitle(title)
	if !ok {
		logger.Debug("Declined wish with empty title")
		return uuid.Nil, &ValidationError{Err: ErrEmptyTitle}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	w := model.NewWish(t)
	if s.newID != nil {
		w.ID = s.newID()
	}
	if err := s.repo.Insert(ctx, w); err != nil {
		logger.Error("Failed to insert wish", err, map[string]interface{}{
			"wish_id": w.ID.String(),
		})
		return uuid.Nil, &PersistenceError{Op: "add", Err: err}
	}

	s.mu.Lock()
	s.wishes = append(s.wishes, w)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	logger.Info("Wish added", map[string]interface{}{
		"wish_id": w.ID.String(),
		"count":   len(snap),
	})
	notify(obs, snap)
	return w.ID, nil
}

// Delete removes the wish with id. Deleting an unknown id is a no-op.
func (s *WishStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.has(id) {
		logger.Debug("Delete of unknown wish ignored", map[string]interface{}{
			"wish_id": id.String(),
		})
		return nil
	}

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete wish", err, map[string]interface{}{
			"wish_id": id.String(),
		})
		return &PersistenceError{Op: "delete", Err: err}
	}
	if !found {
		// the cache is authoritative for this process; drop the stale entry
		logger.Warn("Wish missing from repository", map[string]interface{}{
			"wish_id": id.String(),
		})
	}

	s.mu.Lock()
	// writeMu keeps the index stable between the check above and here.
	i := indexOf(s.wishes, id)
	s.wishes = append(s.wishes[:i:i], s.wishes[i+1:]...)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	logger.Info("Wish deleted", map[string]interface{}{
		"wish_id": id.String(),
		"count":   len(snap),
	})
	notify(obs, snap)
	return nil
}

// List returns the current collection in insertion order.
func (s *WishStore) List() []model.Wish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Wish(nil), s.wishes...)
}

// Get returns the wish with id, if present.
func (s *WishStore) Get(id uuid.UUID) (model.Wish, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.wishes, id); i >= 0 {
		return s.wishes[i], true
	}
	return model.Wish{}, false
}

func (s *WishStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wishes)
}

func (s *WishStore) IsEmpty() bool { return s.Count() == 0 }

// Subscribe registers fn and immediately calls it with the current
// collection. The returned cancel func unregisters it.
func (s *WishStore) Subscribe(fn Observer) (cancel func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	snap := append([]model.Wish(nil), s.wishes...)
	s.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *WishStore) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.observers {
		if sub.id == id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Close drops all observers and closes the repository.
func (s *WishStore) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.observers = nil
	s.mu.Unlock()

	if err := s.repo.Close(); err != nil {
		return &PersistenceError{Op: "close", Err: err}
	}
	return nil
}

func (s *WishStore) has(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.wishes, id) >= 0
}

// snapshotLocked copies the collection and the observer list. Caller holds s.mu.
func (s *WishStore) snapshotLocked() ([]model.Wish, []subscription) {
	return append([]model.Wish(nil), s.wishes...), append([]subscription(nil), s.observers...)
}

func notify(obs []subscription, snap []model.Wish) {
	for _, sub := range obs {
		// each observer gets its own copy
		sub.fn(append([]model.Wish(nil), snap...))
	}
}

func indexOf(ws []model.Wish, id uuid.UUID) int {
	for i, w := range ws {
		if w.ID == id {
			return i
		}
	}
	return -1
}
