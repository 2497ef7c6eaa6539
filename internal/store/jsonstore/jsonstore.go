package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/wishlist/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every mutation rewrites the whole file through a temp file + rename,
// so a failed write leaves the previous contents in place.

// SchemaVersion is written into every file.
const SchemaVersion = 1

const DefaultFileName = "wishes.json"

type document struct {
	SchemaVersion int          `json:"schema_version"`
	Wishes        []model.Wish `json:"wishes"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a store for path. An empty path means DefaultFileName in the
// working directory. The file is created on first write.
func New(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) ([]model.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Wishes, nil
}

func (s *Store) Insert(_ context.Context, w model.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for _, existing := range doc.Wishes {
		if existing.ID == w.ID {
			return fmt.Errorf("duplicate wish id %s", w.ID)
		}
	}
	doc.Wishes = append(doc.Wishes, w)
	return s.write(doc)
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return false, err
	}
	kept := make([]model.Wish, 0, len(doc.Wishes))
	for _, w := range doc.Wishes {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(doc.Wishes) {
		return false, nil
	}
	doc.Wishes = kept
	if err := s.write(doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) read() (document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document{SchemaVersion: SchemaVersion, Wishes: []model.Wish{}}, nil
		}
		return document{}, fmt.Errorf("read file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.SchemaVersion > SchemaVersion {
		return document{}, fmt.Errorf("unsupported schema version %d (max %d)", doc.SchemaVersion, SchemaVersion)
	}
	if doc.Wishes == nil {
		doc.Wishes = []model.Wish{}
	}
	seen := make(map[uuid.UUID]bool, len(doc.Wishes))
	for i, w := range doc.Wishes {
		if w.ID == uuid.Nil {
			return document{}, fmt.Errorf("wish %d has no id", i)
		}
		if seen[w.ID] {
			return document{}, fmt.Errorf("duplicate wish id %s", w.ID)
		}
		seen[w.ID] = true
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	doc.SchemaVersion = SchemaVersion
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
