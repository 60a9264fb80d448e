// Package store persists user preferences as a single JSON record on
// disk. Writes re-read the file first so concurrent writers merge
// field-wise instead of clobbering each other, and every write is an
// atomic rename. Storage failures degrade to in-memory defaults; they
// are logged, never fatal.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pocketwx/pocketwx/internal/domain"
)

// Store reads and writes the preference record at a fixed path.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger

	onWriteError func()
}

// Option configures a Store.
type Option func(*Store)

// WithWriteErrorHook registers a callback invoked once per failed
// write, used to count storage failures.
func WithWriteErrorHook(fn func()) Option {
	return func(s *Store) { s.onWriteError = fn }
}

// New returns a store backed by the file at path. The file and its
// directory are created lazily on first write.
func New(path string, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{path: path, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted record. A missing or unreadable file yields
// defaults; a readable record is normalized before use.
func (s *Store) Load() domain.PreferenceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() domain.PreferenceRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("preference file unreadable, using defaults", "path", s.path, "error", err)
		}
		return domain.DefaultPreferences()
	}

	var rec domain.PreferenceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("preference file corrupt, using defaults", "path", s.path, "error", err)
		return domain.DefaultPreferences()
	}
	rec.Normalize()
	return rec
}

// Update applies mutate to the current on-disk record and writes the
// result back. The read and write happen under one lock so updates from
// different goroutines never lose each other's fields. Write failures
// are logged and swallowed; the session keeps its in-memory state.
func (s *Store) Update(mutate func(*domain.PreferenceRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked()
	mutate(&rec)
	rec.Normalize()

	if err := s.writeLocked(rec); err != nil {
		s.logger.Warn("preference write failed", "path", s.path, "error", err)
		if s.onWriteError != nil {
			s.onWriteError()
		}
	}
}

func (s *Store) writeLocked(rec domain.PreferenceRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing preference file: %w", err)
	}
	return nil
}
