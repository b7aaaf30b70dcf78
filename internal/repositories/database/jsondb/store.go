// Package jsondb persists the whole dashboard as one JSON document on
// disk. The document shares its shape with the export file, so a data
// file is itself a valid export. Every mutation rewrites the file before
// returning; there is no deferred flush to lose on crash.
package jsondb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

type document struct {
	FinancialItems      []domain.Item      `json:"financialItems"`
	FinancialGoals      []domain.Goal      `json:"financialGoals"`
	FinancialMilestones []domain.Milestone `json:"financialMilestones"`
	ItemOrder           []string           `json:"itemOrder"`
	VisibleMetrics      []string           `json:"visibleMetrics"`
	Theme               string             `json:"theme"`
}

// Store owns the on-disk document. All repositories created from one
// Store share its lock, so cross-collection writes during an import
// cannot interleave with reads.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

// Open loads the document at path, creating an empty one if the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, fmt.Errorf("decoding data file %s: %w", path, err)
	}
	return s, nil
}

// persistLocked writes the document atomically. Callers hold mu.
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp data file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// mutate runs fn under the write lock and persists the changed document.
func (s *Store) mutate(fn func(*document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
	return s.persistLocked()
}

// read runs fn under the read lock.
func (s *Store) read(fn func(document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}
