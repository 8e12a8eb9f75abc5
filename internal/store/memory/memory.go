// Package memory is an in-process document store used by tests and
// scratch runs. Nothing survives the process.
package memory

import (
	"context"
	"errors"
	"sync"

	"gastos/internal/core"
	"gastos/internal/store"
)

// ErrNoBackup is returned by Backup: there is no durable location to
// snapshot into.
var ErrNoBackup = errors.New("memory backend does not persist backups")

type Store struct {
	mu    sync.Mutex
	doc   *core.Document
	saves int
}

func New() *Store {
	return &Store{doc: core.NewDocument()}
}

// NewWith seeds the store with a document, cloning it so the caller's
// copy stays independent.
func NewWith(doc *core.Document) *Store {
	clone := doc.Clone()
	clone.Normalize()
	return &Store{doc: clone}
}

func (s *Store) Load(_ context.Context) (*core.Document, *store.CorruptionNotice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil, nil
}

func (s *Store) Save(_ context.Context, doc *core.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.saves++
	return nil
}

func (s *Store) Backup(_ context.Context) (string, error) {
	return "", ErrNoBackup
}

// SaveCount reports how many saves happened. Tests use it to assert
// batched persistence.
func (s *Store) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
