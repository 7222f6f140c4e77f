// Package memory provides an in-process ledger store. Nothing is persisted;
// it backs dry-run sessions and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"ledger/internal/core"
	"ledger/internal/ledger"
)

type Store struct {
	mu          sync.Mutex
	initialized bool
	items       []core.Transaction
}

var _ ledger.Store = (*Store)(nil)

// New returns an uninitialized store: ReadAll reports ledger.ErrNotFound
// until Initialize or Append is called.
func New() *Store {
	return &Store{}
}

func (s *Store) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	return nil
}

// Append stores the transaction at the end of the log.
func (s *Store) Append(_ context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.items = append(s.items, tx)
	return nil
}

// ReadAll returns a copy so callers never alias the stored slice.
func (s *Store) ReadAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, fmt.Errorf("%w: memory store", ledger.ErrNotFound)
	}
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}
