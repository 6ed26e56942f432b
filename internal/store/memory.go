package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process binding holding canned subkey dumps.
// Subkeys enumerate in insertion order. It backs tests and gives library
// consumers a way to flatten snapshots they already hold.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	dumps map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dumps: make(map[string]string)}
}

// SetDump registers or replaces the dump for a subkey. The name may carry
// a kind tag; first registration fixes the enumeration position.
func (s *MemoryStore) SetDump(name, dump string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dumps[name]; !ok {
		s.order = append(s.order, name)
	}
	s.dumps[name] = dump
}

// ListSubkeys implements Store.
func (s *MemoryStore) ListSubkeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names, nil
}

// FetchRaw implements Store. Lookup tries the exact name first, then the
// first registered name whose pre-tag base matches.
func (s *MemoryStore) FetchRaw(ctx context.Context, base string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if dump, ok := s.dumps[base]; ok {
		return dump, nil
	}
	for _, name := range s.order {
		if matchesBase(name, base) {
			return s.dumps[name], nil
		}
	}
	return "", ErrSubkeyNotFound
}
