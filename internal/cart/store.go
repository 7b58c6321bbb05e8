package cart

import (
	"context"
	"sync"
)

// Store persists cart snapshots per session. Load returns an empty cart for
// sessions with no snapshot; implementations discard snapshots they cannot
// decode rather than failing the request.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]Item, error)
	Save(ctx context.Context, sessionID string, items []Item) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps snapshots in process memory. Used by tests and by local
// development without Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Item)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	return copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, items []Item) error {
	copied := make([]Item, len(items))
	copy(copied, items)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
