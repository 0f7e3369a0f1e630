package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and when no Redis
// address is configured. Entries are evicted lazily on read.
//
// Not suitable for multi-instance deployments: each process would keep its
// own denylist.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time

	// now is overridable in tests.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.entries[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.entries, token)
		return false, nil
	}
	return true, nil
}
