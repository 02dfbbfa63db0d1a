package preferences

import (
	"context"
	"sync"

	"reunion-route-service/internal/domain"
)

// MemoryStore is an in-process PreferenceStore for tests and offline runs.
// Safe for concurrent use; reads take a shared lock.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[string]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[string]float64)}
}

func prefKey(owner string, category domain.PreferenceCategory, key string) string {
	return owner + "|" + string(category) + "|" + key
}

func (m *MemoryStore) Get(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.ratings[prefKey(owner, category, key)]
	return v, ok, nil
}

func (m *MemoryStore) Increment(
	ctx context.Context,
	owner string,
	category domain.PreferenceCategory,
	key string,
	delta float64,
) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := prefKey(owner, category, key)
	m.ratings[k] += delta
	return m.ratings[k], nil
}
