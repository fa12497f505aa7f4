package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sandesh/prepquiz/internal/store"
)

// MemStore is an in-memory store.Store for tests.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	// FailWrites makes Put/Delete silently drop changes, simulating a
	// broken underlying storage layer.
	FailWrites bool
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (m *MemStore) Get(ctx context.Context, key string, dst any) bool {
	m.mu.Lock()
	raw, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (m *MemStore) Put(ctx context.Context, key string, doc any) {
	if m.FailWrites {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
}

func (m *MemStore) Delete(ctx context.Context, key string) {
	if m.FailWrites {
		return
	}
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
}

func (m *MemStore) Clear(ctx context.Context) {
	for _, key := range store.Keys {
		m.Delete(ctx, key)
	}
}

// SetRaw stores a raw value directly, bypassing JSON marshalling. Used to
// seed corrupt or stale documents.
func (m *MemStore) SetRaw(key, raw string) {
	m.mu.Lock()
	m.docs[key] = []byte(raw)
	m.mu.Unlock()
}
