// bbs/memory.go
package bbs

import (
	"context"
	"sync"
)

// MemoryStore is a PersistencePort that keeps channel snapshots in
// process memory. It stands in for real storage in tests and local
// development, the way the early cookie-backed variant did for the
// hosted backend.
type MemoryStore struct {
	mu       sync.Mutex
	channels map[string][]Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{channels: make(map[string][]Post)}
}

func (m *MemoryStore) Load(ctx context.Context, channelID string) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyPosts(m.channels[channelID]), nil
}

func (m *MemoryStore) Save(ctx context.Context, channelID string, posts []Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[channelID] = copyPosts(posts)
	return nil
}
