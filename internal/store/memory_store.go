package store

import (
	"context"
	"sync"

	"go-fieldtrack/internal/domain"
)

// MemoryStore keeps encoded snapshots in process memory. Encoding on save
// keeps its behavior identical to the durable stores.
type MemoryStore struct {
	mu    sync.Mutex
	key   string
	blobs map[string][]byte
}

func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultKey
	}
	return &MemoryStore{key: key, blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	payload, ok := m.blobs[m.key]
	m.mu.Unlock()
	if !ok {
		return domain.Snapshot{}, ErrNotFound
	}
	return Decode(m.key, payload)
}

func (m *MemoryStore) Save(ctx context.Context, snap domain.Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blobs[m.key] = payload
	m.mu.Unlock()
	return nil
}

// Put stores a raw blob, bypassing the encoder.
func (m *MemoryStore) Put(payload []byte) {
	m.mu.Lock()
	m.blobs[m.key] = append([]byte(nil), payload...)
	m.mu.Unlock()
}
