package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// StorageKey is the single key a Storage keeps the state tree under.
const StorageKey = "state"

// Storage persists the whole state tree as one JSON document.
type Storage interface {
	// Load returns the persisted tree. ok is false when nothing was saved.
	Load(ctx context.Context) (state map[string]any, ok bool, err error)
	Save(ctx context.Context, state map[string]any) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the encoded snapshot in memory. It encodes on Save
// like the durable backends, so values that do not survive JSON are
// reported the same way.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load(ctx context.Context) (map[string]any, bool, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()
	if data == nil {
		return nil, false, nil
	}
	state, err := decodeState(data)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (m *MemoryStorage) Save(ctx context.Context, state map[string]any) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

// SetRaw replaces the stored document with data as is.
func (m *MemoryStorage) SetRaw(data []byte) {
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

func encodeState(state map[string]any) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (map[string]any, error) {
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("decode state: %s is not an object", StorageKey)
	}
	return state, nil
}
