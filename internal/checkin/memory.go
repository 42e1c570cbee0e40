package checkin

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage is a Storage kept in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
	puts   int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryStorage) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = slices.Clone(data)
	m.puts++
	return nil
}

// FailPuts makes every later Put return err. A nil err restores writes.
func (m *MemoryStorage) FailPuts(err error) {
	m.mu.Lock()
	m.putErr = err
	m.mu.Unlock()
}

// Puts reports how many writes succeeded.
func (m *MemoryStorage) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
