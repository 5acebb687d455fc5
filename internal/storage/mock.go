package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/storyloom/engine/pkg/generation"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu          sync.Mutex
	generations map[uuid.UUID]*generation.Phase1Output

	PingErr error
	SaveErr error
	LoadErr error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		generations: make(map[uuid.UUID]*generation.Phase1Output),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) WaitForConnection(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) SaveGeneration(ctx context.Context, id uuid.UUID, out *generation.Phase1Output) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[id] = out
	return nil
}

func (m *MockStorage) LoadGeneration(ctx context.Context, id uuid.UUID) (*generation.Phase1Output, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[id], nil
}

func (m *MockStorage) ListGenerations(ctx context.Context) ([]uuid.UUID, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(m.generations))
	for id := range m.generations {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) DeleteGeneration(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.generations, id)
	return nil
}
