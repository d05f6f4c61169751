package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/eartask-go/internal/domain/batch"
)

// MockRunRepository is an in-memory implementation of batch.RunRepository for testing
type MockRunRepository struct {
	mu     sync.Mutex
	Runs   []*batch.Run
	AddErr error
}

// NewMockRunRepository creates a new mock run repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{}
}

// Add stores a run (in-memory only for testing)
func (m *MockRunRepository) Add(ctx context.Context, run *batch.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddErr != nil {
		return m.AddErr
	}
	m.Runs = append(m.Runs, run)
	return nil
}

// ListRecent returns the newest runs first
func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*batch.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*batch.Run, 0, len(m.Runs))
	for i := len(m.Runs) - 1; i >= 0; i-- {
		out = append(out, m.Runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Kinds returns the kind of every stored run in insertion order
func (m *MockRunRepository) Kinds() []batch.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]batch.Kind, len(m.Runs))
	for i, r := range m.Runs {
		out[i] = r.Kind
	}
	return out
}
