package edsm

import (
	"context"
	"exobio-route-sorter/internal/domain"
	"fmt"
	"sync"
)

// MockResolver is a deterministic in-memory resolver that counts calls.
// Systems without a position resolve to domain.ErrSystemNotFound.
type MockResolver struct {
	mu        sync.Mutex
	positions map[string]domain.Position
	failures  map[string]error
	calls     map[string]int
	order     []string
}

func NewMockResolver(positions map[string]domain.Position) *MockResolver {
	m := make(map[string]domain.Position, len(positions))
	for k, v := range positions {
		m[k] = v
	}
	return &MockResolver{
		positions: m,
		failures:  make(map[string]error),
		calls:     make(map[string]int),
	}
}

// Fail makes lookups of system return err even if a position is known.
func (m *MockResolver) Fail(system string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[system] = err
}

func (m *MockResolver) Resolve(ctx context.Context, system string) (domain.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[system]++
	m.order = append(m.order, system)

	if err, ok := m.failures[system]; ok {
		return domain.Position{}, &domain.ResolutionError{System: system, Err: err}
	}
	p, ok := m.positions[system]
	if !ok {
		return domain.Position{}, &domain.ResolutionError{System: system, Err: fmt.Errorf("mock: %w", domain.ErrSystemNotFound)}
	}
	return p, nil
}

// Calls returns how many times system was resolved.
func (m *MockResolver) Calls(system string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[system]
}

// TotalCalls returns the number of Resolve calls across all systems.
func (m *MockResolver) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// CallOrder returns the systems in the order they were resolved.
func (m *MockResolver) CallOrder() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}
