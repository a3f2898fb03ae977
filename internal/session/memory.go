package session

import (
	"context"
	"sync"

	"lurnix/internal/profile"
)

// Memory is an in-memory Store for tests and for the navigation guard's
// unit tests. It implements the same contract as the SQLite store.
type Memory struct {
	mu      sync.Mutex
	p       *profile.Profile
	loadErr error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory store seeded with p.
func NewMemoryWith(p profile.Profile) *Memory {
	return &Memory{p: &p}
}

// FailLoads makes every subsequent Load return err, simulating
// malformed stored data.
func (m *Memory) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Memory) Load(context.Context) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.p == nil {
		return nil, ErrNoProfile
	}
	cp := *m.p
	return &cp, nil
}

func (m *Memory) Save(_ context.Context, p profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = &p
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = nil
	return nil
}
