package store

import (
	"context"
	"sync"
	"time"
)

type memoryRow struct {
	payload     []byte
	committedAt time.Time
}

// Memory is an in-process Backend. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]memoryRow
	flags    map[string]map[string]bool
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]memoryRow),
		flags:    make(map[string]map[string]bool),
	}
}

func (m *Memory) ReadProfile(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.profiles[sessionID]
	if !ok {
		return nil, ErrNoRow
	}
	return append([]byte(nil), row.payload...), nil
}

func (m *Memory) WriteProfile(_ context.Context, sessionID string, payload []byte, committedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[sessionID] = memoryRow{payload: append([]byte(nil), payload...), committedAt: committedAt}
	return nil
}

func (m *Memory) ReadFlag(_ context.Context, sessionID, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[sessionID][name], nil
}

func (m *Memory) WriteFlag(_ context.Context, sessionID, name string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flags[sessionID]
	if !ok {
		f = make(map[string]bool)
		m.flags[sessionID] = f
	}
	f[name] = value
	return nil
}

func (m *Memory) ClearSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, sessionID)
	delete(m.flags, sessionID)
	return nil
}

func (m *Memory) Close() error { return nil }
