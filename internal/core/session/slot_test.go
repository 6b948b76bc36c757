package session

import (
	"context"
	"errors"
	"sync"
)

type memorySlot struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
	getErr error
	// failKey makes Set fail for that key only.
	failKey string
}

func newMemorySlot() *memorySlot {
	return &memorySlot{values: make(map[string]string)}
}

func (m *memorySlot) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memorySlot) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if m.failKey != "" && key == m.failKey {
		return errSlotDown
	}
	m.values[key] = value
	return nil
}

func (m *memorySlot) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var errSlotDown = errors.New("slot unavailable")
