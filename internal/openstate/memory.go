package openstate

import "sync"

// Memory keeps the open state for the lifetime of the process
type Memory struct {
	mu   sync.Mutex
	open map[string]bool
}

func NewMemory() *Memory {
	return &Memory{open: make(map[string]bool)}
}

func (m *Memory) IsOpen(uri string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[uri]
}

func (m *Memory) SetOpen(uri string, open bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if open {
		m.open[uri] = true
	} else {
		delete(m.open, uri)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
