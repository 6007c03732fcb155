package kvstore

import "sync"

// Memory is an in-process KeyValue. The Fail* fields let tests simulate a
// substrate that refuses reads or writes.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	FailReads  error
	FailWrites error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements KeyValue.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return "", false, m.FailReads
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KeyValue.
func (m *Memory) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

// SetMany implements KeyValue.
func (m *Memory) SetMany(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	if m.data == nil {
		m.data = make(map[string]string)
	}
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

// Delete implements KeyValue.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.data, key)
	return nil
}

// Close implements KeyValue.
func (m *Memory) Close() error { return nil }

// Keys returns the stored keys, for tests and diagnostics.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
