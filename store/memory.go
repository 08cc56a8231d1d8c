// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import "sync"

// Memory is a SetStore held in process memory. It is "durable" for the
// lifetime of the value, which makes it suitable for tests that simulate
// a restart by building a new jar over the same Memory.
//
// The zero value is an empty store ready for use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Entries() (map[string][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyEntries(m.data), nil
}

func (m *Memory) Members(key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.data[key]...), nil
}

func (m *Memory) Add(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]string)
	}
	if !contains(m.data[key], value) {
		m.data[key] = append(m.data[key], value)
	}
	return nil
}

func (m *Memory) Replace(key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values = dedupe(values)
	if len(values) == 0 {
		delete(m.data, key)
		return nil
	}
	if m.data == nil {
		m.data = make(map[string][]string)
	}
	m.data[key] = values
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
