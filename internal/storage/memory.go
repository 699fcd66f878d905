package storage

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process Store. It copies every string it keeps, so callers
// may pass request-scoped values.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, ErrNamespaceRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[namespace][key]
	return val, ok, nil
}

func (m *Memory) Items(_ context.Context, namespace string) (map[string]string, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.data[namespace]))
	for k, v := range m.data[namespace] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SetItems(_ context.Context, namespace string, items map[string]string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	if len(items) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.data[namespace]
	if !ok {
		bucket = make(map[string]string, len(items))
		m.data[strings.Clone(namespace)] = bucket
	}
	for k, v := range items {
		bucket[strings.Clone(k)] = strings.Clone(v)
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, namespace string, keys ...string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[namespace], k)
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, namespace string) error {
	if namespace == "" {
		return ErrNamespaceRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
