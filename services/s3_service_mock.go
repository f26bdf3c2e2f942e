package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockObjectStore is an in-memory ObjectStore for tests
type MockObjectStore struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMockObjectStore creates an empty in-memory object store
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		objects: make(map[string][]byte),
	}
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read object body: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()
	return nil
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string) (string, error) {
	if !m.Exists(key) {
		return "", fmt.Errorf("object not found in mock store: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Objects returns a copy of the stored objects
func (m *MockObjectStore) Objects() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		objects[k] = v
	}
	return objects
}

// Exists reports whether key is stored
func (m *MockObjectStore) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[key]
	return exists
}
