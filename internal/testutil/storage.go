package testutil

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	"github.com/dalemusser/waffle/pantry/storage"
)

// MemStorage is an in-memory storage.Store for tests. It records the paths
// it has seen so tests can assert on upload and delete activity.
type MemStorage struct {
	// Embedded nil Store satisfies the full storage.Store interface; only
	// the methods implemented below are expected to be called in tests.
	storage.Store

	mu      sync.Mutex
	objects map[string][]byte

	Puts    []string
	Deletes []string

	// PutErr and DeleteErr, when set, are returned by the next matching call.
	PutErr    error
	DeleteErr error
}

// NewMemStorage creates an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{objects: map[string][]byte{}}
}

func (m *MemStorage) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[path] = data
	m.Puts = append(m.Puts, path)
	return nil
}

func (m *MemStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, path)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.objects[path]; !ok {
		return os.ErrNotExist
	}
	delete(m.objects, path)
	return nil
}

func (m *MemStorage) URL(path string) string {
	return "http://storage.test/" + path
}

// Has reports whether an object exists at path.
func (m *MemStorage) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}
