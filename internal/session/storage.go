package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a keyed blob store holding serialized session records.
// Load returns os.ErrNotExist (wrapped) when the slot is empty.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// FileStorage keeps each slot as a JSON file in a directory. With an empty
// dir it resolves to <user config dir>/petmanager.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "petmanager")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStorage) Load(key string) ([]byte, error) {
	return os.ReadFile(f.path(key))
}

func (f *FileStorage) Save(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o600)
}

func (f *FileStorage) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
