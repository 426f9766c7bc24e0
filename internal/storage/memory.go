package storage

import (
	"context"
	"sync"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

// MemoryStore keeps files in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]memoryFile
}

type memoryFile struct {
	info core.FileInfo
	data []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]memoryFile)}
}

func (s *MemoryStore) Save(_ context.Context, name string, data []byte) (core.FileInfo, error) {
	info, err := newFileInfo(name, len(data))
	if err != nil {
		return core.FileInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[info.ID] = memoryFile{info: info, data: append([]byte(nil), data...)}
	return info, nil
}

func (s *MemoryStore) List(_ context.Context) ([]core.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.FileInfo, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, f.info)
	}
	sortNewestFirst(out)
	return out, nil
}

// Get returns a copy of the stored bytes.
func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, core.ErrFileNotFound
	}
	return append([]byte(nil), f.data...), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return core.ErrFileNotFound
	}
	delete(s.files, id)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.files)
	s.files = make(map[string]memoryFile)
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }
