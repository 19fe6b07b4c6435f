package tokenstore

import "sync"

// MemoryStore keeps credentials in process memory only. Used by tests and
// by one-shot invocations that must not touch the credentials file.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Kind]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Kind]string)}
}

func (s *MemoryStore) Save(kind Kind, value string) {
	s.mu.Lock()
	s.values[kind] = value
	s.mu.Unlock()
}

func (s *MemoryStore) Get(kind Kind) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[kind]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.values = make(map[Kind]string)
	s.mu.Unlock()
}
