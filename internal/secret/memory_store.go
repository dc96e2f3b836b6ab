package secret

import "sync"

// memoryStore is a map-backed [Store] for tests and ephemeral runs.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore constructs an in-memory [Store]. Values do not survive the
// process; production code paths should prefer [NewFileStore] or an OS
// keychain collaborator.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string][]byte)}
}

func (s *memoryStore) Put(account string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.items[account] = cp
	return true
}

func (s *memoryStore) Get(account string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.items[account]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true
}

func (s *memoryStore) Delete(account string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, account)
	return true
}

func (s *memoryStore) Exists(account string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[account]
	return ok
}
