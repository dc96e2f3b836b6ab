package history

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/models"
)

// memoryStore is a map-backed [Store] for tests and ephemeral runs.
type memoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.ClipboardItem
}

// NewMemoryStore constructs an in-memory [Store].
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[uuid.UUID]models.ClipboardItem)}
}

func (s *memoryStore) SaveCaptured(_ context.Context, item models.ClipboardItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *memoryStore) ItemByID(_ context.Context, id uuid.UUID) (models.ClipboardItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return models.ClipboardItem{}, ErrItemNotFound
	}
	return item, nil
}

func (s *memoryStore) AllItemIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memoryStore) InsertSyncedItem(_ context.Context, item models.ClipboardItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *memoryStore) DeleteSyncedItem(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *memoryStore) TouchPasteCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ErrItemNotFound
	}
	item.PasteCount++
	s.items[id] = item
	return nil
}
