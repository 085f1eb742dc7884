package services

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory, keyed by owner and id.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]*Document
	now  func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]*Document),
		now:  time.Now,
	}
}

func (s *MemoryStore) List(ownerID string, kind Kind) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.docs[ownerID]))
	for _, d := range s.docs[ownerID] {
		if kind != "" && d.Kind != kind {
			continue
		}
		out = append(out, *d.Clone())
	}
	slices.SortFunc(out, func(a, b Document) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Get(ownerID, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[ownerID][id]
	if !ok {
		return nil, ErrNotFound
	}
	return d.Clone(), nil
}

func (s *MemoryStore) Save(doc *Document) (string, error) {
	if doc == nil || doc.OwnerID == "" {
		return "", ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.docs[doc.OwnerID]
	now := s.now().UTC()
	stored := doc.Clone()

	if stored.ID == "" {
		stored.ID = uuid.NewString()
		stored.CreatedAt = now
	} else {
		existing, ok := owned[stored.ID]
		if !ok {
			return "", ErrNotFound
		}
		stored.CreatedAt = existing.CreatedAt
	}
	stored.UpdatedAt = now

	if owned == nil {
		owned = make(map[string]*Document)
		s.docs[doc.OwnerID] = owned
	}
	owned[stored.ID] = stored

	doc.ID = stored.ID
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt
	return stored.ID, nil
}

func (s *MemoryStore) Delete(ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[ownerID][id]; !ok {
		return ErrNotFound
	}
	delete(s.docs[ownerID], id)
	return nil
}
