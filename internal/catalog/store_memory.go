package catalog

import (
	"context"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	items  []Product
	nextID int64
}

func NewMemStore(seed ...Product) *MemStore {
	s := &MemStore{
		items:  make([]Product, 0, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		s.items = append(s.items, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) Create(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.items = append(s.items, p)
	return p, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return p, true, nil
		}
	}
	return Product{}, false, nil
}
