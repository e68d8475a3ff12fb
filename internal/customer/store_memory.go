package customer

import (
	"context"
	"sync"
)

// MemStore keeps customers in insertion order. Ids come from a counter that
// never goes backwards, so a delete followed by a create cannot reuse an id.
type MemStore struct {
	mu     sync.RWMutex
	items  []Customer
	nextID int64
}

func NewMemStore(seed ...Customer) *MemStore {
	s := &MemStore{
		items:  make([]Customer, 0, len(seed)),
		nextID: 1,
	}
	for _, c := range seed {
		s.items = append(s.items, c)
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Customer, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) Create(ctx context.Context, c Customer) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	s.items = append(s.items, c)
	return c, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.items {
		if c.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return c, true, nil
		}
	}
	return Customer{}, false, nil
}
