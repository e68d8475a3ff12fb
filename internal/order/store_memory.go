package order

import "context"

// MemStore is immutable after construction, so it needs no lock.
type MemStore struct {
	items []Order
	byID  map[string]int
}

func NewMemStore(seed ...Order) *MemStore {
	s := &MemStore{
		items: append([]Order(nil), seed...),
		byID:  make(map[string]int, len(seed)),
	}
	for i, o := range s.items {
		s.byID[o.ID] = i
	}
	return s
}

func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) List(ctx context.Context) ([]Order, error) {
	out := make([]Order, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Order, bool, error) {
	i, ok := s.byID[id]
	if !ok {
		return Order{}, false, nil
	}
	return s.items[i], true, nil
}
