package repository

import "sync"

// orderedStore is an insertion-ordered, mutex-guarded collection keyed by id.
// Values are copied in and out. The copy is shallow, so types holding maps or
// slices must clone them in their repository.
type orderedStore[T any] struct {
	mu    sync.RWMutex
	ids   []string
	items map[string]T
}

func newOrderedStore[T any]() *orderedStore[T] {
	return &orderedStore[T]{items: make(map[string]T)}
}

// insert appends item under id. guard, when set, runs against every stored
// item while the write lock is held and aborts the insert on error.
func (s *orderedStore[T]) insert(id string, item T, guard func(existing T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ErrDuplicateID
	}
	if guard != nil {
		for _, existingID := range s.ids {
			if err := guard(s.items[existingID]); err != nil {
				return err
			}
		}
	}
	s.ids = append(s.ids, id)
	s.items[id] = item
	return nil
}

func (s *orderedStore[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// filter returns the items matching keep in insertion order. A nil keep matches everything.
func (s *orderedStore[T]) filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		item := s.items[id]
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *orderedStore[T]) count(keep func(T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range s.ids {
		if keep == nil || keep(s.items[id]) {
			n++
		}
	}
	return n
}

// update applies mutate to a copy of the stored item and replaces it when
// mutate succeeds. The whole read-modify-write happens under the write lock.
func (s *orderedStore[T]) update(id string, mutate func(*T) error) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	if err := mutate(&item); err != nil {
		var zero T
		return zero, true, err
	}
	s.items[id] = item
	return item, true, nil
}

func (s *orderedStore[T]) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existingID := range s.ids {
		if existingID == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}
