package types

import "slices"

// OrderedSet keeps unique values in insertion order. Iteration order is
// deterministic, which keeps synthesized requests and encoded urls stable.
type OrderedSet[T comparable] struct {
	values []T
	index  map[T]int
}

func NewOrderedSet[T comparable](values ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{
		values: make([]T, 0, len(values)),
		index:  make(map[T]int, len(values)),
	}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v unless it is already present, reports whether the set changed.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.values)
	s.values = append(s.values, v)
	return true
}

// Remove deletes v keeping the relative order of the rest.
func (s *OrderedSet[T]) Remove(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	s.values = slices.Delete(s.values, i, i+1)
	delete(s.index, v)
	for j := i; j < len(s.values); j++ {
		s.index[s.values[j]] = j
	}
	return true
}

// Toggle adds v when absent and removes it when present.
func (s *OrderedSet[T]) Toggle(v T) {
	if !s.Remove(v) {
		s.Add(v)
	}
}

func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *OrderedSet[T]) Clear() bool {
	if len(s.values) == 0 {
		return false
	}
	s.values = s.values[:0]
	clear(s.index)
	return true
}

func (s *OrderedSet[T]) Len() int {
	return len(s.values)
}

// Values returns a copy, never nil.
func (s *OrderedSet[T]) Values() []T {
	ret := make([]T, len(s.values))
	copy(ret, s.values)
	return ret
}
