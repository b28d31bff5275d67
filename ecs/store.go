package ecs

// Store is a sparse-set container for component type T: a densely packed
// component slice for cache-friendly iteration, a parallel slice of owning
// entity handles, and a sparse index keyed by entity index. Existence checks,
// lookup, and removal are all O(1); removal swaps the last element into the
// vacated slot, so dense order is unstable across destroys.
type Store[T any] struct {
	components []T
	entities   []Entity
	sparse     []int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Create appends a zero-valued component for e and returns a pointer to it.
// The pointer stays valid until the next Create or Destroy on this store.
// Creating a component for an entity that already has one corrupts the store;
// callers guard with Has where that isn't structurally impossible.
func (s *Store[T]) Create(e Entity) *T {
	i := int(e.Index())
	for i >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[i] = len(s.components)
	var zero T
	s.components = append(s.components, zero)
	s.entities = append(s.entities, e)
	return &s.components[len(s.components)-1]
}

// Destroy removes e's component by swapping the last dense element into its
// slot. No-op if e has no component here.
func (s *Store[T]) Destroy(e Entity) {
	if !s.Has(e) {
		return
	}
	i := int(e.Index())
	slot := s.sparse[i]
	last := len(s.components) - 1
	if slot < last {
		s.components[slot] = s.components[last]
		s.entities[slot] = s.entities[last]
		s.sparse[s.entities[slot].Index()] = slot
	}
	s.components = s.components[:last]
	s.entities = s.entities[:last]
	s.sparse[i] = -1
}

// Has reports whether e currently owns a component in this store. The dense
// slot must echo the full handle, so stale-generation handles are rejected.
func (s *Store[T]) Has(e Entity) bool {
	i := int(e.Index())
	if i >= len(s.sparse) {
		return false
	}
	slot := s.sparse[i]
	return slot >= 0 && slot < len(s.entities) && s.entities[slot] == e
}

// Get returns a pointer to e's component, or nil if absent.
func (s *Store[T]) Get(e Entity) *T {
	if !s.Has(e) {
		return nil
	}
	return &s.components[s.sparse[e.Index()]]
}

// All returns the dense component slice, parallel to Entities.
func (s *Store[T]) All() []T {
	return s.components
}

// Entities returns the dense entity handle slice, parallel to All.
func (s *Store[T]) Entities() []Entity {
	return s.entities
}

func (s *Store[T]) Len() int {
	return len(s.components)
}
