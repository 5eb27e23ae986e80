package engine

import (
	"slices"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/parameter"
)

// AnyStore is the type-erased view of a Store used for lifecycle operations
type AnyStore interface {
	RemoveEntity(e core.Entity)
	HasEntity(e core.Entity) bool
	CountEntities() int
	ClearAllComponents()
}

// Store is a container for one component type keyed by entity
// Iteration through GetAllEntities is in ascending entity order, which systems rely on as the tie-break for "first encountered"
type Store[T any] struct {
	components map[core.Entity]T
	entities   []core.Entity // Kept sorted ascending
}

// NewStore creates an empty store for T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T, parameter.StoreInitialCapacity),
		entities:   make([]core.Entity, 0, parameter.StoreInitialCapacity),
	}
}

// SetComponent inserts or replaces the component for e
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	if _, exists := s.components[e]; !exists {
		idx, _ := slices.BinarySearch(s.entities, e)
		s.entities = slices.Insert(s.entities, idx, e)
	}
	s.components[e] = val
}

// GetComponent returns the component for e
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// RemoveEntity deletes e's component; no-op if absent
func (s *Store[T]) RemoveEntity(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	if idx, found := slices.BinarySearch(s.entities, e); found {
		s.entities = slices.Delete(s.entities, idx, idx+1)
	}
}

// HasEntity reports whether e has this component
func (s *Store[T]) HasEntity(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// GetAllEntities returns a snapshot of entities holding this component, ascending
// The snapshot stays valid while the caller mutates the store
func (s *Store[T]) GetAllEntities() []core.Entity {
	return slices.Clone(s.entities)
}

// First returns the lowest entity holding this component
func (s *Store[T]) First() (core.Entity, bool) {
	if len(s.entities) == 0 {
		return core.EntityNone, false
	}
	return s.entities[0], true
}

// CountEntities returns the number of entities with this component
func (s *Store[T]) CountEntities() int {
	return len(s.entities)
}

// ClearAllComponents removes every component
func (s *Store[T]) ClearAllComponents() {
	clear(s.components)
	s.entities = s.entities[:0]
}
