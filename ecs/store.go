package ecs

import (
	"iter"
	"slices"
)

// Store owns the entity set and every registered component table.
// It is not safe for concurrent use.
type Store struct {
	nextID   Entity
	entities []Entity // insertion order, which is also ascending id order
	tables   []AnyTable
}

// NewStore creates an empty store whose first entity will be 1.
func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) register(t AnyTable) {
	s.tables = append(s.tables, t)
}

// CreateEntity allocates a new id and adds it to the entity set.
func (s *Store) CreateEntity() Entity {
	id := s.nextID
	s.nextID++
	s.entities = append(s.entities, id)
	return id
}

// DestroyEntity removes e from the entity set and from every table.
// Destroying an absent entity is a no-op.
func (s *Store) DestroyEntity(e Entity) {
	i, ok := slices.BinarySearch(s.entities, e)
	if !ok {
		return
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	for _, t := range s.tables {
		t.Remove(e)
	}
}

// Alive reports whether e is in the entity set.
func (s *Store) Alive(e Entity) bool {
	_, ok := slices.BinarySearch(s.entities, e)
	return ok
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Entities returns a copy of the entity set in insertion order.
func (s *Store) Entities() []Entity {
	return slices.Clone(s.entities)
}

// Tables returns the registered tables in registration order.
func (s *Store) Tables() []AnyTable {
	return slices.Clone(s.tables)
}

// View yields every entity that has all of the given tables, in insertion
// order. The entity set is captured when iteration starts: entities destroyed
// before they are reached are skipped and entities created meanwhile are not
// visited.
func (s *Store) View(tables ...AnyTable) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.Entities() {
			if !hasAll(e, tables) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Collect snapshots the ids matching tables. Systems that destroy entities
// while walking a view iterate a snapshot taken with Collect.
func (s *Store) Collect(tables ...AnyTable) []Entity {
	return slices.Collect(s.View(tables...))
}

func hasAll(e Entity, tables []AnyTable) bool {
	for _, t := range tables {
		if !t.Has(e) {
			return false
		}
	}
	return true
}
