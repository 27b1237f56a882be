package ecs

// AnyTable provides type-erased access to a component table so the store can
// manage every table uniformly (destruction, presence checks).
type AnyTable interface {
	// Name is the component kind the table holds.
	Name() string
	// Has reports whether e has a row in this table.
	Has(e Entity) bool
	// Remove deletes e's row; absent rows are ignored.
	Remove(e Entity)
	// Len is the number of rows.
	Len() int
}

// Table is a sparse map from entity to component value of type T.
// Rows are heap-allocated so pointers returned by Get stay valid until the
// row is removed.
type Table[T any] struct {
	name  string
	store *Store
	rows  map[Entity]*T
}

// NewTable creates a table for component kind name and registers it with s.
func NewTable[T any](s *Store, name string) *Table[T] {
	t := &Table[T]{
		name:  name,
		store: s,
		rows:  make(map[Entity]*T),
	}
	s.register(t)
	return t
}

// Name returns the component kind.
func (t *Table[T]) Name() string {
	return t.name
}

// Add inserts or replaces e's row and returns a pointer to the stored value.
// Adding to an entity that is not alive is ignored and returns nil.
func (t *Table[T]) Add(e Entity, v T) *T {
	if !t.store.Alive(e) {
		return nil
	}
	row := new(T)
	*row = v
	t.rows[e] = row
	return row
}

// Get returns e's row, or nil when absent.
func (t *Table[T]) Get(e Entity) *T {
	return t.rows[e]
}

// Has reports whether e has a row.
func (t *Table[T]) Has(e Entity) bool {
	_, ok := t.rows[e]
	return ok
}

// Remove deletes e's row.
func (t *Table[T]) Remove(e Entity) {
	delete(t.rows, e)
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}
