package ecs

// cursor walks a snapshot of the entity set.
type cursor struct {
	ids []Entity
	pos int
	cur Entity
}

func newCursor(s *Store) cursor {
	return cursor{ids: s.Entities()}
}

func (c *cursor) advance(match func(Entity) bool) bool {
	for c.pos < len(c.ids) {
		e := c.ids[c.pos]
		c.pos++
		if match(e) {
			c.cur = e
			return true
		}
	}
	c.cur = Nil
	return false
}

// Entity returns the entity at the cursor.
func (c *cursor) Entity() Entity {
	return c.cur
}

// Query1 iterates entities having component A.
type Query1[A any] struct {
	cursor
	a *Table[A]
}

// NewQuery1 creates a query over a.
func NewQuery1[A any](s *Store, a *Table[A]) *Query1[A] {
	return &Query1[A]{cursor: newCursor(s), a: a}
}

// Next advances to the next matching entity.
func (q *Query1[A]) Next() bool {
	return q.advance(q.a.Has)
}

// Get returns the current entity's component.
func (q *Query1[A]) Get() *A {
	return q.a.Get(q.cur)
}

// Query2 iterates entities having components A and B.
type Query2[A, B any] struct {
	cursor
	a *Table[A]
	b *Table[B]
}

// NewQuery2 creates a query over a and b.
func NewQuery2[A, B any](s *Store, a *Table[A], b *Table[B]) *Query2[A, B] {
	return &Query2[A, B]{cursor: newCursor(s), a: a, b: b}
}

// Next advances to the next matching entity.
func (q *Query2[A, B]) Next() bool {
	return q.advance(func(e Entity) bool {
		return q.a.Has(e) && q.b.Has(e)
	})
}

// Get returns the current entity's components.
func (q *Query2[A, B]) Get() (*A, *B) {
	return q.a.Get(q.cur), q.b.Get(q.cur)
}

// Query3 iterates entities having components A, B and C.
type Query3[A, B, C any] struct {
	cursor
	a *Table[A]
	b *Table[B]
	c *Table[C]
}

// NewQuery3 creates a query over a, b and c.
func NewQuery3[A, B, C any](s *Store, a *Table[A], b *Table[B], c *Table[C]) *Query3[A, B, C] {
	return &Query3[A, B, C]{cursor: newCursor(s), a: a, b: b, c: c}
}

// Next advances to the next matching entity.
func (q *Query3[A, B, C]) Next() bool {
	return q.advance(func(e Entity) bool {
		return q.a.Has(e) && q.b.Has(e) && q.c.Has(e)
	})
}

// Get returns the current entity's components.
func (q *Query3[A, B, C]) Get() (*A, *B, *C) {
	return q.a.Get(q.cur), q.b.Get(q.cur), q.c.Get(q.cur)
}
