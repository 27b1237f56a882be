package ecs

import (
	"slices"
	"testing"
)

type pos struct{ X, Y float64 }
type vel struct{ X, Y float64 }
type tag struct{}

func newTestStore() (*Store, *Table[pos], *Table[vel], *Table[tag]) {
	s := NewStore()
	return s, NewTable[pos](s, "position"), NewTable[vel](s, "velocity"), NewTable[tag](s, "tag")
}

func TestCreateEntityUniqueIncreasing(t *testing.T) {
	s := NewStore()
	prev := Nil
	for i := 0; i < 100; i++ {
		e := s.CreateEntity()
		if e == Nil {
			t.Fatal("CreateEntity returned Nil")
		}
		if e <= prev {
			t.Fatalf("ids not increasing: %d after %d", e, prev)
		}
		prev = e
	}
}

func TestIdsNeverReused(t *testing.T) {
	s := NewStore()
	a := s.CreateEntity()
	s.DestroyEntity(a)
	b := s.CreateEntity()
	if b == a {
		t.Fatalf("id %d reused after destroy", a)
	}
}

func TestStoresAllocateIndependently(t *testing.T) {
	s1 := NewStore()
	s2 := NewStore()
	s1.CreateEntity()
	s1.CreateEntity()

	if got := s2.CreateEntity(); got != 1 {
		t.Errorf("second store's first id = %d, want 1", got)
	}
}

func TestDestroyEntityRemovesFromEveryTable(t *testing.T) {
	s, p, v, g := newTestStore()
	e := s.CreateEntity()
	p.Add(e, pos{1, 2})
	v.Add(e, vel{3, 4})
	g.Add(e, tag{})

	s.DestroyEntity(e)

	if s.Alive(e) {
		t.Error("entity still alive after destroy")
	}
	for _, tbl := range s.Tables() {
		if tbl.Has(e) {
			t.Errorf("table %q still has destroyed entity", tbl.Name())
		}
	}
	if p.Get(e) != nil {
		t.Error("Get returned a row for a destroyed entity")
	}
}

func TestDestroyAbsentIsNoOp(t *testing.T) {
	s, p, _, _ := newTestStore()
	e := s.CreateEntity()
	p.Add(e, pos{})

	s.DestroyEntity(999)
	s.DestroyEntity(e)
	s.DestroyEntity(e)

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestAddToDeadEntityIgnored(t *testing.T) {
	s, p, _, _ := newTestStore()
	e := s.CreateEntity()
	s.DestroyEntity(e)

	if row := p.Add(e, pos{1, 1}); row != nil {
		t.Error("Add on a dead entity returned a row")
	}
	if p.Len() != 0 {
		t.Errorf("table Len() = %d, want 0", p.Len())
	}
}

func TestGetReturnsStablePointer(t *testing.T) {
	s, p, _, _ := newTestStore()
	e := s.CreateEntity()
	p.Add(e, pos{1, 1})

	p.Get(e).X = 42
	for i := 0; i < 50; i++ {
		n := s.CreateEntity()
		p.Add(n, pos{})
	}
	if got := p.Get(e).X; got != 42 {
		t.Errorf("X = %v after unrelated inserts, want 42", got)
	}
}

func TestViewIntersectsPresenceInInsertionOrder(t *testing.T) {
	s, p, v, _ := newTestStore()

	both1 := s.CreateEntity()
	p.Add(both1, pos{})
	v.Add(both1, vel{})

	onlyPos := s.CreateEntity()
	p.Add(onlyPos, pos{})

	onlyVel := s.CreateEntity()
	v.Add(onlyVel, vel{})

	both2 := s.CreateEntity()
	v.Add(both2, vel{}) // added in the other order on purpose
	p.Add(both2, pos{})

	got := s.Collect(p, v)
	want := []Entity{both1, both2}
	if !slices.Equal(got, want) {
		t.Errorf("Collect(p, v) = %v, want %v", got, want)
	}

	if got := s.Collect(p); !slices.Equal(got, []Entity{both1, onlyPos, both2}) {
		t.Errorf("Collect(p) = %v", got)
	}
}

func TestViewSkipsEntitiesDestroyedDuringTraversal(t *testing.T) {
	s, p, _, _ := newTestStore()
	var ids []Entity
	for i := 0; i < 5; i++ {
		e := s.CreateEntity()
		p.Add(e, pos{X: float64(i)})
		ids = append(ids, e)
	}

	var visited []Entity
	for e := range s.View(p) {
		visited = append(visited, e)
		if e == ids[1] {
			s.DestroyEntity(ids[3])
			n := s.CreateEntity()
			p.Add(n, pos{})
		}
	}

	want := []Entity{ids[0], ids[1], ids[2], ids[4]}
	if !slices.Equal(visited, want) {
		t.Errorf("visited %v, want %v", visited, want)
	}
}

func TestViewStopsEarly(t *testing.T) {
	s, p, _, _ := newTestStore()
	for i := 0; i < 3; i++ {
		p.Add(s.CreateEntity(), pos{})
	}
	n := 0
	for range s.View(p) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d entities, want 1", n)
	}
}

func TestQuery2(t *testing.T) {
	s, p, v, _ := newTestStore()
	a := s.CreateEntity()
	p.Add(a, pos{X: 1})
	v.Add(a, vel{X: 10})
	b := s.CreateEntity()
	p.Add(b, pos{X: 2})

	q := NewQuery2(s, p, v)
	count := 0
	for q.Next() {
		count++
		if q.Entity() != a {
			t.Errorf("unexpected entity %d", q.Entity())
		}
		pp, vv := q.Get()
		pp.X += vv.X
	}
	if count != 1 {
		t.Fatalf("query matched %d, want 1", count)
	}
	if p.Get(a).X != 11 {
		t.Errorf("mutation through query not visible: X = %v", p.Get(a).X)
	}
	if q.Entity() != Nil {
		t.Error("exhausted query should report Nil")
	}
}

func TestQuery3AndQuery1(t *testing.T) {
	s, p, v, g := newTestStore()
	a := s.CreateEntity()
	p.Add(a, pos{})
	v.Add(a, vel{})
	g.Add(a, tag{})
	b := s.CreateEntity()
	p.Add(b, pos{})
	v.Add(b, vel{})

	q3 := NewQuery3(s, p, v, g)
	n := 0
	for q3.Next() {
		n++
		pp, vv, gg := q3.Get()
		if pp == nil || vv == nil || gg == nil {
			t.Error("Get returned nil component")
		}
	}
	if n != 1 {
		t.Errorf("Query3 matched %d, want 1", n)
	}

	q1 := NewQuery1(s, v)
	n = 0
	for q1.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("Query1 matched %d, want 2", n)
	}
}
