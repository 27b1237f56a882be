package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/biome/ecs"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside", 10, 10},
		{"exact upper", 800, 0},
		{"past upper", 805, 5},
		{"negative", -5, 795},
		{"tiny negative rounds to zero", -1e-20, 0},
		{"multiple wraps", 2405, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.v, 800)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Wrap(%v) = %v, want %v", tt.v, got, tt.want)
			}
			if got < 0 || got >= 800 {
				t.Errorf("Wrap(%v) = %v, outside [0, 800)", tt.v, got)
			}
		})
	}
}

func TestToroidalDelta(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		wantDX, wantDY float64
	}{
		{"direct", 10, 10, 20, 30, 10, 20},
		{"across right edge", 790, 10, 5, 10, 15, 0},
		{"across left edge", 5, 10, 790, 10, -15, 0},
		{"across bottom edge", 10, 475, 10, 3, 0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := ToroidalDelta(tt.x1, tt.y1, tt.x2, tt.y2, 800, 480)
			if math.Abs(dx-tt.wantDX) > 1e-9 || math.Abs(dy-tt.wantDY) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestSpatialGridQueryWrapsEdges(t *testing.T) {
	g := NewSpatialGrid(800, 480, 40)
	g.Insert(1, 795, 240)
	g.Insert(2, 400, 240)

	got := g.QueryRadiusInto(nil, 5, 240, 20, ecs.Nil)
	if len(got) != 1 || got[0].E != 1 {
		t.Fatalf("expected entity 1 across the edge, got %+v", got)
	}
	if math.Abs(got[0].DX-(-10)) > 1e-9 {
		t.Errorf("DX = %v, want -10", got[0].DX)
	}
}

func TestSpatialGridVisitsEachCandidateOnce(t *testing.T) {
	g := NewSpatialGrid(100, 100, 40)
	for i := ecs.Entity(1); i <= 5; i++ {
		g.Insert(i, float64(i)*15, float64(i)*15)
	}

	// Radius larger than the whole torus.
	got := g.QueryRadiusInto(nil, 50, 50, 500, ecs.Nil)
	if len(got) != 5 {
		t.Errorf("expected 5 neighbours, got %d", len(got))
	}
	seen := make(map[ecs.Entity]bool)
	for _, n := range got {
		if seen[n.E] {
			t.Errorf("entity %d returned twice", n.E)
		}
		seen[n.E] = true
	}
}

func TestSpatialGridExcludes(t *testing.T) {
	g := NewSpatialGrid(800, 480, 40)
	g.Insert(1, 100, 100)
	g.Insert(2, 105, 100)

	got := g.QueryRadiusInto(nil, 100, 100, 10, 1)
	if len(got) != 1 || got[0].E != 2 {
		t.Errorf("expected only entity 2, got %+v", got)
	}
}

func TestNearestTieBreaksToLowerID(t *testing.T) {
	g := NewSpatialGrid(800, 480, 40)
	// Equidistant, inserted high id first and in different cells.
	g.Insert(7, 130, 100)
	g.Insert(3, 70, 100)

	n, ok := g.Nearest(100, 100, 50, ecs.Nil, nil)
	if !ok {
		t.Fatal("expected a neighbour")
	}
	if n.E != 3 {
		t.Errorf("Nearest = %d, want 3", n.E)
	}
}

func TestNearestHonoursFilter(t *testing.T) {
	g := NewSpatialGrid(800, 480, 40)
	g.Insert(1, 101, 100)
	g.Insert(2, 110, 100)

	n, ok := g.Nearest(100, 100, 50, ecs.Nil, func(e ecs.Entity) bool { return e != 1 })
	if !ok || n.E != 2 {
		t.Errorf("Nearest = %+v, %v; want entity 2", n, ok)
	}

	if _, ok := g.Nearest(100, 100, 5, ecs.Nil, func(e ecs.Entity) bool { return e != 1 }); ok {
		t.Error("expected no neighbour within 5")
	}
}
