package viewer

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/world"
)

func TestLayoutViewport(t *testing.T) {
	l := NewLayout(1280, 720)
	vp := l.Viewport()

	if vp.X != panelWidth {
		t.Errorf("viewport x = %v, want %v", vp.X, panelWidth)
	}
	if vp.Width != 1280-panelWidth {
		t.Errorf("viewport width = %v, want %v", vp.Width, 1280-panelWidth)
	}
	if vp.Height != 720 {
		t.Errorf("viewport height = %v, want 720", vp.Height)
	}

	// A window narrower than the panel still yields a usable viewport
	narrow := NewLayout(100, 100).Viewport()
	if narrow.Width < 1 {
		t.Errorf("narrow viewport width = %v, want >= 1", narrow.Width)
	}
}

func TestLayoutInPanel(t *testing.T) {
	l := NewLayout(1280, 720)
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 10, 10, true},
		{"panel edge", panelWidth - 1, 300, true},
		{"viewport", panelWidth, 300, false},
		{"below window", 10, 720, false},
		{"negative", -1, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.InPanel(tt.x, tt.y); got != tt.want {
				t.Errorf("InPanel(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestLayoutToolButtons(t *testing.T) {
	l := NewLayout(1280, 720)
	n := len(world.Tools())

	for i := 0; i < n; i++ {
		r := l.ToolButton(i)
		if r.X < 0 || r.X+r.Width > l.PanelW {
			t.Errorf("button %d spans x [%v, %v], outside panel", i, r.X, r.X+r.Width)
		}
		if r.Y+r.Height > l.ToolbarBottom(n) {
			t.Errorf("button %d bottom %v below toolbar bottom %v", i, r.Y+r.Height, l.ToolbarBottom(n))
		}
		for j := 0; j < i; j++ {
			o := l.ToolButton(j)
			overlapX := r.X < o.X+o.Width && o.X < r.X+r.Width
			overlapY := r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
			if overlapX && overlapY {
				t.Errorf("buttons %d and %d overlap", i, j)
			}
		}
	}

	if got, want := l.ToolbarBottom(n), float32(toolbarOffset+4*(buttonHeight+buttonGap)); got != want {
		t.Errorf("ToolbarBottom(%d) = %v, want %v", n, got, want)
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		name       string
		value, max float64
		want       float64
	}{
		{"half", 1, 2, 0.5},
		{"over", 3, 2, 1},
		{"negative", -1, 2, 0},
		{"zero max", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barRatio(tt.value, tt.max); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("barRatio(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestGlyphFor(t *testing.T) {
	pos := &components.Position{X: 10, Y: 20}

	tests := []struct {
		name       string
		state      world.EntityState
		wantOK     bool
		wantField  bool
		wantRadius float64
		wantHue    float64
	}{
		{
			name:   "no position",
			state:  world.EntityState{ID: 1, Agent: &components.Agent{}},
			wantOK: false,
		},
		{
			name:       "agent",
			state:      world.EntityState{ID: 2, Position: pos, Agent: &components.Agent{ColorHue: 200, Energy: 1}},
			wantOK:     true,
			wantRadius: agentRadius,
			wantHue:    200,
		},
		{
			name:       "predator",
			state:      world.EntityState{ID: 3, Position: pos, Predator: &components.Predator{ColorHue: 10, Energy: 2}},
			wantOK:     true,
			wantRadius: predatorRadius,
			wantHue:    10,
		},
		{
			name:       "apex",
			state:      world.EntityState{ID: 4, Position: pos, Apex: &components.Apex{ColorHue: 300}},
			wantOK:     true,
			wantRadius: apexRadius,
			wantHue:    300,
		},
		{
			name:       "full plant",
			state:      world.EntityState{ID: 5, Position: pos, Resource: &components.Resource{Kind: components.KindPlant, Amount: 1}},
			wantOK:     true,
			wantRadius: plantMaxRadius,
			wantHue:    plantHue,
		},
		{
			name:       "empty pod",
			state:      world.EntityState{ID: 6, Position: pos, Resource: &components.Resource{Kind: components.KindPod}},
			wantOK:     true,
			wantRadius: plantMinRadius,
			wantHue:    podHue,
		},
		{
			name:       "force field",
			state:      world.EntityState{ID: 7, Position: pos, ForceField: &components.ForceField{Strength: -50, Radius: 80}},
			wantOK:     true,
			wantField:  true,
			wantRadius: 80,
		},
		{
			name:   "position only",
			state:  world.EntityState{ID: 8, Position: pos},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := glyphFor(tt.state, 2, 3.5, 5)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if g.id != tt.state.ID {
				t.Errorf("id = %d, want %d", g.id, tt.state.ID)
			}
			if g.x != pos.X || g.y != pos.Y {
				t.Errorf("position = (%v, %v), want (%v, %v)", g.x, g.y, pos.X, pos.Y)
			}
			if g.field != tt.wantField {
				t.Errorf("field = %v, want %v", g.field, tt.wantField)
			}
			if math.Abs(g.radius-tt.wantRadius) > 1e-9 {
				t.Errorf("radius = %v, want %v", g.radius, tt.wantRadius)
			}
			if !g.field && math.Abs(g.hue-tt.wantHue) > 1e-9 {
				t.Errorf("hue = %v, want %v", g.hue, tt.wantHue)
			}
		})
	}
}

func TestGlyphForBrightnessTracksEnergy(t *testing.T) {
	pos := &components.Position{}
	starving, _ := glyphFor(world.EntityState{Position: pos, Agent: &components.Agent{Energy: 0.1}}, 2, 3.5, 5)
	fed, _ := glyphFor(world.EntityState{Position: pos, Agent: &components.Agent{Energy: 1.9}}, 2, 3.5, 5)
	if starving.bright >= fed.bright {
		t.Errorf("starving brightness %v should be below fed %v", starving.bright, fed.bright)
	}

	awake, _ := glyphFor(world.EntityState{Position: pos, Predator: &components.Predator{Energy: 1}}, 2, 3.5, 5)
	resting, _ := glyphFor(world.EntityState{Position: pos, Predator: &components.Predator{Energy: 1, Rest: 2}}, 2, 3.5, 5)
	if resting.sat >= awake.sat {
		t.Errorf("resting saturation %v should be below awake %v", resting.sat, awake.sat)
	}
}

func TestFindEntity(t *testing.T) {
	snap := world.Snapshot{Entities: []world.EntityState{{ID: 3}, {ID: 7}}}
	if e, ok := findEntity(snap, 7); !ok || e.ID != 7 {
		t.Errorf("findEntity(7) = %v, %v", e.ID, ok)
	}
	if _, ok := findEntity(snap, 5); ok {
		t.Error("findEntity(5) should not be found")
	}
}

func TestToggleText(t *testing.T) {
	if got := toggleText(true, "Resume", "Pause"); got != "Resume" {
		t.Errorf("toggleText(true) = %q", got)
	}
	if got := toggleText(false, "Resume", "Pause"); got != "Pause" {
		t.Errorf("toggleText(false) = %q", got)
	}
}

func TestPerfRowsFollowPipelineOrder(t *testing.T) {
	reg := systems.NewSystemRegistry()
	stats := telemetry.PerfStats{
		PhaseAvg: map[string]time.Duration{systems.IDSteering: 300 * time.Microsecond},
		PhasePct: map[string]float64{systems.IDSteering: 60},
	}

	rows := perfRows(stats, reg)
	if len(rows) != len(reg.IDs()) {
		t.Fatalf("rows = %d, want %d", len(rows), len(reg.IDs()))
	}
	if rows[0].name != "Steering" || rows[0].pct != 60 || rows[0].avg != 300*time.Microsecond {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[len(rows)-1].name != "Regime" || rows[len(rows)-1].pct != 0 {
		t.Errorf("last row = %+v", rows[len(rows)-1])
	}
	if perfColor(rows[0].pct) != perfColor(50) || perfColor(5) == perfColor(50) {
		t.Error("expensive systems should be highlighted")
	}
}
