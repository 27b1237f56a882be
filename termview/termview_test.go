package termview

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/world"
)

func newSimScreen(w, h int) tcell.SimulationScreen {
	ss := tcell.NewSimulationScreen("UTF-8")
	_ = ss.Init()
	ss.SetSize(w, h)
	return ss
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func emptyWorld() *world.World {
	return world.NewWithOptions(rng.New("term"), world.Options{Logger: quietLogger(), Empty: true})
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// rowText reads a screen row back as a string.
func rowText(ss tcell.SimulationScreen, y int) string {
	w, _ := ss.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := ss.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestRasterizeLayers(t *testing.T) {
	at := func(x, y float64) *components.Position { return &components.Position{X: x, Y: y} }
	snap := world.Snapshot{
		Width:  100,
		Height: 50,
		Entities: []world.EntityState{
			{ID: 1, Position: at(5, 5), Resource: &components.Resource{Kind: components.KindPlant, Amount: 1}},
			{ID: 2, Position: at(6, 6), Agent: &components.Agent{}},
			{ID: 3, Position: at(55, 5), Predator: &components.Predator{}},
			{ID: 4, Position: at(56, 6), ForceField: &components.ForceField{Strength: 100}},
			{ID: 5, Position: at(95, 45), Resource: &components.Resource{Kind: components.KindPod}},
			{ID: 6, Position: at(5, 45), ForceField: &components.ForceField{Strength: -100}},
			{ID: 7, Agent: &components.Agent{}}, // no position
		},
	}

	grid := Rasterize(snap, 10, 5)
	if len(grid) != 5 || len(grid[0]) != 10 {
		t.Fatalf("grid = %dx%d, want 10x5", len(grid[0]), len(grid))
	}

	tests := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"agent over plant", 0, 0, 'a'},
		{"predator over field", 5, 0, 'P'},
		{"pod", 9, 4, 'o'},
		{"repel field", 0, 4, '-'},
		{"empty", 3, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid[tt.row][tt.col].Rune; got != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestRasterizeEdges(t *testing.T) {
	snap := world.Snapshot{
		Width:  100,
		Height: 100,
		Entities: []world.EntityState{
			// Right and bottom edges clamp into the last cell
			{ID: 1, Position: &components.Position{X: 100, Y: 100}, Apex: &components.Apex{}},
		},
	}
	grid := Rasterize(snap, 4, 4)
	if got := grid[3][3].Rune; got != 'X' {
		t.Errorf("corner cell = %q, want 'X'", got)
	}

	if got := Rasterize(snap, 0, 0); len(got) != 0 {
		t.Errorf("zero grid has %d rows", len(got))
	}
	if got := Rasterize(world.Snapshot{}, 3, 2); len(got) != 2 || got[0][0].Rune != 0 {
		t.Error("zero-size world should rasterize to an empty grid")
	}
}

func TestCellForLowPlant(t *testing.T) {
	low, _ := cellFor(world.EntityState{Resource: &components.Resource{Amount: 0.1}})
	full, _ := cellFor(world.EntityState{Resource: &components.Resource{Amount: 0.9}})
	if low.Rune == full.Rune {
		t.Errorf("depleted and full plants share rune %q", low.Rune)
	}
}

func TestHandleEventKeys(t *testing.T) {
	w := emptyWorld()
	ss := newSimScreen(40, 12)
	defer ss.Fini()
	v := New(ss, w, Options{Logger: quietLogger()})

	if v.Paused() {
		t.Fatal("view should start running")
	}
	v.HandleEvent(key(' '))
	if !v.Paused() {
		t.Fatal("space should pause")
	}

	// n steps exactly once while paused
	v.HandleEvent(key('n'))
	v.Advance(10)
	v.Advance(10)
	if got := w.Tick(); got != 1 {
		t.Errorf("tick after single step = %d, want 1", got)
	}

	before := w.Globals().Fertility
	v.HandleEvent(key('+'))
	if got := w.Globals().Fertility; math.Abs(got-min(1, before+0.05)) > 1e-9 {
		t.Errorf("fertility after + = %v, want %v", got, min(1, before+0.05))
	}
	v.HandleEvent(key('-'))
	if got := w.Globals().Fertility; math.Abs(got-before) > 1e-9 {
		t.Errorf("fertility after - = %v, want %v", got, before)
	}

	v.HandleEvent(key('q'))
	if !v.Quit() {
		t.Error("q should quit")
	}
}

func TestAdvanceFixedSteps(t *testing.T) {
	w := emptyWorld()
	ss := newSimScreen(40, 12)
	defer ss.Fini()

	steps := 0
	v := New(ss, w, Options{Logger: quietLogger(), AfterStep: func() { steps++ }})
	dt := w.Config().Physics.DT

	v.Advance(dt * 3.5)
	if w.Tick() != 3 || steps != 3 {
		t.Errorf("tick = %d steps = %d, want 3 and 3", w.Tick(), steps)
	}
	v.Advance(dt * 0.75)
	if w.Tick() != 4 {
		t.Errorf("tick = %d after carrying the remainder, want 4", w.Tick())
	}
}

func TestDrawShowsEntitiesAndHUD(t *testing.T) {
	w := emptyWorld()
	w.SpawnApexAt(1, 1)

	ss := newSimScreen(120, 12)
	defer ss.Fini()
	v := New(ss, w, Options{Logger: quietLogger(), Paused: true})
	v.Draw()

	if r, _, _, _ := ss.GetContent(0, 0); r != 'X' {
		t.Errorf("top-left cell = %q, want 'X'", r)
	}
	hud := rowText(ss, 12-hudRows)
	if !strings.HasPrefix(hud, "tick 0  calm") {
		t.Errorf("hud line = %q", hud)
	}
	if !strings.Contains(hud, "apex 1") {
		t.Errorf("hud line missing apex count: %q", hud)
	}
}

func TestPutTextTruncates(t *testing.T) {
	ss := newSimScreen(10, 1)
	defer ss.Fini()

	putText(ss, 0, 0, 10, "abcdefghijklmnop", tcell.StyleDefault)
	got := rowText(ss, 0)
	if !strings.HasPrefix(got, "abcdefghi") {
		t.Errorf("row = %q, want truncated prefix", got)
	}
	if r, _, _, _ := ss.GetContent(9, 0); r != '…' {
		t.Errorf("last column = %q, want ellipsis", r)
	}
}
