package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/world"
)

func TestMonitor_FlushesEveryWindow(t *testing.T) {
	var windows []WindowStats
	m := NewMonitor(MonitorOptions{
		WindowSec: 0.6, // 10 ticks
		DT:        0.06,
		OnWindow:  func(s WindowStats) { windows = append(windows, s) },
	})
	w := world.NewWithOptions(rng.New("monitor"), m.WorldOptions(world.Options{}))

	for i := 0; i < 35; i++ {
		w.Step(0.06)
		m.AfterStep(w)
	}

	if len(windows) != 3 {
		t.Fatalf("flushed %d windows, want 3", len(windows))
	}
	for i, s := range windows {
		want := int64((i + 1) * 10)
		if s.WindowEndTick != want {
			t.Errorf("window %d ends at %d, want %d", i, s.WindowEndTick, want)
		}
	}
	last, ok := m.Last()
	if !ok || last.WindowEndTick != 30 {
		t.Errorf("Last() = %d, %v; want 30, true", last.WindowEndTick, ok)
	}
	if got := len(m.Perf.Stats().PhaseAvg); got == 0 {
		t.Error("perf collector saw no phases")
	}
}

func TestMonitor_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	out, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	m := NewMonitor(MonitorOptions{WindowSec: 0.3, DT: 0.06, Output: out})
	w := world.NewWithOptions(rng.New("csv"), m.WorldOptions(world.Options{}))

	for i := 0; i < 20; i++ {
		w.Step(0.06)
		m.AfterStep(w)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Errorf("got %d lines, want header + 4 windows", len(lines))
	}
}
