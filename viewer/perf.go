package viewer

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
)

// perfRow is one line of the system performance overlay.
type perfRow struct {
	name string
	avg  time.Duration
	pct  float64
}

// perfRows lists every pipeline system in step order with its average
// duration and share of the tick, named through the registry.
func perfRows(stats telemetry.PerfStats, reg *systems.SystemRegistry) []perfRow {
	rows := make([]perfRow, 0, len(reg.IDs()))
	for _, id := range reg.IDs() {
		rows = append(rows, perfRow{
			name: reg.GetName(id),
			avg:  stats.PhaseAvg[id],
			pct:  stats.PhasePct[id],
		})
	}
	return rows
}

// perfColor highlights the expensive systems.
func perfColor(pct float64) rl.Color {
	switch {
	case pct > 40:
		return rl.Red
	case pct > 20:
		return rl.Orange
	default:
		return rl.LightGray
	}
}

// drawPerf renders the system performance overlay in the bottom-right
// corner of the viewport.
func (v *Viewer) drawPerf() {
	if v.perf == nil {
		return
	}
	stats := v.perf.Stats()
	rows := perfRows(stats, v.registry)

	const width, lineH = 250, 14
	height := int32(40 + lineH*len(rows))
	x := int32(v.layout.ScreenW) - width - 10
	y := int32(v.layout.ScreenH) - height - 10

	rl.DrawRectangle(x-6, y-6, width+12, height+12, rl.Fade(rl.Black, 0.6))
	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Tick: %s | %.0f ticks/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16

	for _, r := range rows {
		rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", r.name, r.avg.Round(time.Microsecond), r.pct), x, y, 12, perfColor(r.pct))
		y += lineH
	}
}
