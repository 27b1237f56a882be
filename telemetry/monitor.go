package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/biome/world"
)

// MonitorOptions configures a Monitor.
type MonitorOptions struct {
	WindowSec float64           // simulated seconds per window
	DT        float64           // seconds per tick
	Output    *OutputManager    // nil disables CSV output
	Logger    *slog.Logger      // nil uses slog.Default()
	LogStats  bool              // log every window and bookmark
	OnWindow  func(WindowStats) // optional callback per flushed window
}

// Monitor ties the collectors to a running world: it is installed as the
// world's recorder and phase timer, and flushes a window whenever one is due.
type Monitor struct {
	Collector *Collector
	Perf      *PerfCollector

	bookmarks *BookmarkDetector
	output    *OutputManager
	logger    *slog.Logger
	logStats  bool
	onWindow  func(WindowStats)
	last      WindowStats
	windows   int
}

// NewMonitor creates a monitor with empty windows.
func NewMonitor(opts MonitorOptions) *Monitor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := NewCollector(opts.WindowSec, opts.DT)
	return &Monitor{
		Collector: c,
		Perf:      NewPerfCollector(int(min(c.WindowDurationTicks(), 600))),
		bookmarks: NewBookmarkDetector(10),
		output:    opts.Output,
		logger:    logger,
		logStats:  opts.LogStats,
		onWindow:  opts.OnWindow,
	}
}

// WorldOptions returns opts with the monitor installed as recorder and timer.
func (m *Monitor) WorldOptions(opts world.Options) world.Options {
	opts.Recorder = m.Collector
	opts.Timer = m.Perf
	return opts
}

// AfterStep flushes the current window if it is due. It returns the flushed
// stats and true when a window closed.
func (m *Monitor) AfterStep(w *world.World) (WindowStats, bool) {
	tick := w.Tick()
	if !m.Collector.ShouldFlush(tick) {
		return WindowStats{}, false
	}

	stats := m.Collector.Flush(tick, SampleSnapshot(w.Snapshot()))
	perfStats := m.Perf.Stats()
	m.last = stats
	m.windows++

	if m.onWindow != nil {
		m.onWindow(stats)
	}

	if m.logStats {
		stats.LogStats(m.logger)
		perfStats.LogStats(m.logger)
	}

	if err := m.output.WriteTelemetry(stats); err != nil {
		m.logger.Error("failed to write telemetry", "error", err)
	}
	if err := m.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		m.logger.Error("failed to write perf", "error", err)
	}

	for _, bm := range m.bookmarks.Check(stats) {
		if m.logStats {
			bm.LogBookmark(m.logger)
		}
		if err := m.output.WriteBookmark(bm); err != nil {
			m.logger.Error("failed to write bookmark", "error", err)
		}
	}

	return stats, true
}

// Last returns the most recently flushed window and whether one exists.
func (m *Monitor) Last() (WindowStats, bool) {
	return m.last, m.windows > 0
}

// Close closes the output files.
func (m *Monitor) Close() error {
	return m.output.Close()
}
