// Package termview is a terminal driver: it steps a world on a wall-clock
// ticker and draws it as a character grid with a status line.
package termview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/world"
)

// hudRows is the number of status lines below the map.
const hudRows = 2

// Options configures the terminal driver.
type Options struct {
	Config    *config.Config // nil uses config.Default()
	Logger    *slog.Logger   // nil uses slog.Default()
	AfterStep func()         // called after every simulation step
	MaxTicks  int64          // stop at this tick (0 = never)
	Paused    bool           // start paused
	FrameRate int            // redraws per second (0 = 20)
}

// View holds the terminal driver state.
type View struct {
	screen    tcell.Screen
	sim       world.Sim
	cfg       *config.Config
	logger    *slog.Logger
	afterStep func()
	stepper   *world.FixedStepper

	paused   bool
	stepOnce bool
	quit     bool
}

// New creates a view drawing sim onto screen. screen must already be
// initialised.
func New(screen tcell.Screen, sim world.Sim, opts Options) *View {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &View{
		screen:    screen,
		sim:       sim,
		cfg:       cfg,
		logger:    logger,
		afterStep: opts.AfterStep,
		stepper:   world.NewFixedStepper(cfg.Physics.DT, cfg.Physics.MaxStepsPerFrame),
		paused:    opts.Paused,
	}
}

// Run drives sim on screen until the user quits, ctx is cancelled or
// MaxTicks is reached. The caller owns the screen and finalises it.
func Run(ctx context.Context, screen tcell.Screen, sim world.Sim, opts Options) error {
	v := New(screen, sim, opts)

	fps := opts.FrameRate
	if fps <= 0 {
		fps = 20
	}
	frame := time.Second / time.Duration(fps)

	// Async input reader
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	v.logger.Info("termview_started", "frame_rate", fps)
	last := time.Now()
	v.Draw()
	for !v.quit {
		select {
		case <-ctx.Done():
			v.quit = true
		case ev, ok := <-events:
			if !ok {
				v.quit = true
				break
			}
			v.HandleEvent(ev)
		case now := <-ticker.C:
			v.Advance(now.Sub(last).Seconds())
			last = now
			v.Draw()
		}
		if opts.MaxTicks > 0 && sim.Tick() >= opts.MaxTicks {
			v.logger.Info("max ticks reached", "tick", sim.Tick())
			v.quit = true
		}
	}
	v.logger.Info("termview_stopped", "tick", sim.Tick())
	return nil
}

// HandleEvent applies one input event.
func (v *View) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			v.quit = true
			return
		}
		switch ev.Rune() {
		case 'q', 'Q':
			v.quit = true
		case ' ':
			v.paused = !v.paused
			v.stepper.Reset()
		case 'n', 'N':
			if v.paused {
				v.stepOnce = true
			}
		case '+', '=':
			v.sim.SetFertility(v.sim.Globals().Fertility + 0.05)
		case '-', '_':
			v.sim.SetFertility(v.sim.Globals().Fertility - 0.05)
		}
	}
}

// Advance steps the simulation by elapsed wall-clock seconds, or by one
// step when a single step was requested while paused.
func (v *View) Advance(elapsed float64) {
	switch {
	case v.stepOnce:
		v.step(v.cfg.Physics.DT)
		v.stepOnce = false
	case !v.paused:
		v.stepper.Advance(elapsed, v.step)
	}
}

func (v *View) step(dt float64) {
	v.sim.Step(dt)
	if v.afterStep != nil {
		v.afterStep()
	}
}

// Paused reports whether stepping is suspended.
func (v *View) Paused() bool { return v.paused }

// Quit reports whether the user asked to leave.
func (v *View) Quit() bool { return v.quit }

// Draw renders the map and status lines.
func (v *View) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	mapRows := h - hudRows
	if w > 0 && mapRows > 0 {
		grid := Rasterize(v.sim.Snapshot(), w, mapRows)
		for y, row := range grid {
			for x, c := range row {
				if c.Rune != 0 {
					v.putGlyph(x, y, c)
				}
			}
		}
	}
	if h >= hudRows {
		v.drawHUD(w, h-hudRows)
	}
	v.screen.Show()
}

func (v *View) putGlyph(x, y int, c Cell) {
	v.screen.SetContent(x, y, c.Rune, nil, c.Style)
	if runewidth.RuneWidth(c.Rune) == 2 {
		// Fill the second column to avoid rendering artifacts.
		v.screen.SetContent(x+1, y, ' ', nil, c.Style)
	}
}

func (v *View) drawHUD(width, y int) {
	c := v.sim.Counts()
	g := v.sim.Globals()

	status := ""
	if v.paused {
		status = "  [PAUSED]"
	}
	line1 := fmt.Sprintf("tick %d  %s  storm %.2f  fert %.2f  agents %d  pred %d  apex %d  plants %d  pods %d%s",
		v.sim.Tick(), v.sim.Regime(), g.Storminess, g.Fertility,
		c.Agents, c.Predators, c.Apex, c.Plants, c.Pods, status)
	line2 := "space pause  n step  +/- fertility  q quit"

	putText(v.screen, 0, y, width, line1, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	putText(v.screen, 0, y+1, width, line2, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// putText writes s at (x, y), truncated to fit width display columns.
func putText(scr tcell.Screen, x, y, width int, s string, st tcell.Style) {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	for _, r := range s {
		scr.SetContent(x, y, r, nil, st)
		x += max(1, runewidth.RuneWidth(r))
	}
}
