// Package viewer is the graphical driver: a raylib window that steps a
// world at a fixed rate, draws it through a wrapping camera and exposes the
// spawn, paint and inspect tools in a raygui side panel.
package viewer

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/camera"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/inspector"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/world"
)

// Options configures the viewer.
type Options struct {
	Config    *config.Config // nil uses config.Default()
	Logger    *slog.Logger   // nil uses slog.Default()
	Title     string
	AfterStep func() // called after every simulation step
	MaxTicks  int64  // close the window at this tick (0 = never)
	Paused    bool   // start paused

	// Perf feeds the system performance overlay (P); nil hides it.
	Perf *telemetry.PerfCollector
}

// Viewer holds the graphical driver state.
type Viewer struct {
	sim       world.Sim
	cfg       *config.Config
	logger    *slog.Logger
	afterStep func()
	maxTicks  int64

	layout  Layout
	theme   Theme
	cam     *camera.Camera
	stepper *world.FixedStepper
	ins     *inspector.Inspector

	perf     *telemetry.PerfCollector
	registry *systems.SystemRegistry

	tool     world.Tool
	paused   bool
	stepOnce bool
	showPerf bool
}

// New creates a viewer for sim. It does not open a window.
func New(sim world.Sim, opts Options) *Viewer {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	layout := NewLayout(cfg.Screen.Width, cfg.Screen.Height)
	vp := layout.Viewport()
	cam := camera.New(float64(vp.Width), float64(vp.Height), sim.Width(), sim.Height())
	cam.OffsetX = float64(vp.X)

	return &Viewer{
		sim:       sim,
		cfg:       cfg,
		logger:    logger,
		afterStep: opts.AfterStep,
		maxTicks:  opts.MaxTicks,
		layout:    layout,
		theme:     DefaultTheme(),
		cam:       cam,
		stepper:   world.NewFixedStepper(cfg.Physics.DT, cfg.Physics.MaxStepsPerFrame),
		ins:       inspector.NewInspector(),
		perf:      opts.Perf,
		registry:  systems.NewSystemRegistry(),
		tool:      world.ToolInspect,
		paused:    opts.Paused,
	}
}

// Run opens a window and drives sim until the window closes, ctx is
// cancelled or MaxTicks is reached.
func Run(ctx context.Context, sim world.Sim, opts Options) error {
	v := New(sim, opts)

	title := opts.Title
	if title == "" {
		title = "biome"
	}
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Screen.TargetFPS))
	// Escape cancels edits instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	v.logger.Info("viewer_started", "width", v.cfg.Screen.Width, "height", v.cfg.Screen.Height)
	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			break
		}
		if v.perf != nil {
			v.perf.RecordFrame()
		}
		v.Update(float64(rl.GetFrameTime()))
		v.Draw()

		if v.maxTicks > 0 && sim.Tick() >= v.maxTicks {
			v.logger.Info("max ticks reached", "tick", sim.Tick())
			break
		}
	}
	v.logger.Info("viewer_stopped", "tick", sim.Tick())
	return nil
}

// Update handles input and advances the simulation by the frame time.
func (v *Viewer) Update(frameTime float64) {
	v.handleResize()
	if _, _, _, editing := v.ins.Editing(); editing {
		v.handleEditInput()
	} else {
		v.handleKeys()
		v.handleCameraInput()
	}
	v.handlePointer()

	switch {
	case v.stepOnce:
		v.step(v.cfg.Physics.DT)
		v.stepOnce = false
	case !v.paused:
		v.stepper.Advance(frameTime, v.step)
	}
}

func (v *Viewer) step(dt float64) {
	v.sim.Step(dt)
	if v.afterStep != nil {
		v.afterStep()
	}
}

// TogglePause flips the paused state; a paused viewer drops frame time.
func (v *Viewer) TogglePause() {
	v.paused = !v.paused
	v.stepper.Reset()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	v.layout = NewLayout(rl.GetScreenWidth(), rl.GetScreenHeight())
	vp := v.layout.Viewport()
	v.cam.Resize(float64(vp.Width), float64(vp.Height))
	v.cam.OffsetX = float64(vp.X)
}

func (v *Viewer) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) && v.paused {
		v.stepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.ins.Deselect()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}

	// 1..8 select tools in toolbar order
	for i, t := range world.Tools() {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			v.tool = t
		}
	}
}

// handleEditInput feeds typed characters to the inspector's edit buffer.
func (v *Viewer) handleEditInput() {
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		v.ins.Type(rune(r))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		v.ins.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		if err := v.ins.Commit(v.sim); err != nil {
			v.logger.Debug("edit rejected", "error", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.ins.CancelEdit()
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / v.cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		if !v.layout.InPanel(mouse.X, mouse.Y) {
			v.cam.ZoomBy(1.0 + float64(wheel)*0.1)
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
}

// handlePointer applies the active tool to clicks in the viewport. Panel
// clicks are handled by the widgets while drawing.
func (v *Viewer) handlePointer() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	sx, sy := float64(mouse.X), float64(mouse.Y)
	if !v.cam.Contains(sx, sy) {
		return
	}
	wx, wy := v.cam.ScreenToWorld(sx, sy)
	v.tool.Apply(v.sim, v.ins, wx, wy)
	if v.tool != world.ToolInspect {
		v.logger.Debug("tool_applied", "tool", v.tool.String(), "x", wx, "y", wy)
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(v.theme.Background)
	v.drawWorld(v.sim.Snapshot())
	v.drawPanel()
	if v.showPerf {
		v.drawPerf()
	}
}
