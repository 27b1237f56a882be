package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/camera"
	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/world"
)

// Base on-screen radii in world units.
const (
	agentRadius    = 4
	predatorRadius = 6
	apexRadius     = 8
	plantMinRadius = 2
	plantMaxRadius = 6
	plantHue       = 110
	podHue         = 45
)

// glyph is one entity reduced to what the renderer draws.
type glyph struct {
	id      ecs.Entity
	x, y    float64
	radius  float64
	hue     float64
	sat     float64
	bright  float64
	field   bool // force field ring
	attract bool
}

// glyphFor maps an entity to its drawing. ok is false for entities without
// a position.
func glyphFor(e world.EntityState, maxAgent, maxPred, maxApex float64) (glyph, bool) {
	if e.Position == nil {
		return glyph{}, false
	}
	g := glyph{id: e.ID, x: e.Position.X, y: e.Position.Y, sat: 0.75}

	switch {
	case e.Agent != nil:
		g.radius = agentRadius
		g.hue = e.Agent.ColorHue
		g.bright = 0.45 + 0.55*barRatio(e.Agent.Energy, maxAgent)
	case e.Predator != nil:
		g.radius = predatorRadius
		g.hue = e.Predator.ColorHue
		g.bright = 0.45 + 0.55*barRatio(e.Predator.Energy, maxPred)
		if e.Predator.Resting() {
			g.sat = 0.35
		}
	case e.Apex != nil:
		g.radius = apexRadius
		g.hue = e.Apex.ColorHue
		g.bright = 0.45 + 0.55*barRatio(e.Apex.Energy, maxApex)
		if e.Apex.Resting() {
			g.sat = 0.35
		}
	case e.Resource != nil:
		amount := barRatio(e.Resource.Amount, 1)
		g.radius = plantMinRadius + (plantMaxRadius-plantMinRadius)*amount
		g.hue = plantHue
		if e.Resource.Kind == components.KindPod {
			g.hue = podHue
		}
		g.sat = 0.6
		g.bright = 0.3 + 0.5*amount
	case e.ForceField != nil:
		g.field = true
		g.radius = e.ForceField.Radius
		g.attract = e.ForceField.Strength >= 0
	default:
		return glyph{}, false
	}
	return g, true
}

// drawWorld renders a snapshot through the camera.
func (v *Viewer) drawWorld(snap world.Snapshot) {
	vp := v.layout.Viewport()
	rl.BeginScissorMode(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	defer rl.EndScissorMode()

	rl.DrawRectangleRec(vp, v.theme.Background)

	maxAgent := v.cfg.Agent.MaxEnergy
	maxPred := v.cfg.Predator.MaxEnergy
	maxApex := v.cfg.Apex.MaxEnergy

	// Fields first so organisms draw on top
	for _, e := range snap.Entities {
		if g, ok := glyphFor(e, maxAgent, maxPred, maxApex); ok && g.field {
			v.drawGlyph(g)
		}
	}
	for _, e := range snap.Entities {
		if g, ok := glyphFor(e, maxAgent, maxPred, maxApex); ok && !g.field {
			v.drawGlyph(g)
		}
	}

	if sel, ok := v.ins.Selected(); ok {
		if e, found := findEntity(snap, sel); found && e.Position != nil {
			sx, sy := v.cam.WorldToScreen(e.Position.X, e.Position.Y)
			rl.DrawCircleLines(int32(sx), int32(sy), float32(12*v.cam.Zoom), v.theme.Selection)
		}
	}
}

// drawGlyph draws g and its ghosts across the wrap seams.
func (v *Viewer) drawGlyph(g glyph) {
	if !v.cam.IsVisible(g.x, g.y, g.radius) {
		return
	}
	sx, sy := v.cam.WorldToScreen(g.x, g.y)
	points := append([]camera.Point{{X: sx, Y: sy}}, v.cam.GhostPositions(g.x, g.y, g.radius)...)
	r := float32(g.radius * v.cam.Zoom)

	for _, p := range points {
		center := rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
		if g.field {
			col := v.theme.Repel
			if g.attract {
				col = v.theme.Attract
			}
			rl.DrawCircleV(center, r, rl.Fade(col, 0.08))
			rl.DrawCircleLines(int32(p.X), int32(p.Y), r, rl.Fade(col, 0.5))
			continue
		}
		rl.DrawCircleV(center, r, rl.ColorFromHSV(float32(g.hue), float32(g.sat), float32(g.bright)))
	}
}

// findEntity returns the snapshot entry for id.
func findEntity(snap world.Snapshot, id ecs.Entity) (world.EntityState, bool) {
	for _, e := range snap.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return world.EntityState{}, false
}
