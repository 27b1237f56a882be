// Package camera provides a 2D camera for viewport control over the toroidal
// arena, and the pointer translation between screen and world coordinates.
package camera

import (
	"math"

	"github.com/pthm-cable/biome/systems"
)

// Point is a screen-space position.
type Point struct {
	X, Y float64
}

// Camera controls the viewport into the simulation world.
// Supports pan and zoom with toroidal world wrapping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions and top-left screen offset
	ViewportW, ViewportH float64
	OffsetX, OffsetY     float64

	// World dimensions (for toroidal wrapping)
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world. The starting zoom is 1:1 unless
// the viewport is larger than the world, in which case it starts at the
// smallest zoom that leaves no dead space.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   4.0,
	}
	c.MinZoom = minZoomFor(viewportW, viewportH, worldW, worldH)
	c.Zoom = math.Max(1.0, c.MinZoom)
	return c
}

// minZoomFor is the zoom at which the visible area exactly covers the world
// in its limiting dimension: viewport/Z <= world on both axes.
func minZoomFor(viewportW, viewportH, worldW, worldH float64) float64 {
	return math.Max(viewportW/worldW, viewportH/worldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
// For toroidal worlds, this finds the shortest path to the viewport.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)
	sx = c.OffsetX + c.ViewportW/2 + dx*c.Zoom
	sy = c.OffsetY + c.ViewportH/2 + dy*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates, wrapped
// into the arena.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	dx := (sx - c.OffsetX - c.ViewportW/2) / c.Zoom
	dy := (sy - c.OffsetY - c.ViewportH/2) / c.Zoom

	wx = systems.Wrap(c.X+dx, c.WorldW)
	wy = systems.Wrap(c.Y+dy, c.WorldH)
	return wx, wy
}

// Contains reports whether a screen point lies inside the viewport.
func (c *Camera) Contains(sx, sy float64) bool {
	return sx >= c.OffsetX && sx < c.OffsetX+c.ViewportW &&
		sy >= c.OffsetY && sy < c.OffsetY+c.ViewportH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)

	// Half-extents of the visible area in world coords, plus margin for radius
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius

	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// GhostPositions returns additional screen positions for entities near world edges.
// These "ghost" copies ensure entities appear on both sides during wrapping.
// Returns up to 3 additional positions (plus the primary position makes 4 max for corners).
func (c *Camera) GhostPositions(wx, wy, radius float64) []Point {
	var ghosts []Point

	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	cx := c.OffsetX + c.ViewportW/2
	cy := c.OffsetY + c.ViewportH/2

	dx, dy := systems.ToroidalDelta(c.X, c.Y, wx, wy, c.WorldW, c.WorldH)

	needsHorizontalGhost := false
	var hGhostX float64
	if dx > halfW-radius && dx < halfW+radius {
		// Near right edge of view - ghost on left
		needsHorizontalGhost = true
		hGhostX = cx + (dx-c.WorldW)*c.Zoom
	} else if dx < -halfW+radius && dx > -halfW-radius {
		// Near left edge of view - ghost on right
		needsHorizontalGhost = true
		hGhostX = cx + (dx+c.WorldW)*c.Zoom
	}

	needsVerticalGhost := false
	var vGhostY float64
	if dy > halfH-radius && dy < halfH+radius {
		needsVerticalGhost = true
		vGhostY = cy + (dy-c.WorldH)*c.Zoom
	} else if dy < -halfH+radius && dy > -halfH-radius {
		needsVerticalGhost = true
		vGhostY = cy + (dy+c.WorldH)*c.Zoom
	}

	sx := cx + dx*c.Zoom
	sy := cy + dy*c.Zoom

	if needsHorizontalGhost {
		ghosts = append(ghosts, Point{hGhostX, sy})
	}
	if needsVerticalGhost {
		ghosts = append(ghosts, Point{sx, vGhostY})
	}
	if needsHorizontalGhost && needsVerticalGhost {
		ghosts = append(ghosts, Point{hGhostX, vGhostY})
	}

	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = minZoomFor(viewportW, viewportH, c.WorldW, c.WorldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
// Automatically wraps around world boundaries.
func (c *Camera) Pan(dx, dy float64) {
	c.X = systems.Wrap(c.X+dx/c.Zoom, c.WorldW)
	c.Y = systems.Wrap(c.Y+dy/c.Zoom, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Min(math.Max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = math.Max(1.0, c.MinZoom)
}
