package termview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/world"
)

// Cell is one character of the rasterized map.
type Cell struct {
	Rune  rune
	Style tcell.Style
	layer int
}

// Draw layers; a higher layer wins a shared cell.
const (
	layerEmpty = iota
	layerField
	layerPlant
	layerPod
	layerAgent
	layerPredator
	layerApex
)

var (
	styleField    = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	styleRepel    = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	stylePlant    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlantLow = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	stylePod      = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleAgent    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePredator = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleApex     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
)

// cellFor maps an entity to its character. ok is false for entities that
// are not drawn.
func cellFor(e world.EntityState) (Cell, bool) {
	switch {
	case e.Apex != nil:
		return Cell{Rune: 'X', Style: styleApex, layer: layerApex}, true
	case e.Predator != nil:
		return Cell{Rune: 'P', Style: stylePredator, layer: layerPredator}, true
	case e.Agent != nil:
		return Cell{Rune: 'a', Style: styleAgent, layer: layerAgent}, true
	case e.Resource != nil && e.Resource.Kind == components.KindPod:
		return Cell{Rune: 'o', Style: stylePod, layer: layerPod}, true
	case e.Resource != nil:
		if e.Resource.Amount < 0.3 {
			return Cell{Rune: '.', Style: stylePlantLow, layer: layerPlant}, true
		}
		return Cell{Rune: '"', Style: stylePlant, layer: layerPlant}, true
	case e.ForceField != nil:
		if e.ForceField.Strength < 0 {
			return Cell{Rune: '-', Style: styleRepel, layer: layerField}, true
		}
		return Cell{Rune: '+', Style: styleField, layer: layerField}, true
	}
	return Cell{}, false
}

// Rasterize scales the toroidal world onto a cols×rows character grid. Each
// cell shows the highest-layer entity inside it; empty cells have Rune 0.
func Rasterize(snap world.Snapshot, cols, rows int) [][]Cell {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
	}
	if cols <= 0 || rows <= 0 || snap.Width <= 0 || snap.Height <= 0 {
		return grid
	}

	cellW := snap.Width / float64(cols)
	cellH := snap.Height / float64(rows)
	for _, e := range snap.Entities {
		if e.Position == nil {
			continue
		}
		c, ok := cellFor(e)
		if !ok {
			continue
		}
		col := min(cols-1, max(0, int(e.Position.X/cellW)))
		row := min(rows-1, max(0, int(e.Position.Y/cellH)))
		if c.layer > grid[row][col].layer {
			grid[row][col] = c
		}
	}
	return grid
}
