// Plant patch preview tool - interactive visualization of initial plant
// placement with sliders.
//
// Usage: go run ./cmd/patchpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/config"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	previewW     = 640
	panelWidth   = windowWidth - previewW - 30
	statsCells   = 8
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	params := DefaultParams(base)
	initial := params

	rl.InitWindow(windowWidth, windowHeight, "Plant Patch Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	previewH := float32(previewW) * float32(base.World.Height/base.World.Width)
	plants := params.Plants(base, logger)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			plants = params.Plants(base, logger)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawRectangle(10, 10, previewW, int32(previewH), rl.Color{R: 20, G: 28, B: 24, A: 255})
		sx := float32(previewW) / float32(base.World.Width)
		sy := previewH / float32(base.World.Height)
		for _, p := range plants {
			rl.DrawCircleV(rl.Vector2{X: 10 + float32(p.X)*sx, Y: 10 + float32(p.Y)*sy}, 3, rl.ColorFromHSV(110, 0.6, 0.4+0.5*float32(p.Amount)))
		}
		rl.DrawRectangleLines(10, 10, previewW, int32(previewH), rl.DarkGray)

		// Draw stats
		stats := Clustering(plants, base.World.Width, base.World.Height, statsCells)
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Plants: %d  Mean/cell: %.2f  CV: %.2f  Empty cells: %d/%d",
			len(plants), stats.Mean, stats.CV, stats.Empty, statsCells*statsCells), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %s", params.Seed()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Plant Patch Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Patchiness slider
		rl.DrawText("Patchiness (0 = uniform)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPatchiness := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1",
			float32(params.Patchiness), 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Patchiness), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newPatchiness) != params.Patchiness {
			params.Patchiness = float64(newPatchiness)
			needsRegen = true
		}
		panelY += 35

		// Patch scale slider
		rl.DrawText("Patch scale (noise frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.05",
			float32(params.PatchScale), 0.001, 0.05,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.PatchScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newScale) != params.PatchScale {
			params.PatchScale = float64(newScale)
			needsRegen = true
		}
		panelY += 35

		// Plant count slider
		rl.DrawText("Plants", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"10", "400",
			float32(params.Count), 10, 400,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 40

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Seed") {
			params.SeedIndex++
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = initial
			needsRegen = true
		}
		panelY += 45

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range params.YAMLLines() {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.YAML())
		}

		rl.EndDrawing()
	}
}
