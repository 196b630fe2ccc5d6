package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	windowWidth  = 1600
	windowHeight = 900
	windowTitle  = "Level Editor"
)

// Run starts the window and main loop. Each frame it calls update (input,
// sessions), then clears the screen and calls draw (viewport, overlays).
// Window is resizable and windowed. ESC toggles the console; close via window button.
func Run(update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, windowTitle)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle the console, not to quit
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(28, 30, 34, 255))
		draw()
		rl.EndDrawing()
	}
}
