package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window opened by Run.
type Options struct {
	Title     string
	Width     int32
	Height    int32
	TargetFPS int32
}

// Run opens the window and drives the main loop. Each frame it calls update with the
// frame time in seconds, then clears the screen and calls draw.
// ESC does not quit (the console uses the keyboard); close via the window button.
func Run(opts Options, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(opts.TargetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
