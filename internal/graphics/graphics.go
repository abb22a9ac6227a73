package graphics

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window configures the raylib window.
type Window struct {
	Width, Height int
	Title         string
	FPS           int
	MSAA          bool
}

// App is driven by Run once per frame.
type App interface {
	// Update handles input before drawing.
	Update(dt time.Duration)
	// Draw renders one frame; it is called between BeginDrawing and EndDrawing.
	Draw(dt time.Duration)
	// Close releases GPU resources while the window still exists.
	Close() error
}

// Run opens the window and drives app until the window is closed or ctx is cancelled. Each
// frame it calls Update, then Draw inside BeginDrawing/EndDrawing. The window is resizable;
// ESC is left to the app.
// Must be called from the main OS thread.
func Run(ctx context.Context, w Window, app App) error {
	flags := uint32(rl.FlagWindowResizable)
	if w.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetWindowMinSize(320, 240)
	if w.FPS > 0 {
		rl.SetTargetFPS(int32(w.FPS))
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		app.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		app.Draw(dt)
		rl.EndDrawing()
	}
	return app.Close()
}
