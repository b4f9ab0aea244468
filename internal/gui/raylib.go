//go:build !ebiten

package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/scene"
	"github.com/san-kum/particlenet/internal/surface"
)

var (
	colBg   = toRL(surface.Background, 1)
	colText = rl.NewColor(140, 140, 140, 255)
)

func toRL(c surface.Color, alpha float64) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(alpha*255))
}

// Surface draws straight to the raylib framebuffer. Calls are only valid
// between BeginDrawing and EndDrawing.
type Surface struct {
	w, h int
}

func (s *Surface) Clear() { rl.ClearBackground(colBg) }

func (s *Surface) FillCircle(x, y, r float64, c surface.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toRL(c, 1))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st surface.Stroke) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		float32(st.Width), toRL(st.Color, st.Alpha))
}

func (s *Surface) Size() (int, int) { return s.w, s.h }
func (s *Surface) Resize(w, h int)  { s.w, s.h = w, h }

// Run opens a resizable window and blocks until it is closed.
func Run(cfg *config.Config) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "particlenet")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	hs, err := scene.NewHost(cfg, &Surface{}, rl.GetScreenWidth(), rl.GetScreenHeight())
	if err != nil {
		return err
	}
	defer hs.Close()

	showHUD := true
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			hs.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		m := rl.GetMousePosition()
		hs.MovePointer(float64(m.X), float64(m.Y))

		switch {
		case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
			return nil
		case rl.IsKeyPressed(rl.KeySpace):
			hs.TogglePause()
		case rl.IsKeyPressed(rl.KeyR):
			if err := hs.Respawn(rl.GetScreenWidth(), rl.GetScreenHeight()); err != nil {
				return err
			}
		case rl.IsKeyPressed(rl.KeyH):
			showHUD = !showHUD
		}

		rl.BeginDrawing()
		hs.Frame()
		if showHUD {
			rl.DrawText(hs.Status(int(rl.GetFPS())), 16, 16, 14, colText)
		}
		rl.EndDrawing()
	}
	return nil
}
