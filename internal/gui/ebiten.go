//go:build ebiten

package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/scene"
	"github.com/san-kum/particlenet/internal/surface"
)

var colText = color.NRGBA{R: 140, G: 140, B: 140, A: 255}

func toNRGBA(c surface.Color, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}

// Surface draws onto the screen image handed to Game.Draw.
type Surface struct {
	dst  *ebiten.Image
	w, h int
}

func (s *Surface) Clear() {
	if s.dst != nil {
		s.dst.Fill(toNRGBA(surface.Background, 1))
	}
}

func (s *Surface) FillCircle(x, y, r float64, c surface.Color) {
	if s.dst != nil {
		vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), toNRGBA(c, 1), true)
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st surface.Stroke) {
	if s.dst != nil {
		vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1),
			float32(st.Width), toNRGBA(st.Color, st.Alpha), true)
	}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }
func (s *Surface) Resize(w, h int)  { s.w, s.h = w, h }

type game struct {
	host    *scene.Host
	surface *Surface
	showHUD bool
	w, h    int
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	g.host.MovePointer(float64(x), float64(y))

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.host.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return g.host.Respawn(g.w, g.h)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.host.Frame()
	if g.showHUD {
		text.Draw(screen, g.host.Status(int(ebiten.ActualFPS())), basicfont.Face7x13, 16, 24, colText)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.host.Resize(g.w, g.h)
	}
	return g.w, g.h
}

// Run opens a resizable window and blocks until it is closed.
func Run(cfg *config.Config) error {
	s := &Surface{}
	hs, err := scene.NewHost(cfg, s, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer hs.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("particlenet")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	g := &game{host: hs, surface: s, showHUD: true, w: cfg.Width, h: cfg.Height}
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
