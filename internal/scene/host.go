package scene

import (
	"fmt"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/surface"
)

// Host keeps one scene for a window whose own frame callback drives the
// animation, such as a raylib or Ebitengine render loop.
type Host struct {
	cfg     *config.Config
	scene   *Scene
	sched   *loop.ManualScheduler
	surface surface.Surface
	paused  bool
}

func NewHost(cfg *config.Config, s surface.Surface, w, h int) (*Host, error) {
	hs := &Host{cfg: cfg, sched: loop.NewManualScheduler(), surface: s}
	if err := hs.Respawn(w, h); err != nil {
		return nil, err
	}
	return hs, nil
}

func (hs *Host) Scene() *Scene { return hs.scene }
func (hs *Host) Paused() bool  { return hs.paused }

func (hs *Host) TogglePause() { hs.paused = !hs.paused }

// Respawn replaces the scene with a fresh one of size w x h.
func (hs *Host) Respawn(w, h int) error {
	sc, err := New(hs.cfg, hs.surface, surface.FixedViewport{W: w, H: h}, hs.sched)
	if err != nil {
		return err
	}
	if hs.scene != nil {
		hs.scene.Loop.Stop()
	}
	hs.scene = sc
	sc.Loop.Start()
	return nil
}

// Frame renders the next frame, or repaints the current one while paused.
// Immediate-mode backends need a full repaint every frame either way.
func (hs *Host) Frame() {
	if !hs.paused && hs.sched.RunPending() > 0 {
		return
	}
	hs.Repaint()
}

// Repaint draws the current state without advancing it.
func (hs *Host) Repaint() {
	s := hs.scene.Manager.Surface()
	s.Clear()
	ps := hs.scene.Field.Particles()
	for i := range ps {
		hs.scene.Field.Draw(&ps[i], s)
	}
	hs.scene.Renderer.Render(ps, s)
}

func (hs *Host) MovePointer(x, y float64) { hs.scene.Tracker.Move(x, y) }

// Resize forwards a window size change, ignoring repeats.
func (hs *Host) Resize(w, h int) {
	if cw, ch := hs.scene.Manager.Size(); cw != w || ch != h {
		hs.scene.Manager.OnResize(w, h)
	}
}

func (hs *Host) Close() { hs.scene.Loop.Stop() }

// Status is a short multi-line HUD text.
func (hs *Host) Status(fps int) string {
	last := hs.scene.Loop.Last()
	status := "RUNNING"
	if hs.paused {
		status = "PAUSED"
	}
	return fmt.Sprintf("particlenet :: %s\n%d particles  %d links  %d repelled  %d FPS",
		status, hs.scene.Field.Len(), last.Links, last.Repelled, fps)
}
