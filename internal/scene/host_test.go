package scene

import (
	"strings"
	"testing"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/surface"
)

func TestHostFrames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Particles = 30
	cfg.Seed = 4
	cl := surface.NewCommandList()

	hs, err := NewHost(cfg, cl, 640, 480)
	if err != nil {
		t.Fatal(err)
	}

	hs.Frame()
	hs.Frame()
	if hs.Scene().Loop.Frame() != 2 {
		t.Fatalf("expected 2 frames, got %d", hs.Scene().Loop.Frame())
	}

	hs.TogglePause()
	before := hs.Scene().Field.Particles()[0].Pos
	hs.Frame()
	if hs.Scene().Loop.Frame() != 2 {
		t.Error("paused host should not advance")
	}
	if hs.Scene().Field.Particles()[0].Pos != before {
		t.Error("repaint moved a particle")
	}
	if len(cl.Circles) != 30 {
		t.Errorf("paused frame should still repaint, got %d circles", len(cl.Circles))
	}
	if !strings.Contains(hs.Status(60), "PAUSED") {
		t.Error("status should report pause")
	}
}

func TestHostResizeAndRespawn(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Particles = 10
	cl := surface.NewCommandList()

	hs, err := NewHost(cfg, cl, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	first := hs.Scene()

	hs.Resize(640, 480)
	if first.Manager.Resizes() != 1 {
		t.Errorf("same size should not resize again, got %d", first.Manager.Resizes())
	}
	hs.Resize(320, 200)
	if w, h := cl.Size(); w != 320 || h != 200 {
		t.Errorf("surface is %dx%d", w, h)
	}

	hs.MovePointer(5, 6)
	if p := first.Tracker.Position(); p.X != 5 || p.Y != 6 {
		t.Errorf("pointer at %+v", p)
	}

	if err := hs.Respawn(320, 200); err != nil {
		t.Fatal(err)
	}
	if first.Loop.Running() {
		t.Error("old loop should stop on respawn")
	}
	hs.Frame()
	if hs.Scene().Loop.Frame() != 1 {
		t.Errorf("new scene should run from frame 1, got %d", hs.Scene().Loop.Frame())
	}

	hs.Close()
	if hs.Scene().Loop.Running() {
		t.Error("Close should stop the loop")
	}
}
