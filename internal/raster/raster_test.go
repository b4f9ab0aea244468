package raster

import (
	"bytes"
	"image/gif"
	"image/png"
	"testing"

	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/surface"
)

func TestClearFillsBackground(t *testing.T) {
	s := New(10, 8, surface.Background)
	if w, h := s.Size(); w != 10 || h != 8 {
		t.Fatalf("size = %dx%d", w, h)
	}
	c := s.Image().RGBAAt(5, 5)
	if c.R != 0x0a || c.G != 0x0a || c.B != 0x0a || c.A != 0xff {
		t.Errorf("unexpected background %v", c)
	}
}

func TestFillCircle(t *testing.T) {
	s := New(40, 40, surface.Background)
	s.FillCircle(20, 20, 5, surface.Accent)

	if c := s.Image().RGBAAt(20, 20); c.G != 0xff || c.B != 0x9d {
		t.Errorf("centre not filled: %v", c)
	}
	if c := s.Image().RGBAAt(2, 2); c.G != 0x0a {
		t.Errorf("corner should stay background: %v", c)
	}
}

func TestStrokeLineBlendsAlpha(t *testing.T) {
	s := New(40, 40, surface.Color{})
	s.StrokeLine(0, 20.5, 40, 20.5, surface.Stroke{Color: surface.Accent, Alpha: 0.5, Width: 1})

	c := s.Image().RGBAAt(10, 20)
	if c.G < 0x70 || c.G > 0x90 {
		t.Errorf("expected roughly half-strength green, got %v", c)
	}
	if o := s.Image().RGBAAt(10, 5); o.G != 0 {
		t.Errorf("pixel off the line touched: %v", o)
	}

	s.Clear()
	s.StrokeLine(5, 5, 5, 5, surface.Stroke{Color: surface.Accent, Alpha: 1, Width: 1})
	s.StrokeLine(0, 0, 40, 40, surface.Stroke{Color: surface.Accent, Alpha: 0, Width: 1})
	if c := s.Image().RGBAAt(5, 5); c.G != 0 {
		t.Errorf("degenerate strokes should draw nothing, got %v", c)
	}
}

func TestResizeToZero(t *testing.T) {
	s := New(10, 10, surface.Background)
	s.Resize(0, 0)
	s.FillCircle(1, 1, 1, surface.Accent)
	s.StrokeLine(0, 0, 1, 1, surface.Stroke{Color: surface.Accent, Alpha: 1, Width: 1})
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestPaletteEnds(t *testing.T) {
	p := Palette(surface.Background, surface.Accent)
	if len(p) != 256 {
		t.Fatalf("palette has %d colors", len(p))
	}
	r, g, b, _ := p[255].RGBA()
	if r>>8 != 0x00 || g>>8 != 0xff || b>>8 != 0x9d {
		t.Errorf("last entry should be the accent, got %02x%02x%02x", r>>8, g>>8, b>>8)
	}
}

func TestRecorderWritesGIF(t *testing.T) {
	s := New(32, 24, surface.Background)
	rec := NewRecorder(s, Palette(surface.Background, surface.Accent), 2, 60)

	for i := 1; i <= 5; i++ {
		s.Clear()
		s.FillCircle(float64(i*4), 12, 3, surface.Accent)
		rec.OnFrame(loop.FrameStats{Frame: i})
	}
	if rec.Frames() != 3 {
		t.Fatalf("expected frames 1, 3, 5 captured, got %d", rec.Frames())
	}

	var buf bytes.Buffer
	if err := rec.WriteGIF(&buf); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 || g.Delay[0] != 3 {
		t.Errorf("unexpected animation: %d frames, delay %d", len(g.Image), g.Delay[0])
	}
}

func TestRecorderEmpty(t *testing.T) {
	rec := NewRecorder(New(4, 4, surface.Background), Palette(surface.Background, surface.Accent), 1, 0)
	if err := rec.WriteGIF(&bytes.Buffer{}); err != ErrNoFrames {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	s := New(16, 16, surface.Background)
	s.FillCircle(8, 8, 3, surface.Accent)

	var buf bytes.Buffer
	if err := WritePNG(&buf, s); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("decoded width %d", img.Bounds().Dx())
	}
}
