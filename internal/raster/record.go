package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/surface"
)

var ErrNoFrames = errors.New("no frames captured")

// Palette ramps from bg to accent in 256 steps; every pixel the renderer
// produces is a blend of the two.
func Palette(bg, accent surface.Color) color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		t := float64(i) / 255
		p[i] = color.RGBA{
			R: lerp(bg.R, accent.R, t),
			G: lerp(bg.G, accent.G, t),
			B: lerp(bg.B, accent.B, t),
			A: 0xff,
		}
	}
	return p
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Recorder captures every Nth frame of a raster surface as a GIF frame. It
// is a loop.Observer.
type Recorder struct {
	src     *Surface
	palette color.Palette
	every   int
	delay   int
	frames  []*image.Paletted
}

// NewRecorder captures one frame in every `every` and plays them back at fps.
func NewRecorder(src *Surface, p color.Palette, every, fps int) *Recorder {
	if every < 1 {
		every = 1
	}
	delay := 2
	if fps > 0 {
		delay = max(2, 100*every/fps)
	}
	return &Recorder{src: src, palette: p, every: every, delay: delay}
}

func (r *Recorder) OnFrame(s loop.FrameStats) {
	if (s.Frame-1)%r.every != 0 {
		return
	}
	r.Capture()
}

func (r *Recorder) Capture() {
	img := r.src.Image()
	pal := image.NewPaletted(img.Bounds(), r.palette)
	draw.Draw(pal, pal.Bounds(), img, img.Bounds().Min, draw.Src)
	r.frames = append(r.frames, pal)
}

func (r *Recorder) Frames() int { return len(r.frames) }

func (r *Recorder) WriteGIF(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// WritePNG encodes the surface's current contents.
func WritePNG(w io.Writer, s *Surface) error {
	return png.Encode(w, s.Image())
}
