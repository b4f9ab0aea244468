package metrics

import (
	"math"

	"github.com/san-kum/particlenet/internal/loop"
)

// Connections is the mean number of links drawn per frame.
type Connections struct {
	name    string
	sum     float64
	samples int
}

func NewConnections() *Connections {
	return &Connections{name: "connections"}
}

func (c *Connections) Name() string { return c.name }

func (c *Connections) Observe(s loop.FrameStats) {
	c.sum += float64(s.Links)
	c.samples++
}

func (c *Connections) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Connections) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakConnections is the largest link count seen in a single frame.
type PeakConnections struct {
	name string
	peak int
}

func NewPeakConnections() *PeakConnections {
	return &PeakConnections{name: "peak_connections"}
}

func (p *PeakConnections) Name() string { return p.name }

func (p *PeakConnections) Observe(s loop.FrameStats) {
	if s.Links > p.peak {
		p.peak = s.Links
	}
}

func (p *PeakConnections) Value() float64 { return float64(p.peak) }
func (p *PeakConnections) Reset()         { p.peak = 0 }

// Displacement tracks the mean distance of particles from their rest
// positions, averaged over frames.
type Displacement struct {
	name    string
	sum     float64
	max     float64
	samples int
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(s loop.FrameStats) {
	d.sum += s.Displacement
	d.max = math.Max(d.max, s.Displacement)
	d.samples++
}

func (d *Displacement) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

// Max is the worst single-frame mean displacement.
func (d *Displacement) Max() float64 { return d.max }

func (d *Displacement) Reset() {
	d.sum = 0
	d.max = 0
	d.samples = 0
}

// Repelled is the mean number of particles inside the pointer radius.
type Repelled struct {
	name    string
	sum     float64
	samples int
}

func NewRepelled() *Repelled {
	return &Repelled{name: "repelled"}
}

func (r *Repelled) Name() string { return r.name }

func (r *Repelled) Observe(s loop.FrameStats) {
	r.sum += float64(s.Repelled)
	r.samples++
}

func (r *Repelled) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Repelled) Reset() {
	r.sum = 0
	r.samples = 0
}

// FrameTime is the mean frame cost in milliseconds.
type FrameTime struct {
	name    string
	sum     float64
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_time_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(s loop.FrameStats) {
	f.sum += float64(s.Elapsed.Microseconds()) / 1000
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.sum = 0
	f.samples = 0
}
