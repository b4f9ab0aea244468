// Package loop drives the per-frame animation: clear the surface, advance and
// draw every particle, then draw the connections. Frames are requested from a
// host-supplied Scheduler; the loop never schedules on its own.
package loop

import (
	"time"

	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/pointer"
	"github.com/san-kum/particlenet/internal/surface"
)

// FrameStats summarises one completed frame.
type FrameStats struct {
	Frame        int
	Pointer      geom.Vec2
	Bounds       geom.Bounds
	Links        int
	Repelled     int
	Displacement float64
	Elapsed      time.Duration
}

type Observer interface {
	OnFrame(FrameStats)
}

type ObserverFunc func(FrameStats)

func (f ObserverFunc) OnFrame(s FrameStats) { f(s) }

type Loop struct {
	field    *field.Field
	tracker  *pointer.Tracker
	manager  *surface.Manager
	renderer *connect.Renderer
	sched    Scheduler

	running bool
	ticking bool
	pending Handle
	frame   int
	last    FrameStats

	observers []Observer
	cleanups  []func()
}

func New(f *field.Field, t *pointer.Tracker, m *surface.Manager, r *connect.Renderer, s Scheduler) *Loop {
	return &Loop{
		field:     f,
		tracker:   t,
		manager:   m,
		renderer:  r,
		sched:     s,
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// AddCleanup registers fn to run when the loop stops, typically detaching a
// host's resize or pointer subscription. Cleanups run in reverse order.
func (l *Loop) AddCleanup(fn func()) { l.cleanups = append(l.cleanups, fn) }

func (l *Loop) Field() *field.Field         { return l.field }
func (l *Loop) Tracker() *pointer.Tracker   { return l.tracker }
func (l *Loop) Manager() *surface.Manager   { return l.manager }
func (l *Loop) Renderer() *connect.Renderer { return l.renderer }
func (l *Loop) Running() bool               { return l.running }
func (l *Loop) Frame() int                  { return l.frame }
func (l *Loop) Last() FrameStats            { return l.last }

// Start requests the first frame. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.pending = l.sched.Schedule(l.onFrame)
}

// Stop revokes the pending frame and runs the cleanups. No frame runs after
// Stop returns. Stop is idempotent.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.pending != nil {
		l.pending.Cancel()
		l.pending = nil
	}
	for i := len(l.cleanups) - 1; i >= 0; i-- {
		l.cleanups[i]()
	}
	l.cleanups = nil
}

func (l *Loop) onFrame() {
	l.pending = nil
	if !l.running {
		return
	}
	l.Tick()
	// an observer may have stopped the loop
	if l.running {
		l.pending = l.sched.Schedule(l.onFrame)
	}
}

// Tick renders exactly one frame and notifies observers. A Tick issued from
// inside an observer is ignored and returns the current frame's stats.
func (l *Loop) Tick() FrameStats {
	if l.ticking {
		return l.last
	}
	l.ticking = true
	defer func() { l.ticking = false }()

	start := time.Now()
	s := l.manager.Surface()
	b := l.manager.Bounds()
	ptr := l.tracker.Position()

	s.Clear()
	repelled := l.field.Step(ptr, b, s)
	links := l.renderer.Render(l.field.Particles(), s)

	l.frame++
	l.last = FrameStats{
		Frame:        l.frame,
		Pointer:      ptr,
		Bounds:       b,
		Links:        links,
		Repelled:     repelled,
		Displacement: l.field.MeanDisplacement(),
		Elapsed:      time.Since(start),
	}
	for _, o := range l.observers {
		o.OnFrame(l.last)
	}
	return l.last
}
