package loop_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/pointer"
	"github.com/san-kum/particlenet/internal/surface"
)

var _ = Describe("Particle network", func() {
	var (
		cl      *surface.CommandList
		sched   *loop.ManualScheduler
		tracker *pointer.Tracker
	)

	build := func(w, h int, ps ...field.Particle) *loop.Loop {
		f, err := field.FromParticles(field.DefaultParams(), ps...)
		Expect(err).NotTo(HaveOccurred())
		m := surface.NewManager(surface.FixedViewport{W: w, H: h}, cl)
		return loop.New(f, tracker, m, connect.Default(), sched)
	}

	BeforeEach(func() {
		cl = surface.NewCommandList()
		sched = loop.NewManualScheduler()
		tracker = pointer.New()
		tracker.Move(-1000, -1000)
	})

	Context("four particles on a 600x600 surface", func() {
		var l *loop.Loop

		BeforeEach(func() {
			still := func(x, y float64) field.Particle {
				return field.NewParticle(geom.V(x, y), geom.Vec2{}, 2, 5)
			}
			l = build(600, 600, still(0, 0), still(10, 0), still(200, 200), still(500, 500))
			l.Start()
			Expect(sched.RunPending()).To(Equal(1))
		})

		It("draws every particle", func() {
			Expect(cl.Circles).To(HaveLen(4))
		})

		It("connects only the close pair", func() {
			links := l.Renderer().Links()
			Expect(links).To(HaveLen(1))
			Expect(links[0].I).To(Equal(0))
			Expect(links[0].J).To(Equal(1))
			Expect(links[0].Alpha).To(BeNumerically("~", 0.917, 1e-3))

			Expect(cl.Lines).To(HaveLen(1))
			Expect(cl.Lines[0].Alpha).To(BeNumerically("~", 1-10.0/120, 1e-12))
		})

		It("does not connect distant particles", func() {
			for _, lk := range l.Renderer().Links() {
				Expect([2]int{lk.I, lk.J}).NotTo(Equal([2]int{0, 3}))
			}
		})

		It("keeps going until stopped", func() {
			sched.RunPending()
			Expect(l.Frame()).To(Equal(2))
			l.Stop()
			Expect(sched.RunPending()).To(Equal(0))
			Expect(l.Frame()).To(Equal(2))
		})
	})

	Context("a displaced particle with the pointer far away", func() {
		It("relaxes a tenth of the way home", func() {
			p := field.NewParticle(geom.V(110, 100), geom.Vec2{}, 2, 5).WithBase(geom.V(100, 100))
			l := build(600, 600, p)

			l.Tick()

			got := l.Field().Particles()[0].Pos
			Expect(got.X).To(BeNumerically("~", 109, 1e-12))
			Expect(got.Y).To(Equal(100.0))
		})
	})

	Context("after the surface shrinks", func() {
		It("reflects a particle that crosses the new edge", func() {
			p := field.NewParticle(geom.V(750, 150), geom.V(0.25, 0), 2, 5)
			l := build(800, 600, p)
			l.Tick()
			Expect(l.Field().Particles()[0].Vel.X).To(Equal(0.25))

			l.Manager().OnResize(400, 300)
			l.Tick()

			Expect(l.Field().Particles()[0].Vel.X).To(Equal(-0.25))
			Expect(cl.W).To(Equal(400))
			Expect(cl.H).To(Equal(300))
		})
	})

	Context("with the pointer on top of the cluster", func() {
		It("pushes particles away and reports them", func() {
			l := build(600, 600,
				field.NewParticle(geom.V(300, 300), geom.Vec2{}, 2, 5),
				field.NewParticle(geom.V(320, 300), geom.Vec2{}, 2, 5),
			)
			tracker.Move(310, 300)

			stats := l.Tick()

			Expect(stats.Repelled).To(Equal(2))
			ps := l.Field().Particles()
			Expect(ps[0].Pos.X).To(BeNumerically("<", 300))
			Expect(ps[1].Pos.X).To(BeNumerically(">", 320))
			Expect(l.Field().Validate()).To(Succeed())
		})
	})
})
