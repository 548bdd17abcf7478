package world_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

const dt = 1.0 / 60.0

func ground(width float64) *body.Body {
	g, err := body.NewBox(width, 2, 1, 0.5, true)
	Expect(err).NotTo(HaveOccurred())
	g.MoveTo(vmath.New(0, -1))
	return g
}

var _ = Describe("World", func() {
	var (
		w    *world.World
		base *body.Body
	)

	BeforeEach(func() {
		w = world.New()
		base = ground(20)
		w.AddBody(base)
	})

	Describe("a circle dropped onto the ground", func() {
		var ball *body.Body

		BeforeEach(func() {
			var err error
			ball, err = body.NewCircle(1, 1, 0.5, false)
			Expect(err).NotTo(HaveOccurred())
			ball.MoveTo(vmath.New(0, 10))
			w.AddBody(ball)
		})

		It("never passes through the ground", func() {
			for i := 0; i < 600; i++ {
				w.Step(dt, 20)
				Expect(ball.Position().Y).To(BeNumerically(">", 1-1e-6), "tick %d", i)
			}
		})

		It("comes to rest on its radius", func() {
			for i := 0; i < 600; i++ {
				w.Step(dt, 20)
			}
			Expect(ball.Position().Y).To(BeNumerically("~", 1, 0.01))
			Expect(math.Abs(ball.LinearVelocity().Y)).To(BeNumerically("<", 0.05))
			Expect(ball.Position().X).To(BeNumerically("~", 0, 1e-9))
		})

		It("leaves the static ground untouched", func() {
			for i := 0; i < 300; i++ {
				w.Step(dt, 20)
			}
			Expect(base.Position()).To(Equal(vmath.New(0, -1)))
			Expect(base.Angle()).To(BeZero())
			Expect(base.LinearVelocity()).To(Equal(vmath.Zero))
			Expect(base.AngularVelocity()).To(BeZero())
		})

		It("reports manifolds with the ground as body A", func() {
			var seen []world.Manifold
			w.SetContactListener(func(m world.Manifold) { seen = append(seen, m) })

			for i := 0; i < 120; i++ {
				w.Step(dt, 20)
			}

			Expect(seen).NotTo(BeEmpty())
			for _, m := range seen {
				Expect(m.A).To(Equal(0))
				Expect(m.B).To(Equal(1))
				Expect(m.ContactCount).To(Equal(1))
				Expect(vmath.NearlyEqualVec(m.Normal, vmath.New(0, 1))).To(BeTrue())
			}
		})
	})

	Describe("a box resting on the ground", func() {
		var box *body.Body

		BeforeEach(func() {
			// A 16m ground keeps the vertex projections exact so both
			// bottom corners tie for the closest contact.
			w = world.New()
			base = ground(16)
			w.AddBody(base)

			var err error
			box, err = body.NewBox(2, 2, 1, 0.2, false)
			Expect(err).NotTo(HaveOccurred())
			box.MoveTo(vmath.New(0, 0.99))
			w.AddBody(box)
		})

		It("touches with two contact points", func() {
			counts := map[int]int{}
			w.SetContactListener(func(m world.Manifold) { counts[m.ContactCount]++ })

			w.Step(dt, 20)

			Expect(counts[2]).To(BeNumerically(">", 0))
		})

		It("stays upright", func() {
			for i := 0; i < 300; i++ {
				w.Step(dt, 20)
			}
			Expect(box.Position().Y).To(BeNumerically("~", 1, 0.01))
			Expect(math.Abs(box.Angle())).To(BeNumerically("<", 1e-6))
		})
	})

	Describe("static bodies", func() {
		It("are never moved by gravity or each other", func() {
			other := ground(20)
			other.MoveTo(vmath.New(0, -1.5))
			w.AddBody(other)

			for i := 0; i < 60; i++ {
				w.Step(dt, 8)
			}
			Expect(base.Position()).To(Equal(vmath.New(0, -1)))
			Expect(other.Position()).To(Equal(vmath.New(0, -1.5)))
		})
	})

	Describe("removing bodies", func() {
		It("stops simulating them", func() {
			ball, err := body.NewCircle(0.5, 1, 0.5, false)
			Expect(err).NotTo(HaveOccurred())
			ball.MoveTo(vmath.New(0, 5))
			w.AddBody(ball)

			Expect(w.RemoveBody(ball)).To(BeTrue())
			w.Step(dt, 4)
			Expect(ball.Position()).To(Equal(vmath.New(0, 5)))
			Expect(w.BodyCount()).To(Equal(1))
		})
	})
})
