package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Jovian trajectory", func() {
	var (
		bodies []Body
		e0     float64
	)

	BeforeEach(func() {
		bodies = JovianSystem()
		OffsetMomentum(bodies)
		e0 = Energy(bodies)
	})

	DescribeTable("stays bounded",
		func(steps int, maxDrift float64) {
			for i := 0; i < steps; i++ {
				Advance(bodies, Dt)
			}

			e := Energy(bodies)
			Expect(math.IsNaN(e) || math.IsInf(e, 0)).To(BeFalse())
			Expect(math.Abs(e-e0) / math.Abs(e0)).To(BeNumerically("<=", maxDrift))

			px, py, pz := Momentum(bodies)
			Expect(math.Abs(px) + math.Abs(py) + math.Abs(pz)).To(BeNumerically("<", 1e-12))
		},
		Entry("with no steps", 0, 0.0),
		Entry("after one step", 1, 1e-5),
		Entry("after the benchmark schedule", StepCount, 1e-4),
		Entry("after ten times the schedule", 10*StepCount, 1e-3),
	)

	It("keeps the body count and order", func() {
		masses := make([]float64, len(bodies))
		for i := range bodies {
			masses[i] = bodies[i].Mass
		}

		for i := 0; i < 100; i++ {
			Advance(bodies, Dt)
		}

		Expect(bodies).To(HaveLen(5))
		for i := range bodies {
			Expect(bodies[i].Mass).To(Equal(masses[i]))
		}
	})

	It("keeps the sun near the barycentre", func() {
		for i := 0; i < StepCount; i++ {
			Advance(bodies, Dt)
		}
		sun := bodies[0]
		Expect(math.Sqrt(sun.X*sun.X + sun.Y*sun.Y + sun.Z*sun.Z)).To(BeNumerically("<", 0.05))
	})

	Context("with a zero step", func() {
		It("leaves the state untouched", func() {
			start := append([]Body(nil), bodies...)

			for i := 0; i < 10; i++ {
				Advance(bodies, 0)
			}

			Expect(bodies).To(Equal(start))
		})
	})
})
