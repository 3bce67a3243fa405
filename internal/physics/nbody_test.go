package physics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
)

func run(steps int) ([]Body, float64, float64) {
	bodies := JovianSystem()
	OffsetMomentum(bodies)
	before := Energy(bodies)
	for i := 0; i < steps; i++ {
		Advance(bodies, Dt)
	}
	return bodies, before, Energy(bodies)
}

func TestSolarMass(t *testing.T) {
	g := NewWithT(t)
	g.Expect(SolarMass).To(BeNumerically("~", 39.47841760435743, 1e-12))
}

func TestJovianSystem(t *testing.T) {
	g := NewWithT(t)

	bodies := JovianSystem()
	g.Expect(bodies).To(HaveLen(5))
	g.Expect(BodyNames()).To(Equal([]string{"sun", "jupiter", "saturn", "uranus", "neptune"}))

	sun := bodies[0]
	g.Expect(sun.Mass).To(Equal(SolarMass))
	g.Expect([]float64{sun.X, sun.Y, sun.Z, sun.VX, sun.VY, sun.VZ}).To(HaveEach(0.0))

	jupiter := bodies[1]
	g.Expect(jupiter.VX).To(BeNumerically("~", 0.606326392995832, 1e-15))
	g.Expect(jupiter.Mass).To(BeNumerically("~", 0.03769367487038949, 1e-15))

	// fresh copy every call
	bodies[1].X = 0
	g.Expect(JovianSystem()[1].X).To(Equal(4.84143144246472090))
}

func TestReferenceEnergies(t *testing.T) {
	g := NewWithT(t)

	_, before, after := run(StepCount)

	g.Expect(before).To(BeNumerically("~", -0.169075164, 5e-10))
	g.Expect(after).To(BeNumerically("~", -0.169087605, 5e-10))
	g.Expect(math.Abs(after - before)).To(BeNumerically("<", 1e-4))
}

func TestDeterminism(t *testing.T) {
	b1, e1, f1 := run(StepCount)
	b2, e2, f2 := run(StepCount)

	if diff := cmp.Diff(b1, b2); diff != "" {
		t.Errorf("bodies differ between runs (-first +second):\n%s", diff)
	}
	if math.Float64bits(e1) != math.Float64bits(e2) || math.Float64bits(f1) != math.Float64bits(f2) {
		t.Errorf("energies not bit-identical: (%v, %v) vs (%v, %v)", e1, f1, e2, f2)
	}
}

func TestOffsetMomentum(t *testing.T) {
	g := NewWithT(t)

	bodies := JovianSystem()
	px, py, pz := Momentum(bodies)
	g.Expect(math.Abs(px) + math.Abs(py) + math.Abs(pz)).To(BeNumerically(">", 1e-3))

	planets := append([]Body(nil), bodies[1:]...)
	OffsetMomentum(bodies)

	g.Expect(bodies[0].VX).To(Equal(-px / SolarMass))
	g.Expect(bodies[0].VY).To(Equal(-py / SolarMass))
	g.Expect(bodies[0].VZ).To(Equal(-pz / SolarMass))
	g.Expect(bodies[1:]).To(Equal(planets), "only the first body is touched")

	px, py, pz = Momentum(bodies)
	g.Expect(px).To(BeNumerically("~", 0, 1e-12))
	g.Expect(py).To(BeNumerically("~", 0, 1e-12))
	g.Expect(pz).To(BeNumerically("~", 0, 1e-12))
}

func TestOffsetMomentumUsesSolarMass(t *testing.T) {
	g := NewWithT(t)

	// the first body is light, yet the correction still divides by SolarMass
	bodies := []Body{
		{Mass: 1},
		{X: 1, VX: 2, Mass: 3},
	}
	OffsetMomentum(bodies)

	g.Expect(bodies[0].VX).To(Equal(-6 / SolarMass))
	g.Expect(bodies[0].VY).To(BeZero())
}

func TestMomentumConservedByAdvance(t *testing.T) {
	g := NewWithT(t)

	bodies := JovianSystem()
	OffsetMomentum(bodies)
	for i := 0; i < StepCount; i++ {
		Advance(bodies, Dt)
		px, py, pz := Momentum(bodies)
		g.Expect(math.Abs(px) + math.Abs(py) + math.Abs(pz)).To(BeNumerically("<", 1e-12), "step %d", i)
	}
}

func TestEnergySplit(t *testing.T) {
	g := NewWithT(t)

	bodies, _, e := run(10)
	g.Expect(KineticEnergy(bodies) - PotentialEnergy(bodies)).To(BeNumerically("~", e, 1e-15))
	g.Expect(PotentialEnergy(bodies)).To(BeNumerically(">", 0))
}

func TestEnergyIsPure(t *testing.T) {
	bodies := JovianSystem()
	OffsetMomentum(bodies)
	snapshot := append([]Body(nil), bodies...)

	Energy(bodies)

	if diff := cmp.Diff(snapshot, bodies); diff != "" {
		t.Errorf("Energy mutated its input:\n%s", diff)
	}
}

func TestSingleBody(t *testing.T) {
	g := NewWithT(t)

	bodies := []Body{{X: 1, Y: 2, Z: 3, VX: 1, VY: -2, VZ: 0.5, Mass: 2}}

	g.Expect(Energy(bodies)).To(Equal(0.5 * 2 * (1 + 4 + 0.25)))
	g.Expect(PotentialEnergy(bodies)).To(BeZero())

	Advance(bodies, 0.5)
	g.Expect(bodies[0].VX).To(Equal(1.0))
	g.Expect(bodies[0].VY).To(Equal(-2.0))
	g.Expect(bodies[0].VZ).To(Equal(0.5))
	g.Expect(bodies[0].X).To(Equal(1.5))
	g.Expect(bodies[0].Y).To(Equal(1.0))
	g.Expect(bodies[0].Z).To(Equal(3.25))
}

func TestPairwiseSymmetry(t *testing.T) {
	tests := []struct {
		name string
		a, b Body
	}{
		{"equal masses", Body{X: -1, Mass: 1}, Body{X: 1, Mass: 1}},
		{"unequal masses", Body{Mass: SolarMass}, Body{X: 3, Y: 4, VY: 0.5, Mass: 0.04}},
		{"moving pair", Body{X: 1, Y: 1, Z: 1, VX: 0.1, Mass: 2}, Body{X: -2, Z: 0.5, VZ: -0.3, Mass: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			bodies := []Body{tt.a, tt.b}
			Advance(bodies, Dt)

			for _, axis := range []struct {
				name     string
				v0a, v0b float64
				v1a, v1b float64
			}{
				{"x", tt.a.VX, tt.b.VX, bodies[0].VX, bodies[1].VX},
				{"y", tt.a.VY, tt.b.VY, bodies[0].VY, bodies[1].VY},
				{"z", tt.a.VZ, tt.b.VZ, bodies[0].VZ, bodies[1].VZ},
			} {
				pa := tt.a.Mass * (axis.v1a - axis.v0a)
				pb := tt.b.Mass * (axis.v1b - axis.v0b)
				g.Expect(pa).To(BeNumerically("~", -pb, 1e-12), "axis %s", axis.name)
			}
		})
	}
}

func TestAdvanceUsesUpdatedVelocity(t *testing.T) {
	g := NewWithT(t)

	bodies := []Body{{Mass: 1}, {X: 1, Mass: 1}}
	Advance(bodies, 0.1)

	// dist=1: mag = dt, body 0 kicked towards +x by 0.1 then moved by dt*v
	g.Expect(bodies[0].VX).To(BeNumerically("~", 0.1, 1e-15))
	g.Expect(bodies[0].X).To(BeNumerically("~", 0.01, 1e-15))
	g.Expect(bodies[1].VX).To(BeNumerically("~", -0.1, 1e-15))
	g.Expect(bodies[1].X).To(BeNumerically("~", 0.99, 1e-15))
}

func TestCoincidentBodiesPropagate(t *testing.T) {
	g := NewWithT(t)

	bodies := []Body{{Mass: 1}, {Mass: 1}}
	g.Expect(math.IsInf(Energy(bodies), -1)).To(BeTrue())

	Advance(bodies, Dt)
	g.Expect(math.IsNaN(bodies[0].VX)).To(BeTrue())
	g.Expect(math.IsNaN(Energy(bodies))).To(BeTrue())
}
