package physics

import "math"

const (
	Pi          = 3.141592653589793
	DaysPerYear = 365.24

	// StepCount and Dt are the benchmark's fixed integration schedule.
	StepCount = 1000
	Dt        = 0.01
)

// SolarMass is 4π² evaluated in float64 arithmetic. Go constant
// expressions are exact, so folding it as a constant would round once
// instead of twice and could move the last bit.
var SolarMass = solarMass()

func solarMass() float64 {
	pi := float64(Pi)
	return 4 * pi * pi
}

// Body is a point mass. Positions are in AU and velocities in AU per
// year; masses are scaled so that G = 1 and the Sun weighs SolarMass.
type Body struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Mass       float64
}

// The kernels below wrap every product that feeds an addition in an
// explicit float64 conversion. The conversion forces rounding and stops
// the compiler from emitting fused multiply-add on arm64, ppc64 and
// s390x, which keeps trajectories bit-identical across platforms.

func invsqrt(x float64) float64 {
	return math.Pow(x, -0.5)
}

// OffsetMomentum sets the velocity of bodies[0] to -p/SolarMass, where p
// is the total momentum of the system. It panics on an empty slice.
func OffsetMomentum(bodies []Body) {
	var px, py, pz float64
	for i := range bodies {
		b := &bodies[i]
		px += float64(b.VX * b.Mass)
		py += float64(b.VY * b.Mass)
		pz += float64(b.VZ * b.Mass)
	}

	bodies[0].VX = -px / SolarMass
	bodies[0].VY = -py / SolarMass
	bodies[0].VZ = -pz / SolarMass
}

// Energy returns the total mechanical energy. Coincident bodies make the
// result infinite; that case is not guarded.
func Energy(bodies []Body) float64 {
	e := 0.0
	for i := range bodies {
		bi := &bodies[i]
		v2 := float64(bi.VX*bi.VX) + float64(bi.VY*bi.VY) + float64(bi.VZ*bi.VZ)
		e += float64(0.5 * bi.Mass * v2)

		for j := i + 1; j < len(bodies); j++ {
			bj := &bodies[j]
			dx, dy, dz := bi.X-bj.X, bi.Y-bj.Y, bi.Z-bj.Z
			d2 := float64(dx*dx) + float64(dy*dy) + float64(dz*dz)
			e -= float64(bi.Mass * bj.Mass * invsqrt(d2))
		}
	}
	return e
}

// Advance moves the system forward by one semi-implicit Euler step.
//
// Each pair (i, j) with i < j is visited once. Body i accumulates its
// velocity change in locals and commits it, together with its new
// position, once its inner loop is done; body j is kicked in place. By
// the time body i moves, every pair it belongs to has been processed, so
// no pair ever sees an updated position.
func Advance(bodies []Body, dt float64) {
	for i := range bodies {
		bi := &bodies[i]
		x, y, z, m := bi.X, bi.Y, bi.Z, bi.Mass
		vx, vy, vz := bi.VX, bi.VY, bi.VZ

		for j := i + 1; j < len(bodies); j++ {
			bj := &bodies[j]
			dx, dy, dz := x-bj.X, y-bj.Y, z-bj.Z
			dist2 := float64(dx*dx) + float64(dy*dy) + float64(dz*dz)
			mag := dt * (invsqrt(dist2) / dist2)

			bm := bj.Mass * mag
			vx -= float64(dx * bm)
			vy -= float64(dy * bm)
			vz -= float64(dz * bm)

			bm = m * mag
			bj.VX += float64(dx * bm)
			bj.VY += float64(dy * bm)
			bj.VZ += float64(dz * bm)
		}

		bi.VX, bi.VY, bi.VZ = vx, vy, vz
		bi.X = x + float64(dt*vx)
		bi.Y = y + float64(dt*vy)
		bi.Z = z + float64(dt*vz)
	}
}

func Momentum(bodies []Body) (px, py, pz float64) {
	for i := range bodies {
		b := &bodies[i]
		px += float64(b.VX * b.Mass)
		py += float64(b.VY * b.Mass)
		pz += float64(b.VZ * b.Mass)
	}
	return
}

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		b := &bodies[i]
		v2 := float64(b.VX*b.VX) + float64(b.VY*b.VY) + float64(b.VZ*b.VZ)
		ke += float64(0.5 * b.Mass * v2)
	}
	return ke
}

// PotentialEnergy returns the magnitude of the gravitational binding
// energy, Σ m_i m_j / r_ij over unordered pairs.
func PotentialEnergy(bodies []Body) float64 {
	pe := 0.0
	for i := range bodies {
		bi := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			bj := &bodies[j]
			dx, dy, dz := bi.X-bj.X, bi.Y-bj.Y, bi.Z-bj.Z
			d2 := float64(dx*dx) + float64(dy*dy) + float64(dz*dz)
			pe += float64(bi.Mass * bj.Mass * invsqrt(d2))
		}
	}
	return pe
}
