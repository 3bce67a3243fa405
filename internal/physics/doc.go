// Package physics implements the n-body gravitational kernel.
//
// The kernel works on a []Body of plain value structs mutated in place:
//
//   - [OffsetMomentum]: zero the total momentum by adjusting the Sun
//   - [Energy]: kinetic minus gravitational potential energy
//   - [Advance]: one semi-implicit (symplectic) Euler step
//
// [JovianSystem] builds the standard five-body initial state.
//
// # Reproducibility
//
// Pair iteration order and the order of floating-point operations are
// fixed, so a run is bit-for-bit deterministic on any IEEE-754 platform:
//
//	bodies := physics.JovianSystem()
//	physics.OffsetMomentum(bodies)
//	before := physics.Energy(bodies)
//	for i := 0; i < physics.StepCount; i++ {
//	    physics.Advance(bodies, physics.Dt)
//	}
//	after := physics.Energy(bodies)
package physics
