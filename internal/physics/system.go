package physics

// planet holds raw ephemeris values before unit scaling.
type planet struct {
	name       string
	x, y, z    float64
	vx, vy, vz float64
	mass       float64
}

var jovian = []planet{
	{
		name: "sun",
		mass: 1,
	},
	{
		name: "jupiter",
		x:    4.84143144246472090,
		y:    -1.16032004402742839,
		z:    -0.103622044471123109,
		vx:   0.00166007664274403694,
		vy:   0.00769901118419740425,
		vz:   -0.0000690460016972063023,
		mass: 0.000954791938424326609,
	},
	{
		name: "saturn",
		x:    8.34336671824457987,
		y:    4.12479856412430479,
		z:    -0.403523417114321381,
		vx:   -0.00276742510726862411,
		vy:   0.00499852801234917238,
		vz:   0.0000230417297573763929,
		mass: 0.000285885980666130812,
	},
	{
		name: "uranus",
		x:    12.8943695621391310,
		y:    -15.1111514016986312,
		z:    -0.223307578892655734,
		vx:   0.00296460137564761618,
		vy:   0.00237847173959480950,
		vz:   -0.0000296589568540237556,
		mass: 0.0000436624404335156298,
	},
	{
		name: "neptune",
		x:    15.3796971148509165,
		y:    -25.9193146099879641,
		z:    0.179258772950371181,
		vx:   0.00268067772490389322,
		vy:   0.00162824170038242295,
		vz:   -0.0000951592254519715870,
		mass: 0.0000515138902046611451,
	},
}

// JovianSystem returns a fresh copy of the Sun and the four giant planets,
// Sun first. Velocities are scaled by DaysPerYear and masses by SolarMass
// in float64 arithmetic. Momentum is not yet offset.
func JovianSystem() []Body {
	bodies := make([]Body, len(jovian))
	for i, p := range jovian {
		bodies[i] = Body{
			X:    p.x,
			Y:    p.y,
			Z:    p.z,
			VX:   p.vx * DaysPerYear,
			VY:   p.vy * DaysPerYear,
			VZ:   p.vz * DaysPerYear,
			Mass: p.mass * SolarMass,
		}
	}
	return bodies
}

// BodyNames lists the names of the bodies returned by JovianSystem, in order.
func BodyNames() []string {
	names := make([]string, len(jovian))
	for i, p := range jovian {
		names[i] = p.name
	}
	return names
}
