package config

// General is the top-level `general { ... }` block: solver selection, mesh
// path prefix, and the physical constants every solver shares (§6), the Go
// counterpart of the source's GENERAL namespace.
type General struct {
	Solver       string
	MeshPath     string
	Density      float64
	Viscosity    float64
	Conductivity float64
	Gravity      [3]float64
}

func defaultGeneral() General {
	return General{
		Solver:       "piso",
		MeshPath:     "mesh",
		Density:      1,
		Viscosity:    1e-5,
		Conductivity: 1e-4,
		Gravity:      [3]float64{0, 0, -9.81},
	}
}

func parseGeneral(blocks map[string]*Block) General {
	g := defaultGeneral()
	b, ok := blocks["general"]
	if !ok {
		return g
	}
	g.Solver = b.String("solver", g.Solver)
	g.MeshPath = b.String("mesh", g.MeshPath)
	g.Density = b.Float("rho", g.Density)
	g.Viscosity = b.Float("viscosity", g.Viscosity)
	g.Conductivity = b.Float("conductivity", g.Conductivity)
	g.Gravity = b.Vec3("gravity", g.Gravity)
	return g
}
