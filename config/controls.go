package config

import "fmt"

// State distinguishes a steady outer-iteration run from a transient one
// (§6: `controls { state STEADY|TRANSIENT; }`).
type State int

const (
	Steady State = iota
	Transient
)

func (s State) String() string {
	if s == Steady {
		return "STEADY"
	}
	return "TRANSIENT"
}

// Scheme selects the convective discretization (§4.2).
type Scheme int

const (
	Upwind Scheme = iota
	Central
	TVD
)

func (s Scheme) String() string {
	switch s {
	case Central:
		return "CDS"
	case TVD:
		return "TVD"
	default:
		return "UDS"
	}
}

// Controls is the `controls { ... }` block: start_step, end_step,
// write_interval, dt, state, time_scheme_factor, linear-solver tolerances
// and scheme selectors (§6).
type Controls struct {
	StartStep       int
	EndStep         int
	WriteInterval   int
	Dt              float64
	State           State
	TimeSchemeFactor float64 // Crank-Nicolson theta, §4.2

	SolverTolerance  float64
	SolverMaxIters   int
	ConvectionScheme Scheme

	// DivergenceWindow is the number of outer iterations over which the
	// residual must show no decrease before a run is declared diverged
	// (§7 "Numerical divergence").
	DivergenceWindow int
}

func defaultControls() Controls {
	return Controls{
		StartStep:        0,
		EndStep:          1,
		WriteInterval:    1,
		Dt:               1,
		State:            Steady,
		TimeSchemeFactor: 1,
		SolverTolerance:  1e-6,
		SolverMaxIters:   500,
		ConvectionScheme: Upwind,
		DivergenceWindow: 50,
	}
}

func parseControls(blocks map[string]*Block) (Controls, error) {
	c := defaultControls()
	b, ok := blocks["controls"]
	if !ok {
		return c, nil
	}
	c.StartStep = b.Int("start_step", c.StartStep)
	c.EndStep = b.Int("end_step", c.EndStep)
	c.WriteInterval = b.Int("write_interval", c.WriteInterval)
	c.Dt = b.Float("dt", c.Dt)
	c.TimeSchemeFactor = b.Float("time_scheme_factor", c.TimeSchemeFactor)
	c.SolverTolerance = b.Float("tolerance", c.SolverTolerance)
	c.SolverMaxIters = b.Int("max_iterations", c.SolverMaxIters)
	c.DivergenceWindow = b.Int("divergence_window", c.DivergenceWindow)

	stateIdx, err := b.Option("state", int(c.State), "STEADY", "TRANSIENT")
	if err != nil {
		return c, err
	}
	c.State = State(stateIdx)

	schemeIdx, err := b.Option("scheme", int(c.ConvectionScheme), "UPWIND", "CDS", "TVD")
	if err != nil {
		return c, err
	}
	c.ConvectionScheme = Scheme(schemeIdx)

	if c.WriteInterval <= 0 {
		return c, fmt.Errorf("config: controls.write_interval must be positive, got %d", c.WriteInterval)
	}
	return c, nil
}
