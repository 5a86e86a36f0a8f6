package integrator

// SymplecticEuler is the first order semi-implicit Euler scheme for second order systems.
// The state must be laid out as [q_0..q_{Dim-1}, p_0..p_{Dim-1}, extra...] where dq/dt = p.
// Each step first kicks p and the extra components with the derivatives at the start of the step,
// then drifts q with the *updated* p. The q derivatives returned by Func are not used.
type SymplecticEuler struct {
	X0        float64    // The initial x0.
	StepSize  float64    // The step size.
	Dim       int        // Number of position components.
	Integator Integrable // What is to be integrated.
}

// NewSymplecticEuler returns a new semi-implicit Euler integrator instance.
func NewSymplecticEuler(x0, stepSize float64, dim int, inte Integrable) *SymplecticEuler {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if dim <= 0 {
		panic("config Dim must be positive")
	}
	if inte == nil {
		panic("config Integator may not be nil")
	}
	return &SymplecticEuler{X0: x0, StepSize: stepSize, Dim: dim, Integator: inte}
}

// Solve solves the configured integrable.
// Returns the number of iterations performed and the last X_i, or an error.
func (e *SymplecticEuler) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	xi := e.X0
	for !e.Integator.Stop(iterNum) {
		state := e.Integator.GetState()
		if len(state) < 2*e.Dim {
			panic("state is smaller than twice the configured Dim")
		}
		f, err := e.Integator.Func(xi, state)
		if err != nil {
			return iterNum, xi, err
		}
		newState := make([]float64, len(state))
		// Kick
		for i := e.Dim; i < len(state); i++ {
			newState[i] = state[i] + f[i]*e.StepSize
		}
		// Drift
		for i := 0; i < e.Dim; i++ {
			newState[i] = state[i] + newState[e.Dim+i]*e.StepSize
		}
		e.Integator.SetState(iterNum, newState)

		xi += e.StepSize
		iterNum++
	}
	return iterNum, xi, nil
}
