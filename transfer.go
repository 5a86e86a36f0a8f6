package spiral

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ChristopherRabotin/spiral/integrator"
	kitlog "github.com/go-kit/kit/log"
)

const (
	// StepSize is the default step size of propagation.
	StepSize = 50 * time.Second
	// SecondsPerYear is used to report the travel time.
	SecondsPerYear = 3.154e7
	// statusPeriod is the wall clock period between two status reports.
	statusPeriod = 10 * time.Second
	// stateSize is [x, y, vx, vy, m].
	stateSize = 5
	// depletionTol is the fraction of one step of propellant below which the tank is empty.
	depletionTol = 1e-9
)

// Scheme is a fixed step integration scheme.
type Scheme uint8

const (
	// SemiImplicitEuler kicks the velocity then drifts the position with the new velocity.
	SemiImplicitEuler Scheme = iota
	// RungeKutta4 is the classical RK4, only meant as a reference.
	RungeKutta4
)

func (s Scheme) String() string {
	switch s {
	case SemiImplicitEuler:
		return "euler"
	case RungeKutta4:
		return "rk4"
	}
	panic("cannot stringify unknown scheme")
}

// SchemeFromString returns the scheme from its name.
func SchemeFromString(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "", "euler", "symplectic", "semi-implicit":
		return SemiImplicitEuler, nil
	case "rk4":
		return RungeKutta4, nil
	default:
		return 0, fmt.Errorf("unknown integration scheme '%s'", name)
	}
}

// TransferConfig defines the geometry and the stepping of a transfer.
type TransferConfig struct {
	InitialRadius float64       // km
	TargetRadius  float64       // km
	Step          time.Duration // time step
	MaxSteps      uint64        // zero means unbounded
	MaxDuration   time.Duration // simulated time, zero means unbounded
	Scheme        Scheme
	Epoch         time.Time // departure date, only used for reporting and exports
}

// NewTransferConfig returns an unbounded semi-implicit Euler configuration with the default step.
func NewTransferConfig(initial, target float64) TransferConfig {
	return TransferConfig{InitialRadius: initial, TargetRadius: target, Step: StepSize}
}

// Validate returns an error if the configuration cannot be propagated.
func (c TransferConfig) Validate() error {
	if c.InitialRadius <= 0 {
		return invalidf("initial radius must be positive (got %g)", c.InitialRadius)
	}
	if c.TargetRadius <= c.InitialRadius {
		return fmt.Errorf("%w: target radius %g km is not beyond the initial radius %g km", ErrInwardTransfer, c.TargetRadius, c.InitialRadius)
	}
	if c.Step <= 0 {
		return invalidf("time step must be positive (got %s)", c.Step)
	}
	if c.MaxDuration < 0 {
		return invalidf("maximum duration must not be negative (got %s)", c.MaxDuration)
	}
	return nil
}

/* Handles the low thrust propagation. */

// Transfer propagates a vehicle from a circular orbit until it reaches the target radius.
type Transfer struct {
	Vehicle    *Spacecraft
	Body       CelestialObject
	Conf       TransferConfig
	R, V       Vector2     // current position (km) and velocity (km/s)
	Mass       float64     // current mass (kg)
	Elapsed    float64     // seconds since departure
	Trajectory *Trajectory // position history
	export     ExportConfig
	mdot, dt   float64
	steps      uint64
	err        error
	ctx        context.Context
	histChan   chan<- (Sample)
	logger     kitlog.Logger
	lastStatus time.Time

	reached, exhausted, collided bool
}

// NewTransfer returns a transfer which starts on the circular orbit of the initial radius.
// If the logger is nil, nothing is logged.
func NewTransfer(sc *Spacecraft, body CelestialObject, conf TransferConfig, export ExportConfig, logger kitlog.Logger) (*Transfer, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	logger = kitlog.With(logger, "spacecraft", sc.Name)
	start := NewCircularOrbit(conf.InitialRadius, body)
	t := &Transfer{
		Vehicle:    sc,
		Body:       body,
		Conf:       conf,
		R:          start.R,
		V:          start.V,
		Mass:       sc.WetMass,
		Trajectory: &Trajectory{},
		export:     export,
		mdot:       sc.Prop.MassFlowRate(),
		dt:         conf.Step.Seconds(),
		logger:     logger,
	}
	t.Trajectory.append(Sample{0, t.R, t.V, t.Mass})
	return t, nil
}

// Orbit returns the current osculating orbit.
func (t *Transfer) Orbit() Orbit {
	return NewOrbitFromRV(t.R, t.V, t.Body)
}

// Steps returns the number of accepted steps.
func (t *Transfer) Steps() uint64 {
	return t.steps
}

// LogStatus logs the status of the propagation and vehicle.
func (t *Transfer) LogStatus() {
	t.lastStatus = time.Now()
	t.logger.Log("level", "info", "subsys", "astro", "step", t.steps, "days", t.Elapsed/86400, "mass(kg)", t.Mass, "orbit", t.Orbit())
}

// Propagate starts the propagation and blocks until the target radius is reached, the propagation
// fails, hits one of its limits or the context is done. The result is returned in all cases
// but the configuration errors; it is partial when an error is returned.
func (t *Transfer) Propagate(ctx context.Context) (*Result, error) {
	if t.Trajectory.Sealed() {
		return nil, errors.New("transfer already propagated")
	}
	t.ctx = ctx

	var wg sync.WaitGroup
	var exportErr error
	if !t.export.IsUseless() {
		histChan := make(chan (Sample), 1000) // a 1k entry buffer
		t.histChan = histChan
		wg.Add(1)
		go func() {
			defer wg.Done()
			exportErr = StreamSamples(t.export, t.Body, t.Conf.Epoch, histChan)
		}()
		// Write the first data point.
		histChan <- t.Trajectory.Last()
	}

	var solver integrator.Solver
	switch t.Conf.Scheme {
	case RungeKutta4:
		solver = integrator.NewRK4(0, t.dt, t)
	default:
		solver = integrator.NewSymplecticEuler(0, t.dt, 2, t)
	}

	t.LogStatus()
	if _, _, err := solver.Solve(); err != nil { // Blocking.
		t.err = &StepError{Step: t.steps, Time: t.Elapsed, Err: err}
	}
	t.Trajectory.seal()
	if t.histChan != nil {
		close(t.histChan)
		wg.Wait() // Don't return until we're done writing all the files.
	}

	rslt := t.result()
	if t.err != nil {
		t.logger.Log("level", "critical", "subsys", "astro", "status", "failed", "err", t.err)
	} else {
		t.logger.Log("level", "notice", "subsys", "astro", "status", "finished", "steps", rslt.Steps, "years", rslt.Years(), "Δv(km/s)", rslt.DeltaV, "fuel(kg)", rslt.PropellantUsed)
	}
	t.LogStatus()
	if t.err != nil {
		return rslt, t.err
	}
	if exportErr != nil {
		return rslt, exportErr
	}
	return rslt, nil
}

// GetState returns the state for the integrator.
func (t *Transfer) GetState() []float64 {
	return []float64{t.R.X, t.R.Y, t.V.X, t.V.Y, t.Mass}
}

// SetState sets the updated state.
func (t *Transfer) SetState(i uint64, s []float64) {
	t.R = Vector2{s[0], s[1]}
	t.V = Vector2{s[2], s[3]}

	// The mass never goes below the dry mass: the propellant is gone and the thrust stops.
	// A remainder below a billionth of one step of propellant counts as gone.
	if s[4]-t.Vehicle.DryMass <= depletionTol*t.mdot*t.dt {
		s[4] = t.Vehicle.DryMass
		if !t.exhausted {
			t.exhausted = true
			t.logger.Log("level", "critical", "subsys", "prop", "status", "depleted", "step", t.steps+1, "mass(kg)", s[4], "policy", t.Vehicle.Depletion)
		}
	}
	t.Mass = s[4]
	t.Elapsed += t.dt
	t.steps++

	if !t.collided && t.R.Norm() < t.Body.Radius {
		t.collided = true
		t.logger.Log("level", "critical", "subsys", "astro", "collided", t.Body.Name, "r", t.R.Norm(), "radius", t.Body.Radius)
	}

	sample := Sample{t.Elapsed, t.R, t.V, t.Mass}
	t.Trajectory.append(sample)
	if t.histChan != nil {
		t.histChan <- sample
	}
}

// Stop implements the stop call of the integrator. It is called before each step.
func (t *Transfer) Stop(i uint64) bool {
	if t.R.Norm() >= t.Conf.TargetRadius {
		t.reached = true
		return true
	}
	if t.ctx != nil {
		if err := t.ctx.Err(); err != nil {
			t.err = err
			return true
		}
	}
	if t.exhausted && t.Vehicle.Depletion == StopOnDepletion {
		t.err = ErrPropellantExhausted
		return true
	}
	if (t.Conf.MaxSteps > 0 && t.steps >= t.Conf.MaxSteps) || (t.Conf.MaxDuration > 0 && t.Elapsed >= t.Conf.MaxDuration.Seconds()) {
		t.logger.Log("level", "critical", "subsys", "astro", "status", "killed", "step", t.steps, "r(km)", t.R.Norm())
		t.err = ErrDidNotConverge
		return true
	}
	if i%1024 == 0 && time.Since(t.lastStatus) > statusPeriod {
		t.LogStatus()
	}
	return false
}

// Func returns the derivative of [x, y, vx, vy, m]: central gravity plus thrust along the velocity.
func (t *Transfer) Func(x float64, f []float64) ([]float64, error) {
	R := Vector2{f[0], f[1]}
	V := Vector2{f[2], f[3]}
	m := f[4]

	r := R.Norm()
	if r == 0 {
		return nil, ErrDivisionByZero
	}
	// Acceleration due to gravity.
	aGrav := Scale(-t.Body.μ/math.Pow(r, 3), R)

	// Acceleration due to thrust, only while there is propellant left.
	var aThrust Vector2
	dm := 0.0
	if m > t.Vehicle.DryMass && t.mdot > 0 {
		dir, err := V.Unit()
		if err != nil {
			return nil, err
		}
		// The last burn only spends the propellant left, so the thrust never outlives it.
		burn := math.Min(1, (m-t.Vehicle.DryMass)/(t.mdot*t.dt))
		aThrust = Scale(burn*t.Vehicle.Prop.Thrust/m, dir)
		dm = -burn * t.mdot
	}
	a := aGrav.Add(aThrust)

	fDot := []float64{V.X, V.Y, a.X, a.Y, dm}
	for i := 0; i < stateSize; i++ {
		if math.IsNaN(fDot[i]) {
			return nil, fmt.Errorf("fDot[%d]=NaN (R=%s V=%s m=%f)", i, R, V, m)
		}
	}
	return fDot, nil
}

func (t *Transfer) result() *Result {
	rslt := &Result{
		Reached:        t.reached,
		FinalRadius:    t.R.Norm(),
		FinalMass:      t.Mass,
		Elapsed:        t.Elapsed,
		Steps:          t.steps,
		PropellantUsed: t.Vehicle.WetMass - t.Mass,
		Final:          t.Orbit(),
		Trajectory:     t.Trajectory,
	}
	if !t.Conf.Epoch.IsZero() {
		rslt.Arrival = t.Conf.Epoch.Add(time.Duration(t.Elapsed * float64(time.Second)))
	}
	if t.Mass > 0 {
		rslt.DeltaV = t.Vehicle.Prop.ExhaustVelocity() * math.Log(t.Vehicle.WetMass/t.Mass)
	}
	return rslt
}
