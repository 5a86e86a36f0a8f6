package spiral

import (
	"fmt"
	"strings"
)

const (
	// StandardGravity is g0 in km/s^2.
	StandardGravity = 9.81e-3
)

// Propulsion holds the thruster performance of a vehicle.
type Propulsion struct {
	Thrust float64 // kN
	Isp    float64 // s
	G0     float64 // km/s^2
}

// NewPropulsion returns the propulsion of the provided thruster with the standard gravity.
func NewPropulsion(th Thruster) Propulsion {
	thrust, isp := th.Thrust()
	return Propulsion{thrust, isp, StandardGravity}
}

// MassFlowRate returns the propellant mass flow rate in kg/s, i.e. T / (Isp * g0).
func (p Propulsion) MassFlowRate() float64 {
	return p.Thrust / (p.Isp * p.G0)
}

// ExhaustVelocity returns Isp * g0 in km/s.
func (p Propulsion) ExhaustVelocity() float64 {
	return p.Isp * p.G0
}

// Validate returns an error if the propulsion is not physical. A zero thrust is a coasting vehicle.
func (p Propulsion) Validate() error {
	if p.Thrust < 0 {
		return invalidf("thrust must not be negative (got %g)", p.Thrust)
	}
	if p.Isp <= 0 {
		return invalidf("specific impulse must be positive (got %g)", p.Isp)
	}
	if p.G0 <= 0 {
		return invalidf("standard gravity must be positive (got %g)", p.G0)
	}
	return nil
}

func (p Propulsion) String() string {
	return fmt.Sprintf("T=%g kN Isp=%g s", p.Thrust, p.Isp)
}

// DepletionPolicy defines what happens once the propellant is gone.
type DepletionPolicy uint8

const (
	// CoastOnDepletion clamps the mass at the dry mass and stops thrusting.
	CoastOnDepletion DepletionPolicy = iota
	// StopOnDepletion ends the propagation with ErrPropellantExhausted.
	StopOnDepletion
)

func (d DepletionPolicy) String() string {
	switch d {
	case CoastOnDepletion:
		return "coast"
	case StopOnDepletion:
		return "stop"
	}
	panic("cannot stringify unknown depletion policy")
}

// DepletionPolicyFromString returns the policy from its name.
func DepletionPolicyFromString(name string) (DepletionPolicy, error) {
	switch strings.ToLower(name) {
	case "", "coast":
		return CoastOnDepletion, nil
	case "stop":
		return StopOnDepletion, nil
	default:
		return 0, fmt.Errorf("unknown depletion policy '%s'", name)
	}
}

// Spacecraft defines a continuously thrusting vehicle.
type Spacecraft struct {
	Name      string
	WetMass   float64 // initial mass, kg
	DryMass   float64 // mass floor, kg
	Prop      Propulsion
	Depletion DepletionPolicy
}

// NewSpacecraft returns a spacecraft with the provided thruster and no dry mass.
func NewSpacecraft(name string, wetMass float64, th Thruster) *Spacecraft {
	return &Spacecraft{Name: name, WetMass: wetMass, Prop: NewPropulsion(th)}
}

// FuelMass returns the propellant available at departure.
func (sc *Spacecraft) FuelMass() float64 {
	return sc.WetMass - sc.DryMass
}

// Validate returns an error if the vehicle cannot be propagated.
func (sc *Spacecraft) Validate() error {
	if sc.WetMass <= 0 {
		return invalidf("initial mass must be positive (got %g)", sc.WetMass)
	}
	if sc.DryMass < 0 || sc.DryMass >= sc.WetMass {
		return invalidf("dry mass must be in [0, %g) (got %g)", sc.WetMass, sc.DryMass)
	}
	return sc.Prop.Validate()
}

func (sc *Spacecraft) String() string {
	return fmt.Sprintf("%s (%.1f kg, %s)", sc.Name, sc.WetMass, sc.Prop)
}
