package spiral

import (
	"fmt"
	"strings"
)

// Thruster defines a thruster interface.
type Thruster interface {
	// Returns the thrust in kN (i.e. kg*km/s^2) and the specific impulse in seconds.
	Thrust() (thrust, isp float64)
}

/* Available thrusters */

// PPS1350 is the Snecma thruster used on SMART-1.
type PPS1350 struct{}

// Thrust implements the Thruster interface.
func (t *PPS1350) Thrust() (thrust, isp float64) {
	return 89e-6, 1650
}

// HERMeS is based on the NASA & Rocketdyne 12.5kW demo
type HERMeS struct{}

// Thrust implements the Thruster interface.
func (t *HERMeS) Thrust() (thrust, isp float64) {
	return 680e-6, 2960
}

// NSTAR is the gridded ion engine flown on Deep Space 1 and Dawn (full power point).
type NSTAR struct{}

// Thrust implements the Thruster interface.
func (t *NSTAR) Thrust() (thrust, isp float64) {
	return 92e-6, 3100
}

// NEXIS is the JPL high Isp ion engine. These are the values of the default Earth to Mars scenario.
type NEXIS struct{}

// Thrust implements the Thruster interface.
func (t *NEXIS) Thrust() (thrust, isp float64) {
	return 450e-6, 9000
}

// VASIMR is an approximation of the VX-200.
type VASIMR struct{}

// Thrust implements the Thruster interface.
func (t *VASIMR) Thrust() (thrust, isp float64) {
	return 5e-3, 5000
}

// GenericEP is a generic EP thruster.
type GenericEP struct {
	thrust float64
	isp    float64
}

// Thrust implements the Thruster interface.
func (t *GenericEP) Thrust() (thrust, isp float64) {
	return t.thrust, t.isp
}

// NewGenericEP returns a generic electric prop thruster, thrust in kN.
func NewGenericEP(thrust, isp float64) *GenericEP {
	return &GenericEP{thrust, isp}
}

// ThrusterFromString returns the preset thruster from its name.
func ThrusterFromString(name string) (Thruster, error) {
	switch strings.ToLower(name) {
	case "pps1350":
		return new(PPS1350), nil
	case "hermes":
		return new(HERMeS), nil
	case "nstar":
		return new(NSTAR), nil
	case "nexis":
		return new(NEXIS), nil
	case "vasimr":
		return new(VASIMR), nil
	default:
		return nil, fmt.Errorf("unknown thruster '%s'", name)
	}
}
