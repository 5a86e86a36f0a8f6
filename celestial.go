package spiral

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// CelestialObject defines the central body of a transfer.
// Only its gravitational parameter matters to the dynamics; the radius is used to flag collisions.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	a      float64 // heliocentric semi-major axis (km), -1 for the Sun
	μ      float64 // km^3/s^2
}

// NewCelestialObject returns a custom central body.
func NewCelestialObject(name string, radius, μ float64) CelestialObject {
	return CelestialObject{name, radius, -1, μ}
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// SemiMajorAxis returns the heliocentric semi-major axis of this object, which is also
// the radius of the circular orbit used to represent it as a transfer endpoint.
func (c CelestialObject) SemiMajorAxis() (float64, error) {
	if c.a <= 0 {
		return 0, fmt.Errorf("%s has no heliocentric orbit", c.Name)
	}
	return c.a, nil
}

// WithGM returns a copy of the object with another gravitational parameter.
func (c CelestialObject) WithGM(μ float64) CelestialObject {
	c.μ = μ
	return c
}

// Validate returns an error if the object cannot attract anything.
func (c CelestialObject) Validate() error {
	if c.μ <= 0 {
		return invalidf("%s gravitational parameter must be positive (got %g)", c.Name, c.μ)
	}
	return nil
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, -1, 1.32712440017987e11}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 108208601, 3.24858599e5}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 149598023, 3.98600433e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 227939282.5616, 4.28283100e4}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 778298361, 1.266865361e8}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", 60268.0, 1429394133, 3.7931208e7}
