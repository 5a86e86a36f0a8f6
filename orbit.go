package spiral

import (
	"fmt"
	"math"
)

// Orbit is the osculating two body orbit of a planar state.
type Orbit struct {
	R, V   Vector2
	Origin CelestialObject
}

// NewOrbitFromRV returns the osculating orbit of the provided position and velocity.
func NewOrbitFromRV(R, V Vector2, c CelestialObject) Orbit {
	return Orbit{R, V, c}
}

// NewCircularOrbit returns the prograde circular orbit of radius r, starting on the +x axis.
func NewCircularOrbit(r float64, c CelestialObject) Orbit {
	return Orbit{Vector2{r, 0}, Vector2{0, math.Sqrt(c.μ / r)}, c}
}

// RNorm returns the norm of the radius vector.
func (o Orbit) RNorm() float64 {
	return o.R.Norm()
}

// VNorm returns the norm of the velocity vector.
func (o Orbit) VNorm() float64 {
	return o.V.Norm()
}

// Energyξ returns the specific mechanical energy ½|v|² − μ/|r|.
func (o Orbit) Energyξ() float64 {
	v := o.VNorm()
	return v*v/2 - o.Origin.μ/o.RNorm()
}

// SemiMajorAxis returns a, which is negative for hyperbolic orbits.
func (o Orbit) SemiMajorAxis() float64 {
	return -o.Origin.μ / (2 * o.Energyξ())
}

// H returns the specific angular momentum (positive when prograde).
func (o Orbit) H() float64 {
	return o.R.Cross(o.V)
}

// EccentricityVector returns ((v²−μ/r)R − (R·V)V)/μ.
func (o Orbit) EccentricityVector() Vector2 {
	v := o.VNorm()
	μ := o.Origin.μ
	return o.R.Scale((v*v-μ/o.RNorm())/μ).Sub(o.V.Scale(Dot(o.R, o.V) / μ))
}

// Eccentricity returns the norm of the eccentricity vector.
func (o Orbit) Eccentricity() float64 {
	return o.EccentricityVector().Norm()
}

// Period returns the orbital period in seconds, or +Inf if the orbit is open.
func (o Orbit) Period() float64 {
	a := o.SemiMajorAxis()
	if a <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(a*a*a/o.Origin.μ)
}

// String implements the Stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("r=%.1f v=%.4f a=%.1f e=%.4f ξ=%.6f", o.RNorm(), o.VNorm(), o.SemiMajorAxis(), o.Eccentricity(), o.Energyξ())
}
