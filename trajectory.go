package spiral

import (
	"math"

	"github.com/gonum/floats"
)

// Sample is one accepted integration point.
type Sample struct {
	T float64 // elapsed seconds
	R Vector2 // km
	V Vector2 // km/s
	M float64 // kg
}

// Radius returns the distance to the central body.
func (s Sample) Radius() float64 {
	return s.R.Norm()
}

// Trajectory is the ordered, append-only history of a propagation, starting with the initial position.
// It is sealed, i.e. read-only, once the propagation terminates.
type Trajectory struct {
	samples []Sample
	sealed  bool
}

func (tr *Trajectory) append(s Sample) {
	if tr.sealed {
		panic("cannot append to a sealed trajectory")
	}
	tr.samples = append(tr.samples, s)
}

func (tr *Trajectory) seal() {
	tr.sealed = true
}

// Sealed returns whether the propagation which owns this trajectory has terminated.
func (tr *Trajectory) Sealed() bool {
	return tr.sealed
}

// Len returns the number of samples.
func (tr *Trajectory) Len() int {
	return len(tr.samples)
}

// At returns the i-th sample.
func (tr *Trajectory) At(i int) Sample {
	return tr.samples[i]
}

// Last returns the latest sample.
func (tr *Trajectory) Last() Sample {
	return tr.samples[len(tr.samples)-1]
}

// Samples returns a copy of all the samples.
func (tr *Trajectory) Samples() []Sample {
	cpy := make([]Sample, len(tr.samples))
	copy(cpy, tr.samples)
	return cpy
}

// Every returns every n-th sample, always including the last one.
func (tr *Trajectory) Every(n int) []Sample {
	if n <= 1 {
		return tr.Samples()
	}
	var rslt []Sample
	for i := 0; i < len(tr.samples); i += n {
		rslt = append(rslt, tr.samples[i])
	}
	if last := len(tr.samples) - 1; last%n != 0 {
		rslt = append(rslt, tr.samples[last])
	}
	return rslt
}

// Masses returns the mass at each sample.
func (tr *Trajectory) Masses() []float64 {
	masses := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		masses[i] = s.M
	}
	return masses
}

// Radii returns the radius of each sample.
func (tr *Trajectory) Radii() []float64 {
	radii := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		radii[i] = s.Radius()
	}
	return radii
}

// RadiusBounds returns the minimum and maximum radius reached.
func (tr *Trajectory) RadiusBounds() (min, max float64) {
	if len(tr.samples) == 0 {
		return math.NaN(), math.NaN()
	}
	radii := tr.Radii()
	return floats.Min(radii), floats.Max(radii)
}
