package spiral

import (
	"fmt"
	"io"
	"time"
)

// Result is the outcome of a propagation.
type Result struct {
	Reached        bool    // whether the target radius was reached
	FinalRadius    float64 // km
	FinalMass      float64 // kg
	Elapsed        float64 // seconds
	Steps          uint64
	Arrival        time.Time // zero if no epoch was configured
	PropellantUsed float64   // kg
	DeltaV         float64   // km/s, from the rocket equation
	Final          Orbit     // osculating orbit at termination
	Trajectory     *Trajectory
}

// Years returns the travel time in years.
func (r *Result) Years() float64 {
	return r.Elapsed / SecondsPerYear
}

// WriteSummary writes the human readable summary of the propagation.
func (r *Result) WriteSummary(w io.Writer, target string) error {
	reached := "No"
	if r.Reached {
		reached = "Yes"
	}
	summary := fmt.Sprintf("Reached %s: %s\nFinal radius: %g km\nFinal mass: %g kg\nTravel time: %g years\n", target, reached, r.FinalRadius, r.FinalMass, r.Years())
	summary += fmt.Sprintf("Propellant used: %.3f kg\nDelta-v: %.4f km/s\nSteps: %d\n", r.PropellantUsed, r.DeltaV, r.Steps)
	if !r.Arrival.IsZero() {
		summary += fmt.Sprintf("Arrival (UTC): %s\n", r.Arrival.UTC().Format(time.RFC3339))
	}
	summary += fmt.Sprintf("Final orbit: %s\n", r.Final)
	_, err := io.WriteString(w, summary)
	return err
}
