package spiral

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/spf13/viper"
)

func scenarioFromTOML(t *testing.T, toml string) (*Scenario, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(toml)); err != nil {
		t.Fatalf("invalid TOML: %s", err)
	}
	return ScenarioFromViper(v)
}

func TestScenarioDefaults(t *testing.T) {
	s, err := scenarioFromTOML(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Body.Name != "Sun" || s.Body.GM() != ScenarioSunGM {
		t.Fatalf("unexpected central body %s", s.Body)
	}
	if s.Transfer.InitialRadius != 1.496e8 {
		t.Fatalf("initial radius %f", s.Transfer.InitialRadius)
	}
	if !floats.EqualWithinRel(s.Transfer.TargetRadius, 1.52*1.496e8, 1e-15) {
		t.Fatalf("target radius %f", s.Transfer.TargetRadius)
	}
	if s.Transfer.Step != 50*time.Second || s.Transfer.Scheme != SemiImplicitEuler {
		t.Fatalf("unexpected stepping %s with %s", s.Transfer.Step, s.Transfer.Scheme)
	}
	if s.Transfer.MaxSteps != 0 || s.Transfer.MaxDuration != 0 || !s.Transfer.Epoch.IsZero() {
		t.Fatalf("unexpected limits %+v", s.Transfer)
	}
	expThrust, expIsp := new(NEXIS).Thrust()
	if s.Vehicle.WetMass != 10000 || s.Vehicle.DryMass != 0 || s.Vehicle.Prop.Thrust != expThrust || s.Vehicle.Prop.Isp != expIsp {
		t.Fatalf("unexpected vehicle %s", s.Vehicle)
	}
	if s.Vehicle.Depletion != CoastOnDepletion {
		t.Fatalf("unexpected depletion policy %s", s.Vehicle.Depletion)
	}
	if s.Target != "Mars" {
		t.Fatalf("unexpected target %s", s.Target)
	}
	if !s.Export.CSV || s.Export.Cosmo || s.Export.Time || s.Export.Filename != "trajectory" || s.Export.Every != 1 {
		t.Fatalf("unexpected export %+v", s.Export)
	}
	// plotter.py reads trajectory.csv from the working directory.
	if path := s.Export.path("", "csv"); path != "trajectory.csv" {
		t.Fatalf("default CSV written to %s", path)
	}
}

func TestScenarioPlanets(t *testing.T) {
	s, err := scenarioFromTOML(t, `
[mission]
name = "venus-jupiter"
scheme = "rk4"
step = 10
maxSteps = 1000000
maxDuration = "87600h"

[orbit]
from = "venus"
to = "jupiter"

[spacecraft]
thruster = "hermes"
mass = 5000
dry = 1500
depletion = "stop"
`)
	if err != nil {
		t.Fatal(err)
	}
	if s.Transfer.InitialRadius != Venus.a || s.Transfer.TargetRadius != Jupiter.a {
		t.Fatalf("unexpected geometry %f -> %f", s.Transfer.InitialRadius, s.Transfer.TargetRadius)
	}
	if s.Target != "Jupiter" {
		t.Fatalf("unexpected target %s", s.Target)
	}
	if s.Transfer.Step != 10*time.Second || s.Transfer.Scheme != RungeKutta4 {
		t.Fatalf("unexpected stepping %s with %s", s.Transfer.Step, s.Transfer.Scheme)
	}
	if s.Transfer.MaxSteps != 1000000 || s.Transfer.MaxDuration != 10*365*24*time.Hour {
		t.Fatalf("unexpected limits %d %s", s.Transfer.MaxSteps, s.Transfer.MaxDuration)
	}
	if s.Vehicle.Name != "venus-jupiter" || s.Vehicle.DryMass != 1500 || s.Vehicle.Depletion != StopOnDepletion {
		t.Fatalf("unexpected vehicle %s", s.Vehicle)
	}
	if thrust, _ := new(HERMeS).Thrust(); s.Vehicle.Prop.Thrust != thrust {
		t.Fatalf("unexpected thrust %f", s.Vehicle.Prop.Thrust)
	}
}

func TestScenarioOverrides(t *testing.T) {
	s, err := scenarioFromTOML(t, `
[mission]
epoch = 2458239.5

[body]
name = "earth"
mu = 398600

[orbit]
initial = 7000
target = 42164
targetName = "GEO"

[spacecraft]
thrust = 0.001
isp = 2000

[export]
filename = "geo"
time = true
every = 100
`)
	if err != nil {
		t.Fatal(err)
	}
	if s.Body.Name != "Earth" || s.Body.GM() != 398600 {
		t.Fatalf("unexpected central body %s", s.Body)
	}
	if s.Transfer.InitialRadius != 7000 || s.Transfer.TargetRadius != 42164 || s.Target != "GEO" {
		t.Fatalf("unexpected geometry %+v", s.Transfer)
	}
	if s.Vehicle.Prop.Thrust != 0.001 || s.Vehicle.Prop.Isp != 2000 {
		t.Fatalf("unexpected propulsion %s", s.Vehicle.Prop)
	}
	if dt := s.Transfer.Epoch.Sub(time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)); dt > time.Millisecond || dt < -time.Millisecond {
		t.Fatalf("unexpected epoch %s", s.Transfer.Epoch)
	}
	if s.Export.Filename != "geo" || !s.Export.Time || s.Export.Every != 100 {
		t.Fatalf("unexpected export %+v", s.Export)
	}
}

func TestScenarioEpochDate(t *testing.T) {
	for _, epoch := range []string{`"2018-05-01"`, `"2018-05-01 00:00:00"`, `"2018-05-01T00:00:00Z"`} {
		s, err := scenarioFromTOML(t, "[mission]\nepoch = "+epoch+"\n")
		if err != nil {
			t.Fatalf("%s: %s", epoch, err)
		}
		if !s.Transfer.Epoch.Equal(time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("%s: unexpected epoch %s", epoch, s.Transfer.Epoch)
		}
	}
}

func TestScenarioErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		exp  error
	}{
		{"unknown body", "[body]\nname = \"pluto\"\n", nil},
		{"unknown thruster", "[spacecraft]\nthruster = \"warp\"\n", nil},
		{"unknown scheme", "[mission]\nscheme = \"leapfrog\"\n", nil},
		{"unknown policy", "[spacecraft]\ndepletion = \"explode\"\n", nil},
		{"bad step", "[mission]\nstep = \"fast\"\n", nil},
		{"inward", "[orbit]\nfrom = \"mars\"\nto = \"earth\"\n", ErrInwardTransfer},
		{"same radius", "[orbit]\ntargetRatio = 1\n", ErrInwardTransfer},
		{"negative steps", "[mission]\nmaxSteps = -1\n", ErrInvalidParameter},
		{"negative every", "[export]\nevery = -2\n", ErrInvalidParameter},
		{"zero step", "[mission]\nstep = \"0s\"\n", ErrInvalidParameter},
		{"no fuel", "[spacecraft]\nmass = 100\ndry = 100\n", ErrInvalidParameter},
	} {
		_, err := scenarioFromTOML(t, tc.toml)
		if err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
		if tc.exp != nil && !errors.Is(err, tc.exp) {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.exp, err)
		}
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leo.toml")
	if err := os.WriteFile(path, []byte("[body]\nname = \"Earth\"\n[orbit]\ninitial = 7000\ntarget = 7100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Body.Name != "Earth" || s.Transfer.TargetRadius != 7100 {
		t.Fatalf("unexpected scenario %+v", s.Transfer)
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadEarthMarsScenario(t *testing.T) {
	s, err := LoadScenario("scenarios/earth-mars.toml")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "earth-mars" || s.Body.GM() != 1.327e11 || s.Transfer.MaxDuration != 10*365*24*time.Hour {
		t.Fatalf("unexpected scenario %s %+v", s.Name, s.Transfer)
	}
	if !s.Transfer.Epoch.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)) || s.Export.Every != 100 {
		t.Fatalf("unexpected epoch %s or decimation %d", s.Transfer.Epoch, s.Export.Every)
	}
}
