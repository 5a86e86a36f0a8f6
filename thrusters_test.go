package spiral

import (
	"testing"
)

func TestThrusterPresets(t *testing.T) {
	for _, name := range []string{"pps1350", "HERMeS", "nstar", "NEXIS", "vasimr"} {
		thruster, err := ThrusterFromString(name)
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		thrust, isp := thruster.Thrust()
		if thrust <= 0 || isp <= 0 {
			t.Fatalf("%s: invalid thrust %f or isp %f", name, thrust, isp)
		}
		if thrust > 1e-2 {
			t.Fatalf("%s: thrust %f is not in kN", name, thrust)
		}
	}
	if _, err := ThrusterFromString("warp"); err == nil {
		t.Fatal("unknown thruster did not fail")
	}
}

func TestTHNEXIS(t *testing.T) {
	thrust, isp := new(NEXIS).Thrust()
	if thrust != 450e-6 || isp != 9000 {
		t.Fatalf("NEXIS preset changed: %g kN %g s", thrust, isp)
	}
}

func TestTHGenericEP(t *testing.T) {
	thrust, isp := 1., 2.
	thruster := NewGenericEP(thrust, isp)
	thrust0, isp0 := thruster.Thrust()
	thrust1, isp1 := thruster.Thrust()
	if thrust != thrust0 || thrust != thrust1 {
		t.Fatal("invalid thrust returned")
	}
	if isp != isp0 || isp != isp1 {
		t.Fatal("invalid isp returned")
	}
}
