package spiral

import (
	"errors"
	"testing"
)

func TestCelestialObjectFromString(t *testing.T) {
	for _, body := range []CelestialObject{Sun, Venus, Earth, Mars, Jupiter, Saturn} {
		obj, err := CelestialObjectFromString(body.Name)
		if err != nil {
			t.Fatalf("%s: %s", body.Name, err)
		}
		if !obj.Equals(body) {
			t.Fatalf("%s != %s", obj, body)
		}
		if err := obj.Validate(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := CelestialObjectFromString("Vesta"); err == nil {
		t.Fatal("Vesta is not supported")
	}
}

func TestCelestialObjectSMA(t *testing.T) {
	if _, err := Sun.SemiMajorAxis(); err == nil {
		t.Fatal("the Sun has no heliocentric orbit")
	}
	a, err := Mars.SemiMajorAxis()
	if err != nil {
		t.Fatal(err)
	}
	if a < 1.5*AU || a > 1.55*AU {
		t.Fatalf("Mars is at %f AU", a/AU)
	}
}

func TestCelestialObjectGM(t *testing.T) {
	sun := Sun.WithGM(ScenarioSunGM)
	if sun.GM() != ScenarioSunGM || Sun.GM() == ScenarioSunGM {
		t.Fatal("WithGM must return a modified copy")
	}
	if sun.Equals(Sun) {
		t.Fatal("objects with different μ are equal")
	}
	if err := NewCelestialObject("Void", 1, 0).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero μ should be invalid, got %v", err)
	}
}
