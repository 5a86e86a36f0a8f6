package spiral

import (
	"testing"

	"github.com/gonum/floats"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b Vector2, tol float64) bool {
	return floats.EqualWithinAbs(a.X, b.X, tol) && floats.EqualWithinAbs(a.Y, b.Y, tol)
}
