package spiral

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Vector2 is an immutable two dimensional vector. Every operation returns a new value.
type Vector2 struct {
	X, Y float64
}

// NewVector2 returns a new vector from its components.
func NewVector2(x, y float64) Vector2 {
	return Vector2{x, y}
}

// Add returns v+b.
func (v Vector2) Add(b Vector2) Vector2 {
	return Vector2{v.X + b.X, v.Y + b.Y}
}

// Sub returns v-b.
func (v Vector2) Sub(b Vector2) Vector2 {
	return Vector2{v.X - b.X, v.Y - b.Y}
}

// Scale returns v*k.
func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{v.X * k, v.Y * k}
}

// Scale returns k*v, i.e. the scalar on the left hand side.
func Scale(k float64, v Vector2) Vector2 {
	return Vector2{k * v.X, k * v.Y}
}

// Div returns v/k, or ErrDivisionByZero if k is zero (whatever v is).
func (v Vector2) Div(k float64) (Vector2, error) {
	if k == 0 {
		return Vector2{}, ErrDivisionByZero
	}
	return Vector2{v.X / k, v.Y / k}, nil
}

// Norm returns the Euclidean norm of the vector.
func (v Vector2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Unit returns the unit vector. The zero vector has no direction and fails with ErrDivisionByZero.
func (v Vector2) Unit() (Vector2, error) {
	return v.Div(v.Norm())
}

// Cross returns the z component of the cross product of v and b (both in the xy plane).
func (v Vector2) Cross(b Vector2) float64 {
	return v.X*b.Y - v.Y*b.X
}

// Slice returns the components as a new slice.
func (v Vector2) Slice() []float64 {
	return []float64{v.X, v.Y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%f, %f)", v.X, v.Y)
}

// Dot performs the inner product via mat64/BLAS.
func Dot(a, b Vector2) float64 {
	return mat64.Dot(mat64.NewVector(2, a.Slice()), mat64.NewVector(2, b.Slice()))
}
