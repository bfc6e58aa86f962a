package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

type Vec2 f32.Vec2

// Define a 2 component vector.
func XY(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Subtract a vector.
func (v Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v[0] - v2[0], v[1] - v2[1]}
}

// A 3 component double precision vector. Scene coordinates span 2^26 units
// so the camera and frustum math cannot afford float32 mantissas.
type DVec3 [3]float64

// Define a 3 component double precision vector.
func XYZ(x, y, z float64) DVec3 {
	return DVec3{x, y, z}
}

// Add a vector.
func (v DVec3) Add(v2 DVec3) DVec3 {
	return DVec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v DVec3) Sub(v2 DVec3) DVec3 {
	return DVec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply vector with a scalar.
func (v DVec3) Mul(s float64) DVec3 {
	return DVec3{v[0] * s, v[1] * s, v[2] * s}
}

// Calculate dot product of 2 vectors.
func (v DVec3) Dot(v2 DVec3) float64 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v DVec3) Cross(v2 DVec3) DVec3 {
	return DVec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Get vector length.
func (v DVec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize vector.
func (v DVec3) Normalize() DVec3 {
	l := v.Len()
	if l == 0 {
		return DVec3{}
	}
	return v.Mul(1.0 / l)
}
