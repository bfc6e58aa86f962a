package types

import "math"

// A row-major 3x3 double precision matrix.
type Mat3 [9]float64

// Create identity matrix.
func Ident3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Build a matrix from three rows.
func Mat3FromRows(r0, r1, r2 DVec3) Mat3 {
	return Mat3{
		r0[0], r0[1], r0[2],
		r1[0], r1[1], r1[2],
		r2[0], r2[1], r2[2],
	}
}

// Get matrix row.
func (m Mat3) Row(r int) DVec3 {
	return DVec3{m[r*3], m[r*3+1], m[r*3+2]}
}

// Multiply matrix with a vector.
func (m Mat3) MulVec(v DVec3) DVec3 {
	return DVec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Multiply two matrices.
func (m Mat3) Mul3(m2 Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*m2[c] + m[r*3+1]*m2[3+c] + m[r*3+2]*m2[6+c]
		}
	}
	return out
}

// Transpose the matrix. For orthogonal matrices this is also the inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Create a rotation matrix around the X axis.
func RotX3(angle float64) Mat3 {
	sin, cos := math.Sincos(angle)
	return Mat3{
		1, 0, 0,
		0, cos, -sin,
		0, sin, cos,
	}
}

// Create a rotation matrix around the Y axis.
func RotY3(angle float64) Mat3 {
	sin, cos := math.Sincos(angle)
	return Mat3{
		cos, 0, sin,
		0, 1, 0,
		-sin, 0, cos,
	}
}
