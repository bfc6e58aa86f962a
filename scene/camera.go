package scene

import (
	"fmt"

	"github.com/achilleasa/mizar/types"
)

// The four half-plane parameters of the view pyramid plus the near plane
// distance. A direction v lies inside the pyramid when
// Near*v.x is within [Left*v.z, Right*v.z] and Near*v.y within
// [Bottom*v.z, Top*v.z].
type Frustum struct {
	Near   float64
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultFrustum returns the 90 degree square pyramid used by the cubemap
// render path.
func DefaultFrustum() Frustum {
	return Frustum{Near: 1, Left: -1, Right: 1, Top: 1, Bottom: -1}
}

// Square reports whether the pyramid cross-section is square. The bound
// vector arithmetic relies on this to share its depth footprint between the
// x and y axes.
func (f Frustum) Square() bool {
	return f.Right-f.Left == f.Top-f.Bottom
}

func (f Frustum) String() string {
	return fmt.Sprintf("near %.3f, x [%.3f, %.3f], y [%.3f, %.3f]", f.Near, f.Left, f.Right, f.Bottom, f.Top)
}

type CameraDirection uint8

const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

// The camera type controls the scene camera. Position is kept in double
// precision: scene coordinates span 2^26 units and are rounded to integers
// when a traversal starts.
type Camera struct {
	Position types.DVec3
	Yaw      float64
	Pitch    float64

	Frustum Frustum
}

func NewCamera() *Camera {
	return &Camera{
		Position: types.DVec3{0, 0, 0},
		Frustum:  DefaultFrustum(),
	}
}

// Orientation returns the world-to-camera rotation matrix. The matrix is
// orthogonal; its inverse is its transpose.
func (c *Camera) Orientation() types.Mat3 {
	return types.RotY3(c.Yaw).Mul3(types.RotX3(c.Pitch)).Transpose()
}

// Normals returns the inward-facing normals of the 4 view pyramid planes in
// world space.
func (c *Camera) Normals() [4]types.DVec3 {
	inv := c.Orientation().Transpose()
	fr := c.Frustum
	return [4]types.DVec3{
		inv.MulVec(types.DVec3{fr.Near, 0, -fr.Left}),
		inv.MulVec(types.DVec3{-fr.Near, 0, fr.Right}),
		inv.MulVec(types.DVec3{0, fr.Near, -fr.Bottom}),
		inv.MulVec(types.DVec3{0, -fr.Near, fr.Top}),
	}
}

// Move the camera along its local axes.
func (c *Camera) Move(dir CameraDirection, amount float64) {
	camToWorld := c.Orientation().Transpose()
	forward := camToWorld.MulVec(types.DVec3{0, 0, 1})
	right := camToWorld.MulVec(types.DVec3{1, 0, 0})

	switch dir {
	case Forward:
		c.Position = c.Position.Add(forward.Mul(amount))
	case Backward:
		c.Position = c.Position.Sub(forward.Mul(amount))
	case Left:
		c.Position = c.Position.Sub(right.Mul(amount))
	case Right:
		c.Position = c.Position.Add(right.Mul(amount))
	}
}
