package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/mizar/types"
)

func TestOrientationIsOrthogonal(t *testing.T) {
	c := NewCamera()
	c.Yaw = 0.8
	c.Pitch = -0.3

	o := c.Orientation()
	identity := o.Mul3(o.Transpose())
	want := types.Ident3()
	for i := 0; i < 9; i++ {
		if math.Abs(identity[i]-want[i]) > 1e-12 {
			t.Fatalf("expected orientation times its transpose to be the identity; got %v", identity)
		}
	}
}

func TestNormalsForIdentityCamera(t *testing.T) {
	normals := NewCamera().Normals()
	want := [4]types.DVec3{{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1}}
	for i := range normals {
		for axis := 0; axis < 3; axis++ {
			if math.Abs(normals[i][axis]-want[i][axis]) > 1e-12 {
				t.Fatalf("expected normal %d to be %v; got %v", i, want[i], normals[i])
			}
		}
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera()
	c.Move(Forward, 10)
	c.Move(Right, 4)
	c.Move(Backward, 3)

	want := types.DVec3{4, 0, 7}
	for axis := 0; axis < 3; axis++ {
		if math.Abs(c.Position[axis]-want[axis]) > 1e-12 {
			t.Fatalf("expected camera at %v; got %v", want, c.Position)
		}
	}
}

func TestFrustumSquare(t *testing.T) {
	if !DefaultFrustum().Square() {
		t.Fatalf("expected the default frustum to be square")
	}
	f := DefaultFrustum()
	f.Top = 0.5
	if f.Square() {
		t.Fatalf("expected a squashed frustum to report not square")
	}
}
