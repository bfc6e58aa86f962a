package tracer

import (
	"testing"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer/occlusion"
	"github.com/achilleasa/mizar/types"
)

// Each face's world axis direction must map onto the canonical +z axis of
// the face-local frame.
func TestFaceNormalPermutations(t *testing.T) {
	axes := map[Face]types.DVec3{
		FaceYPos: {0, 1, 0},
		FaceZPos: {0, 0, 1},
		FaceXPos: {1, 0, 0},
		FaceZNeg: {0, 0, -1},
		FaceXNeg: {-1, 0, 0},
		FaceYNeg: {0, -1, 0},
	}

	for face, axis := range axes {
		out := face.Normals([4]types.DVec3{axis, axis, axis, axis})
		if want := (types.DVec3{0, 0, 1}); out[0] != want {
			t.Fatalf("face %s: expected axis %v to map to %v; got %v", face, axis, want, out[0])
		}
	}
}

func TestFaceProject(t *testing.T) {
	px, py, pz := int64(10), int64(20), int64(30)

	x, y, q := FaceZPos.Project(px, py, pz)
	if x != 10 || y != 20 || q != one-30 {
		t.Fatalf("expected z+ projection (10, 20, %d); got (%d, %d, %d)", int64(one-30), x, y, q)
	}

	x, y, q = FaceYNeg.Project(px, py, pz)
	if x != 10 || y != 30 || q != one+20 {
		t.Fatalf("expected y- projection (10, 30, %d); got (%d, %d, %d)", int64(one+20), x, y, q)
	}

	x, y, q = FaceXPos.Project(px, py, pz)
	if x != -30 || y != 20 || q != one-10 {
		t.Fatalf("expected x+ projection (-30, 20, %d); got (%d, %d, %d)", int64(one-10), x, y, q)
	}
}

func TestFaceRenderEmptyScene(t *testing.T) {
	mask := buildFaceMask(t, FaceZPos)
	mask.Clear(testBackground)

	FaceZPos.Render(scene.EmptyTree(), mask, 0, 0, one)

	for y := 0; y < occlusion.Size; y += 7 {
		for x := 0; x < occlusion.Size; x += 7 {
			if got := mask.At(x, y); got != testBackground {
				t.Fatalf("expected pixel (%d, %d) to keep the background color; got %#x", x, y, got)
			}
		}
	}
	if !mask.RootOpen() {
		t.Fatalf("expected mask to stay open when nothing is painted")
	}
}

// A single top-level solid color spanning the whole frustum must paint the
// entire face in one traversal and close the mask root. The camera sits at
// the exact octant boundary, exercising the skip-nearest-cube rule while
// stepping through solid leaves.
func TestFaceRenderSolidScene(t *testing.T) {
	mask := buildFaceMask(t, FaceZPos)
	mask.Clear(testBackground)

	FaceZPos.Render(solidTree(0x336699), mask, 0, 0, one)

	for y := 0; y < occlusion.Size; y++ {
		for x := 0; x < occlusion.Size; x++ {
			if got := mask.At(x, y); got != 0x336699 {
				t.Fatalf("expected pixel (%d, %d) to be painted 0x336699; got %#x", x, y, got)
			}
		}
	}
	if mask.RootOpen() {
		t.Fatalf("expected mask root to close after a full-frustum paint")
	}
}

// Two voxels stacked along the face's depth axis: the nearer voxel must
// claim every pixel of the shared column and the farther one may not paint
// at all.
func TestFaceRenderNearestVoxelWins(t *testing.T) {
	voxels := []scene.Voxel{
		{X: 4, Y: 4, Z: 4, Color: 0x00ff00},
		{X: 4, Y: 4, Z: 6, Color: 0xff0000},
	}
	tree, err := scene.Build(voxels, 3)
	if err != nil {
		t.Fatalf("expected build to succeed; got %v", err)
	}

	mask := buildFaceMask(t, FaceZPos)
	mask.Clear(testBackground)

	x, y, q := FaceZPos.Project(0, 0, 0)
	FaceZPos.Render(tree, mask, x, y, q)

	green, red := 0, 0
	for _, p := range mask.Pix() {
		switch p {
		case 0x00ff00:
			green++
		case 0xff0000:
			red++
		}
	}
	if green == 0 {
		t.Fatalf("expected the near voxel to be painted")
	}
	if red != 0 {
		t.Fatalf("expected the far voxel to be fully occluded; got %d pixels", red)
	}
}

// Rendering the same symmetric scene must paint every face identically
// modulo the axis permutation: with the camera at the center of a solid
// scene each face is a uniform full-face paint.
func TestSixFaceConsistency(t *testing.T) {
	tree := solidTree(0x112233)

	for face := Face(0); face < NumFaces; face++ {
		mask := buildFaceMask(t, face)
		mask.Clear(testBackground)

		x, y, q := face.Project(0, 0, 0)
		face.Render(tree, mask, x, y, q)

		painted := 0
		for _, p := range mask.Pix() {
			if p == 0x112233 {
				painted++
			}
		}
		if painted != occlusion.Size*occlusion.Size {
			t.Fatalf("face %s: expected %d painted pixels; got %d", face, occlusion.Size*occlusion.Size, painted)
		}
	}
}

func TestFaceRenderIdempotent(t *testing.T) {
	voxels := []scene.Voxel{
		{X: 2, Y: 2, Z: 3, Color: 0xff0000},
		{X: 1, Y: 3, Z: 2, Color: 0x00ff00},
	}
	tree, err := scene.Build(voxels, 2)
	if err != nil {
		t.Fatalf("expected build to succeed; got %v", err)
	}

	render := func() []uint32 {
		mask := buildFaceMask(t, FaceZPos)
		mask.Clear(testBackground)
		FaceZPos.Render(tree, mask, 0, 0, one)
		out := make([]uint32, len(mask.Pix()))
		copy(out, mask.Pix())
		return out
	}

	first, second := render(), render()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical frames; pixel %d differs (%#x vs %#x)", i, first[i], second[i])
		}
	}
}

// buildFaceMask builds a mask whose view pyramid covers the given face
// completely, as seen by a camera at the scene center with the default
// frustum aimed at the face.
func buildFaceMask(t *testing.T, face Face) *occlusion.Mask {
	t.Helper()
	// A 90 degree pyramid in face-local coordinates covering the full face.
	mask := occlusion.NewMask()
	mask.Build([4]types.DVec3{{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1}})
	if !mask.RootOpen() {
		t.Fatalf("expected a face-covering pyramid to open the mask")
	}
	return mask
}
