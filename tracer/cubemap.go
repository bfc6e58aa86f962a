package tracer

import (
	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer/occlusion"
	"github.com/achilleasa/mizar/types"
)

// Half-size of the scene cube, doubling as the fixed-point unit of the
// specialized traverser's screen coordinates.
const one = scene.Size

// Face identifies one of the six cubemap render targets. The ordering
// matches the order in which the face driver visits them.
type Face int

const (
	FaceYPos Face = iota
	FaceZPos
	FaceXPos
	FaceZNeg
	FaceXNeg
	FaceYNeg

	NumFaces = 6
)

func (f Face) String() string {
	switch f {
	case FaceYPos:
		return "y+"
	case FaceZPos:
		return "z+"
	case FaceXPos:
		return "x+"
	case FaceZNeg:
		return "z-"
	case FaceXNeg:
		return "x-"
	case FaceYNeg:
		return "y-"
	}
	return "??"
}

// Per-face axis mapping: c is the octant nearest the face along all three
// local axes and ax/ay/az are the octant bits corresponding to the face's
// local x, y and depth directions.
type faceParams struct {
	c, ax, ay, az uint8
}

var faceTable = [NumFaces]faceParams{
	FaceYPos: {c: 1, ax: 4, ay: 1, az: 2},
	FaceZPos: {c: 0, ax: 4, ay: 2, az: 1},
	FaceXPos: {c: 1, ax: 1, ay: 2, az: 4},
	FaceZNeg: {c: 5, ax: 4, ay: 2, az: 1},
	FaceXNeg: {c: 4, ax: 1, ay: 2, az: 4},
	FaceYNeg: {c: 2, ax: 4, ay: 1, az: 2},
}

// Normals permutes the camera's view pyramid normals into this face's local
// axis convention.
func (f Face) Normals(normals [4]types.DVec3) [4]types.DVec3 {
	var out [4]types.DVec3
	for i, v := range normals {
		switch f {
		case FaceYPos:
			out[i] = types.DVec3{v[0], -v[2], v[1]}
		case FaceZPos:
			out[i] = v
		case FaceXPos:
			out[i] = types.DVec3{-v[2], v[1], v[0]}
		case FaceZNeg:
			out[i] = types.DVec3{-v[0], v[1], -v[2]}
		case FaceXNeg:
			out[i] = types.DVec3{v[2], v[1], -v[0]}
		case FaceYNeg:
			out[i] = types.DVec3{v[0], v[2], -v[1]}
		}
	}
	return out
}

// Project maps the camera position onto this face's local frame, returning
// the eye's projection on the face plane and the distance between the eye
// and the scene boundary the face looks at.
func (f Face) Project(x, y, z int64) (fx, fy, q int64) {
	switch f {
	case FaceYPos:
		return x, -z, one - y
	case FaceZPos:
		return x, y, one - z
	case FaceXPos:
		return -z, y, one - x
	case FaceZNeg:
		return -x, y, one + z
	case FaceXNeg:
		return z, y, one + x
	case FaceYNeg:
		return x, z, one + y
	}
	return 0, 0, 0
}

// Render traverses the octree into the open cells of the mask for this
// face. (x, y) is the eye's projection on the face plane and q its distance
// to the matching scene boundary, both in scene units. Each screen quadrant
// runs an independent sub-traversal with the sign parity of its local axes
// baked into the coordinate arithmetic.
func (f Face) Render(tree *scene.Tree, mask *occlusion.Mask, x, y, q int64) {
	p := faceTable[f]
	if mask.Open(0) {
		s := &subFace{tree: tree, mask: mask, dx: -1, dy: -1, c: p.c ^ p.ax ^ p.ay, ax: p.ax, ay: p.ay, az: p.az}
		s.traverse(0, 0, 0, x-q, y-q, q, -one, -one, one)
	}
	if mask.Open(1) {
		s := &subFace{tree: tree, mask: mask, dx: 1, dy: -1, c: p.c ^ p.ay, ax: p.ax, ay: p.ay, az: p.az}
		s.traverse(1, 0, 0, x, y-q, q, 0, -one, one)
	}
	if mask.Open(2) {
		s := &subFace{tree: tree, mask: mask, dx: -1, dy: 1, c: p.c ^ p.ax, ax: p.ax, ay: p.ay, az: p.az}
		s.traverse(2, 0, 0, x-q, y, q, -one, 0, one)
	}
	if mask.Open(3) {
		s := &subFace{tree: tree, mask: mask, dx: 1, dy: 1, c: p.c, ax: p.ax, ay: p.ay, az: p.az}
		s.traverse(3, 0, 0, x, y, q, 0, 0, one)
	}
}

// subFace renders one screen quadrant of one cubemap face. dx/dy carry the
// sign convention of the quadrant's local axes (+1 or -1) and c names the
// octant nearest the camera; XOR-ing it with the axis bits enumerates the
// children nearest-first without any runtime sign branching.
type subFace struct {
	tree *scene.Tree
	mask *occlusion.Mask

	dx, dy        int64
	c, ax, ay, az uint8
}

// traverse renders the cube at screen position (x, y) with projective scale
// d against the open mask cell r; (xp, yp, dp) is the parent cube's
// footprint, needed for the two-sided occlusion test. Returns true once
// cell r is fully closed.
//
// The coordinate scale doubles on every octree step and halves on every
// mask step, keeping the cube's screen extent within a factor two of the
// current cell and bottoming both hierarchies out together.
func (s *subFace) traverse(
	r uint32, index uint32, color int32,
	x, y, d, xp, yp, dp int64,
) bool {
	if x+d-(1-s.dx)*(xp+dp) <= -one || one <= x-(1+s.dx)*xp {
		return false
	}
	if y+d-(1-s.dy)*(yp+dp) <= -one || one <= y-(1+s.dy)*yp {
		return false
	}

	if d <= 2*one {
		// Octree step.
		xn := (x - xp) * 2
		yn := (y - yp) * 2
		dn := (d - dp) * 2
		x *= 2
		y *= 2
		d *= 2
		if index != scene.SentinelNode {
			n := &s.tree.Nodes[index]
			if dn > 0 {
				// The four children straddling the splitting planes,
				// nearest quadrant first.
				if k := s.c; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], xn+s.dx*one, yn+s.dy*one, dn, xp, yp, dp) {
					return true
				}
				if k := s.c ^ s.ax; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], xn-s.dx*one, yn+s.dy*one, dn, xp, yp, dp) {
					return true
				}
				if k := s.c ^ s.ay; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], xn+s.dx*one, yn-s.dy*one, dn, xp, yp, dp) {
					return true
				}
				if k := s.c ^ s.ax ^ s.ay; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], xn-s.dx*one, yn-s.dy*one, dn, xp, yp, dp) {
					return true
				}
			}
			// The four children beyond the depth-axis splitting plane.
			if k := s.c ^ s.az; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], x+s.dx*one, y+s.dy*one, d, xp, yp, dp) {
				return true
			}
			if k := s.c ^ s.ax ^ s.az; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], x-s.dx*one, y+s.dy*one, d, xp, yp, dp) {
				return true
			}
			if k := s.c ^ s.ay ^ s.az; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], x+s.dx*one, y-s.dy*one, d, xp, yp, dp) {
				return true
			}
			if k := s.c ^ s.ax ^ s.ay ^ s.az; n.Colors[k] >= 0 && s.traverse(r, n.Children[k], n.Colors[k], x-s.dx*one, y-s.dy*one, d, xp, yp, dp) {
				return true
			}
		} else {
			if dn > 0 {
				// Skip the nearest cube to avoid infinite recursion.
				if s.traverse(r, scene.SentinelNode, color, xn-s.dx*one, yn+s.dy*one, dn, xp, yp, dp) {
					return true
				}
				if s.traverse(r, scene.SentinelNode, color, xn+s.dx*one, yn-s.dy*one, dn, xp, yp, dp) {
					return true
				}
				if s.traverse(r, scene.SentinelNode, color, xn-s.dx*one, yn-s.dy*one, dn, xp, yp, dp) {
					return true
				}
			}
			if s.traverse(r, scene.SentinelNode, color, x+s.dx*one, y+s.dy*one, d, xp, yp, dp) {
				return true
			}
			if s.traverse(r, scene.SentinelNode, color, x-s.dx*one, y+s.dy*one, d, xp, yp, dp) {
				return true
			}
			if s.traverse(r, scene.SentinelNode, color, x+s.dx*one, y-s.dy*one, d, xp, yp, dp) {
				return true
			}
			if s.traverse(r, scene.SentinelNode, color, x-s.dx*one, y-s.dy*one, d, xp, yp, dp) {
				return true
			}
		}
		return false
	}

	// Mask step.
	d /= 2
	dp /= 2
	xm, xmp := x+d, xp+dp
	ym, ymp := y+d, yp+dp
	cell := occlusion.ChildCell(r, 0)
	if !occlusion.IsLeaf(cell) {
		if s.mask.Open(cell) {
			s.traverse(cell, index, color, x, y, d, xp, yp, dp)
		}
		if s.mask.Open(cell + 1) {
			s.traverse(cell+1, index, color, xm, y, d, xmp, yp, dp)
		}
		if s.mask.Open(cell + 2) {
			s.traverse(cell+2, index, color, x, ym, d, xp, ymp, dp)
		}
		if s.mask.Open(cell + 3) {
			s.traverse(cell+3, index, color, xm, ym, d, xmp, ymp, dp)
		}
	} else {
		if s.mask.Open(cell) {
			s.paint(cell, color, x, y, d, xp, yp, dp)
		}
		if s.mask.Open(cell + 1) {
			s.paint(cell+1, color, xm, y, d, xmp, yp, dp)
		}
		if s.mask.Open(cell + 2) {
			s.paint(cell+2, color, x, ym, d, xp, ymp, dp)
		}
		if s.mask.Open(cell + 3) {
			s.paint(cell+3, color, xm, ym, d, xmp, ymp, dp)
		}
	}
	return s.mask.Compute(r)
}

func (s *subFace) paint(r uint32, color int32, x, y, d, xp, yp, dp int64) {
	if x+d-(1-s.dx)*(xp+dp) <= -one || one <= x-(1+s.dx)*xp {
		return
	}
	if y+d-(1-s.dy)*(yp+dp) <= -one || one <= y-(1+s.dy)*yp {
		return
	}
	s.mask.Paint(r, uint32(color))
}
