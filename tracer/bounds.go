// Package tracer implements the joint octree/occlusion-mask traversal that
// paints voxel colors onto square render targets. Two variants share the
// same semantics: a direction-agnostic traverser driven by per-corner bound
// vectors (planar targets) and six axis-specialized traversers covering the
// faces of a cubemap.
package tracer

import (
	"math"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/types"
)

// Bound encodes the frustum-test position of one octree corner as four
// signed plane distances, scaled by the corner's camera-space depth:
//
//	XLow  = near*cx - left*cz    >= 0 when inside the left plane
//	XHigh = near*cx - right*cz   <= 0 when inside the right plane
//	YLow  = near*cy - bottom*cz  >= 0 when inside the bottom plane
//	YHigh = near*cy - top*cz     <= 0 when inside the top plane
//
// The encoding is linear in the corner position, so the bound of any
// midpoint of two corners is the half-sum of their bounds. The traverser
// exploits this to derive child bounds by integer addition instead of
// re-projecting, doubling the working scale once per octree level.
type Bound struct {
	XLow, XHigh int64
	YLow, YHigh int64
}

// Footprint returns the corner's projected depth along the view axis,
// scaled by the frustum width. It is positive for corners in front of the
// camera and measures the screen-space size of a cube relative to the
// current mask cell when evaluated at the cube's farthest corner.
func (b Bound) Footprint() int64 {
	return b.XLow - b.XHigh
}

// add composes the bound of the midpoint of two corners, at twice the
// working scale.
func (b Bound) add(o Bound) Bound {
	return Bound{
		XLow:  b.XLow + o.XLow,
		XHigh: b.XHigh + o.XHigh,
		YLow:  b.YLow + o.YLow,
		YHigh: b.YHigh + o.YHigh,
	}
}

// quadrant narrows the bound to one screen quadrant of the current mask
// cell. Quadrant bit 0 selects the high-x half, bit 1 the high-y half; the
// discarded plane is replaced by the cell's mid-plane, whose bound is the
// average of the two original planes.
func (b Bound) quadrant(q int) Bound {
	mx := (b.XLow + b.XHigh) >> 1
	my := (b.YLow + b.YHigh) >> 1
	if q&1 == 0 {
		b.XHigh = mx
	} else {
		b.XLow = mx
	}
	if q&2 == 0 {
		b.YHigh = my
	} else {
		b.YLow = my
	}
	return b
}

// culled reports whether all 8 corners lie strictly outside a single
// frustum plane, in which case the cube cannot intersect the view wedge.
// Corners behind the camera have inverted plane signs and cannot certify
// anything, so their presence disables culling; correctness is preserved,
// only pruning is lost. A corner exactly at the camera contributes no view
// direction and is ignored.
func culled(b *[8]Bound) bool {
	outXL, outXH, outYL, outYH := true, true, true, true
	for i := range b {
		if fp := b[i].Footprint(); fp < 0 {
			return false
		} else if fp == 0 {
			continue
		}
		if b[i].XLow >= 0 {
			outXL = false
		}
		if b[i].XHigh <= 0 {
			outXH = false
		}
		if b[i].YLow >= 0 {
			outYL = false
		}
		if b[i].YHigh <= 0 {
			outYH = false
		}
	}
	return outXL || outXH || outYL || outYH
}

// CornerBounds projects the 8 corners of the scene cube through the
// camera's view pyramid and returns their bound vectors together with the
// index of the corner farthest along the view axis. Corner i sits on the
// positive half of an axis when the corresponding octant bit of i is set.
func CornerBounds(camera *scene.Camera) (bounds [8]Bound, far int) {
	normals := camera.Normals()

	var maxFootprint int64 = math.MinInt64
	for i := 0; i < 8; i++ {
		p := cornerPosition(i).Sub(camera.Position)
		bounds[i] = Bound{
			XLow:  int64(math.Round(normals[0].Dot(p))),
			XHigh: -int64(math.Round(normals[1].Dot(p))),
			YLow:  int64(math.Round(normals[2].Dot(p))),
			YHigh: -int64(math.Round(normals[3].Dot(p))),
		}
		if fp := bounds[i].Footprint(); fp > maxFootprint {
			maxFootprint = fp
			far = i
		}
	}
	return bounds, far
}

func cornerPosition(octant int) (p types.DVec3) {
	for axis, bit := range [3]int{scene.OctX, scene.OctY, scene.OctZ} {
		if octant&bit != 0 {
			p[axis] = scene.Size
		} else {
			p[axis] = -scene.Size
		}
	}
	return p
}

// footprintThreshold returns the footprint value at which a cube's screen
// extent matches twice the current mask cell, the point where the traverser
// flips from subdividing the octree to subdividing the mask. The far
// corner's footprint is (right-left)*depth, so the threshold corresponds to
// a corner depth of twice the scene half-size.
func footprintThreshold(f scene.Frustum) int64 {
	return int64(math.Round(2 * (f.Right - f.Left) * scene.Size))
}
