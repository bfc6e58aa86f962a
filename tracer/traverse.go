package tracer

import (
	"math"

	"github.com/achilleasa/mizar/scene"
	"github.com/achilleasa/mizar/tracer/occlusion"
)

// viewTracer holds the per-render state shared by every recursive call of
// the direction-agnostic traverser: the octree, the occlusion mask being
// painted and the two values that stay fixed for a whole render, the index
// of the cube corner farthest along the view axis and the footprint value
// at which the traverser switches from octree steps to mask steps.
type viewTracer struct {
	tree      *scene.Tree
	mask      *occlusion.Mask
	far       int
	threshold int64
}

// RenderView renders the octree through the camera's view pyramid into the
// open cells of the mask. The caller is expected to have built and cleared
// the mask; cells already closed are left untouched.
func RenderView(tree *scene.Tree, camera *scene.Camera, mask *occlusion.Mask) {
	bounds, far := CornerBounds(camera)
	t := &viewTracer{
		tree:      tree,
		mask:      mask,
		far:       far,
		threshold: footprintThreshold(camera.Frustum),
	}

	px := int64(math.Round(camera.Position[0]))
	py := int64(math.Round(camera.Position[1]))
	pz := int64(math.Round(camera.Position[2]))

	for q := 0; q < 4; q++ {
		if !mask.Open(uint32(q)) {
			continue
		}
		var b [8]Bound
		for j := range b {
			b[j] = bounds[j].quadrant(q)
		}
		t.traverse(uint32(q), 0, 0, &b, px, py, pz, scene.Depth-1)
	}
}

// nearestFirstOrder returns the front-to-back visiting order of a node's 8
// children as seen from a camera at the given position relative to the node
// center. The octant containing the camera direction comes first; XOR-ing
// its index enumerates the rest in nondecreasing distance.
func nearestFirstOrder(relX, relY, relZ int64) (order [8]uint8) {
	var first uint8
	if relX >= 0 {
		first |= scene.OctX
	}
	if relY >= 0 {
		first |= scene.OctY
	}
	if relZ >= 0 {
		first |= scene.OctZ
	}
	for i := range order {
		order[i] = first ^ uint8(i)
	}
	return order
}

// traverse interleaves octree descent and mask descent below the open mask
// cell r. The bounds describe the corners of the current cube relative to
// the cell's view wedge; rel{X,Y,Z} is the camera position relative to the
// cube center, rescaled so the cube half-size equals the scene half-size.
// Returns true once cell r is fully closed and no sibling work remains.
//
// A sentinel index marks descent through a solid leaf: the inherited color
// keeps propagating until the mask resolves it. Recursion is bounded by the
// depth counter on the octree side and the mask's own depth on the other.
func (t *viewTracer) traverse(
	r uint32, index uint32, color int32,
	b *[8]Bound, relX, relY, relZ int64, depth int,
) bool {
	if b[t.far].Footprint() <= 0 {
		// Entire cube behind the camera.
		return false
	}
	if culled(b) {
		return false
	}

	if depth >= 0 && b[t.far].Footprint() <= t.threshold {
		// Octree step.
		order := nearestFirstOrder(relX, relY, relZ)
		for _, k := range order {
			var node *scene.Node
			childIndex := scene.SentinelNode
			childColor := color
			if index != scene.SentinelNode {
				node = &t.tree.Nodes[index]
				if node.Colors[k] < 0 {
					continue
				}
				childIndex = node.Children[k]
				childColor = node.Colors[k]
			}

			var cb [8]Bound
			for j := range cb {
				cb[j] = b[j].add(b[k])
			}
			crX, crY, crZ := childPosition(relX, relY, relZ, k)
			if t.traverse(r, childIndex, childColor, &cb, crX, crY, crZ, depth-1) {
				return true
			}
		}
		return false
	}

	// Mask step.
	for q := 0; q < 4; q++ {
		cell := occlusion.ChildCell(r, q)
		if !t.mask.Open(cell) {
			continue
		}
		var cb [8]Bound
		for j := range cb {
			cb[j] = b[j].quadrant(q)
		}
		if occlusion.IsLeaf(cell) {
			t.paint(cell, color, &cb)
		} else {
			t.traverse(cell, index, color, &cb, relX, relY, relZ, depth)
		}
	}
	return t.mask.Compute(r)
}

// paint closes a pixel cell with the current color if the cube actually
// intersects the pixel's view wedge.
func (t *viewTracer) paint(cell uint32, color int32, b *[8]Bound) {
	if b[t.far].Footprint() <= 0 || culled(b) {
		return
	}
	t.mask.Paint(cell, uint32(color))
}

// childPosition rescales the camera-relative position into the frame of
// child octant k, whose half-size is half the parent's.
func childPosition(relX, relY, relZ int64, k uint8) (int64, int64, int64) {
	relX = 2*relX + scene.Size
	if k&scene.OctX != 0 {
		relX -= 2 * scene.Size
	}
	relY = 2*relY + scene.Size
	if k&scene.OctY != 0 {
		relY -= 2 * scene.Size
	}
	relZ = 2*relZ + scene.Size
	if k&scene.OctZ != 0 {
		relZ -= 2 * scene.Size
	}
	return relX, relY, relZ
}
