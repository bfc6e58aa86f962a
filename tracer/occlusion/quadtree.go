// Package occlusion implements the screen-space occlusion mask: a 4-ary
// tree over one square render target tracking which pixels are still
// unresolved. The traversers paint leaves and aggregate closed state upward;
// a closed root means the whole face is fully painted.
package occlusion

import "github.com/achilleasa/mizar/types"

const (
	// Number of quadtree subdivision levels. The finest level's cells are
	// the pixels, so Size is also the render target side.
	Depth = 10
	Size  = 1 << Depth
)

// The mask uses a flat layout with four root cells 0..3 tiling the target
// in screen quadrants; the children of cell r live at 4r+4 .. 4r+7, ordered
// (low x, low y), (high x, low y), (low x, high y), (high x, high y).
const (
	// First index of the pixel-level cells.
	leafStart = (1<<(2*Depth) - 4) / 3

	// Total number of cells across all levels.
	cellCount = (1<<(2*(Depth+1)) - 4) / 3
)

// IsLeaf reports whether cell r sits on the mask's finest level.
func IsLeaf(r uint32) bool {
	return r >= leafStart
}

// ChildCell returns the index of child q of cell r.
func ChildCell(r uint32, q int) uint32 {
	return 4*r + 4 + uint32(q)
}

// Mask is rebuilt fresh for every face (or frame, for the planar path) and
// fully mutated during one traversal. It is not safe for concurrent use.
type Mask struct {
	open []bool
	pix  []uint32
}

func NewMask() *Mask {
	return &Mask{
		open: make([]bool, cellCount),
		pix:  make([]uint32, Size*Size),
	}
}

// Open reports whether cell r still has unresolved pixels below it.
func (m *Mask) Open(r uint32) bool {
	return m.open[r]
}

// RootOpen reports whether any pixel of the target is still unresolved.
func (m *Mask) RootOpen() bool {
	return m.open[0] || m.open[1] || m.open[2] || m.open[3]
}

// Compute re-aggregates the open flag of an interior cell from its 4
// children and reports whether the cell is now fully closed. A cell closes
// exactly when all 4 children have closed.
func (m *Mask) Compute(r uint32) bool {
	c := 4*r + 4
	m.open[r] = m.open[c] || m.open[c+1] || m.open[c+2] || m.open[c+3]
	return !m.open[r]
}

// Paint writes a color to a pixel-level cell and closes it. A closed leaf
// is never repainted within the same render call.
func (m *Mask) Paint(r uint32, color uint32) {
	i := r - leafStart
	x := compact1By1(i)
	y := compact1By1(i >> 1)
	m.pix[y*Size+x] = color
	m.open[r] = false
}

// At returns the pixel at (x, y).
func (m *Mask) At(x, y int) uint32 {
	return m.pix[uint32(y)*Size+uint32(x)]
}

// Pix exposes the raw pixel buffer in row-major order.
func (m *Mask) Pix() []uint32 {
	return m.pix
}

// Clear resets every pixel to the given background value.
func (m *Mask) Clear(background uint32) {
	for i := range m.pix {
		m.pix[i] = background
	}
}

// Build resets the mask from the 4 inward normals of a view pyramid,
// opening exactly the cells whose solid angle on the canonical +Z face
// intersects the pyramid. Cell (u, v) on the face corresponds to the world
// direction (u, v, 1) with u, v in [-1, 1]; a plane test n.(u, v, 1) is
// linear in (u, v), so evaluating the four cell corners classifies the cell
// exactly.
func (m *Mask) Build(normals [4]types.DVec3) {
	for q := 0; q < 4; q++ {
		u := float64(q&1)*1.0 - 1.0
		v := float64(q>>1&1)*1.0 - 1.0
		m.build(uint32(q), u, v, 1.0, &normals)
	}
}

func (m *Mask) build(r uint32, u, v, s float64, normals *[4]types.DVec3) bool {
	inside := true
	for _, n := range normals {
		d00 := n[0]*u + n[1]*v + n[2]
		d10 := d00 + n[0]*s
		d01 := d00 + n[1]*s
		d11 := d10 + n[1]*s
		if d00 <= 0 && d10 <= 0 && d01 <= 0 && d11 <= 0 {
			m.fill(r, false)
			return false
		}
		if d00 < 0 || d10 < 0 || d01 < 0 || d11 < 0 {
			inside = false
		}
	}
	if inside {
		m.fill(r, true)
		return true
	}
	if IsLeaf(r) {
		// Partially covered pixel; keep it open so the traversal can
		// resolve it.
		m.open[r] = true
		return true
	}

	half := s / 2
	open := false
	for q := 0; q < 4; q++ {
		cu := u + float64(q&1)*half
		cv := v + float64(q>>1&1)*half
		if m.build(ChildCell(r, q), cu, cv, half, normals) {
			open = true
		}
	}
	m.open[r] = open
	return open
}

// BuildRect resets the mask so that exactly the w x h pixel rectangle
// anchored at the origin is open. Used by the planar render path, where the
// display resolution may be smaller than the mask.
func (m *Mask) BuildRect(w, h int) {
	for q := 0; q < 4; q++ {
		x := (q & 1) * (Size / 2)
		y := (q >> 1 & 1) * (Size / 2)
		m.buildRect(uint32(q), x, y, Size/2, w, h)
	}
}

func (m *Mask) buildRect(r uint32, x, y, s, w, h int) bool {
	if x >= w || y >= h {
		m.fill(r, false)
		return false
	}
	if x+s <= w && y+s <= h {
		m.fill(r, true)
		return true
	}
	half := s / 2
	open := false
	for q := 0; q < 4; q++ {
		if m.buildRect(ChildCell(r, q), x+(q&1)*half, y+(q>>1&1)*half, half, w, h) {
			open = true
		}
	}
	m.open[r] = open
	return open
}

// Set a whole subtree's open state.
func (m *Mask) fill(r uint32, open bool) {
	m.open[r] = open
	if IsLeaf(r) {
		return
	}
	c := 4*r + 4
	m.fill(c, open)
	m.fill(c+1, open)
	m.fill(c+2, open)
	m.fill(c+3, open)
}

// De-interleave the even bits of a leaf offset. Leaf offsets are 2D Morton
// codes: the base-4 digits of the offset spell the quadrant path from the
// root, so the even bits accumulate to the x coordinate and the odd bits to
// the y coordinate.
func compact1By1(v uint32) uint32 {
	v &= 0x55555555
	v = (v ^ (v >> 1)) & 0x33333333
	v = (v ^ (v >> 2)) & 0x0f0f0f0f
	v = (v ^ (v >> 4)) & 0x00ff00ff
	v = (v ^ (v >> 8)) & 0x0000ffff
	return v
}
