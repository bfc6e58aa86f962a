package occlusion

import (
	"testing"

	"github.com/achilleasa/mizar/types"
)

func TestBuildRectOpensExactRect(t *testing.T) {
	m := NewMask()

	m.BuildRect(Size, Size)
	if got := countOpenLeaves(m); got != Size*Size {
		t.Fatalf("expected %d open leaves for a full rect; got %d", Size*Size, got)
	}

	m.BuildRect(100, 60)
	if got := countOpenLeaves(m); got != 100*60 {
		t.Fatalf("expected %d open leaves; got %d", 100*60, got)
	}
	if !m.Open(leafIndex(99, 59)) {
		t.Fatalf("expected corner pixel inside rect to be open")
	}
	if m.Open(leafIndex(100, 0)) || m.Open(leafIndex(0, 60)) {
		t.Fatalf("expected pixels outside rect to be closed")
	}
	checkAggregation(t, m)
}

func TestBuildViewPyramid(t *testing.T) {
	m := NewMask()

	// 90 degree pyramid matching the full face.
	m.Build([4]types.DVec3{{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1}})
	if !m.RootOpen() {
		t.Fatalf("expected root to be open for a face-covering pyramid")
	}
	if got := countOpenLeaves(m); got != Size*Size {
		t.Fatalf("expected all %d leaves open; got %d", Size*Size, got)
	}

	// A plane facing away closes the whole face.
	m.Build([4]types.DVec3{{0, 0, -1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1}})
	if m.RootOpen() {
		t.Fatalf("expected root to be closed for a backwards-facing plane")
	}

	// Half-plane along the x axis opens exactly half the face.
	m.Build([4]types.DVec3{{1, 0, 0}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1}})
	if got := countOpenLeaves(m); got != Size*Size/2 {
		t.Fatalf("expected %d open leaves for a half-open pyramid; got %d", Size*Size/2, got)
	}
	checkAggregation(t, m)
}

func TestPaintAndCompute(t *testing.T) {
	m := NewMask()
	m.BuildRect(Size, Size)

	r := leafIndex(5, 9)
	m.Paint(r, 0xabcdef)
	if got := m.At(5, 9); got != 0xabcdef {
		t.Fatalf("expected pixel (5, 9) to hold 0xabcdef; got %#x", got)
	}
	if m.Open(r) {
		t.Fatalf("expected painted leaf to be closed")
	}

	parent := (r - 4) / 4
	if m.Compute(parent) {
		t.Fatalf("expected parent with open siblings to stay open")
	}
	for q := 0; q < 4; q++ {
		m.Paint(ChildCell(parent, q), 0x010203)
	}
	if !m.Compute(parent) {
		t.Fatalf("expected parent to close once all children are painted")
	}
	if m.Open(parent) {
		t.Fatalf("expected closed parent to report not open")
	}
}

func TestMortonRoundtrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 5, 100, 537, Size - 1} {
		if got := compact1By1(part1By1(v)); got != v {
			t.Fatalf("expected compact(part(%d)) == %d; got %d", v, v, got)
		}
	}

	m := NewMask()
	m.BuildRect(Size, Size)
	m.Paint(leafIndex(123, 456), 0x42)
	if got := m.At(123, 456); got != 0x42 {
		t.Fatalf("expected leaf index of (123, 456) to paint that pixel; got %#x", got)
	}
}

func countOpenLeaves(m *Mask) int {
	count := 0
	for r := uint32(leafStart); r < cellCount; r++ {
		if m.open[r] {
			count++
		}
	}
	return count
}

func checkAggregation(t *testing.T, m *Mask) {
	t.Helper()
	for r := uint32(0); r < leafStart; r++ {
		c := ChildCell(r, 0)
		want := m.open[c] || m.open[c+1] || m.open[c+2] || m.open[c+3]
		if m.open[r] != want {
			t.Fatalf("expected cell %d open flag %t to match its children", r, want)
		}
	}
}

func leafIndex(x, y uint32) uint32 {
	return leafStart + part1By1(x) + part1By1(y)<<1
}

// Interleave the low 16 bits of v with zeros.
func part1By1(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v ^ (v << 8)) & 0x00ff00ff
	v = (v ^ (v << 4)) & 0x0f0f0f0f
	v = (v ^ (v << 2)) & 0x33333333
	v = (v ^ (v << 1)) & 0x55555555
	return v
}
