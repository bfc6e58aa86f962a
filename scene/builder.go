package scene

import (
	"fmt"
	"time"

	"github.com/achilleasa/mizar/log"
)

// A voxel point sample on a 2^depth grid covering the scene cube.
type Voxel struct {
	X, Y, Z uint32

	// Packed 0xRRGGBB color.
	Color uint32
}

type buildStats struct {
	nodes  int
	leaves int
}

type builder struct {
	logger log.Logger

	// Octree nodes stored as a contiguous list; slot 0 is reserved for
	// the root.
	nodes []Node

	stats buildStats
}

// Build constructs an octree from a set of voxel samples placed on a
// 2^depth grid. Interior color samples hold the channel-wise average of
// their children so a traversal can stop at any level and still paint a
// plausible color.
func Build(voxels []Voxel, depth int) (*Tree, error) {
	if depth < 1 || depth > Depth {
		return nil, fmt.Errorf("scene: build depth %d out of range [1, %d]", depth, Depth)
	}
	limit := uint32(1) << uint(depth)
	for _, v := range voxels {
		if v.X >= limit || v.Y >= limit || v.Z >= limit {
			return nil, fmt.Errorf("scene: voxel (%d, %d, %d) outside %d^3 grid", v.X, v.Y, v.Z, limit)
		}
		if v.Color > 0xffffff {
			return nil, fmt.Errorf("scene: voxel color %#x exceeds 24 bits", v.Color)
		}
	}

	b := &builder{
		logger: log.New("builder"),
		nodes:  make([]Node, 1),
	}

	start := time.Now()
	root, _ := b.partition(voxels, depth)
	b.nodes[0] = root
	b.stats.nodes = len(b.nodes)

	b.logger.Debugf(
		"octree build time: %d ms, depth: %d, nodes: %d, leaves: %d",
		time.Since(start).Nanoseconds()/1e6,
		depth, b.stats.nodes, b.stats.leaves,
	)
	return &Tree{Nodes: b.nodes}, nil
}

// Partition samples into the 8 octants of the current cube and emit a node.
// Returns the node together with its average color.
func (b *builder) partition(samples []Voxel, level int) (Node, int32) {
	node := emptyNode()

	var groups [8][]Voxel
	bit := uint(level - 1)
	for _, s := range samples {
		o := (s.X>>bit&1)*OctX + (s.Y>>bit&1)*OctY + (s.Z>>bit&1)*OctZ
		groups[o] = append(groups[o], s)
	}

	for o, group := range groups {
		if len(group) == 0 {
			continue
		}
		if level == 1 {
			node.Colors[o] = avgColor(group)
			b.stats.leaves++
			continue
		}
		child, color := b.partition(group, level-1)
		node.Children[o] = uint32(len(b.nodes))
		node.Colors[o] = color
		b.nodes = append(b.nodes, child)
	}

	return node, avgSlots(&node)
}

// Channel-wise average of a group of voxel colors.
func avgColor(group []Voxel) int32 {
	var r, g, bl uint64
	for _, v := range group {
		r += uint64(v.Color >> 16 & 0xff)
		g += uint64(v.Color >> 8 & 0xff)
		bl += uint64(v.Color & 0xff)
	}
	n := uint64(len(group))
	return int32(r/n<<16 | g/n<<8 | bl/n)
}

// Channel-wise average of a node's populated color slots.
func avgSlots(n *Node) int32 {
	var r, g, bl, count int64
	for i := 0; i < 8; i++ {
		if n.Colors[i] < 0 {
			continue
		}
		c := n.Colors[i]
		r += int64(c >> 16 & 0xff)
		g += int64(c >> 8 & 0xff)
		bl += int64(c & 0xff)
		count++
	}
	if count == 0 {
		return -1
	}
	return int32(r/count<<16 | g/count<<8 | bl/count)
}
