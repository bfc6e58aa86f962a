package scene

import "fmt"

const (
	// Number of octree subdivision levels. The scene cube spans
	// [-Size, Size] along each world axis.
	Depth = 26
	Size  = 1 << Depth
)

// Reserved node reference flagging "no node below this slot". A child slot
// that combines SentinelNode with a non-negative color sample is a solid
// leaf cube painted with that color.
const SentinelNode = ^uint32(0)

// Child octant bit masks. An octant index sets a bit when the octant lies
// on the positive half of the corresponding axis.
const (
	OctX = 4
	OctY = 2
	OctZ = 1
)

// A single octree node. Each of the 8 child slots pairs a node reference
// with an average color sample. A negative color marks an empty slot and is
// never paired with a dereferenceable child.
type Node struct {
	Children [8]uint32
	Colors   [8]int32
}

// Tree is a flat octree store. Node 0 is the root. The store is read-only
// for the duration of a render call.
type Tree struct {
	Nodes []Node
}

// EmptyTree returns a tree whose root has no children.
func EmptyTree() *Tree {
	t := &Tree{Nodes: make([]Node, 1)}
	t.Nodes[0] = emptyNode()
	return t
}

func emptyNode() Node {
	var n Node
	for i := 0; i < 8; i++ {
		n.Children[i] = SentinelNode
		n.Colors[i] = -1
	}
	return n
}

// Count returns the number of interior nodes and solid leaf slots.
func (t *Tree) Count() (nodes, leaves int) {
	nodes = len(t.Nodes)
	for i := range t.Nodes {
		for s := 0; s < 8; s++ {
			if t.Nodes[i].Children[s] == SentinelNode && t.Nodes[i].Colors[s] >= 0 {
				leaves++
			}
		}
	}
	return nodes, leaves
}

// Validate checks the tree's structural invariants: child references must be
// in range and a negative color sample must never pair with a real child
// reference. The traversal hot path assumes these hold and does not
// re-check them.
func (t *Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("scene: tree has no root node")
	}
	for i := range t.Nodes {
		for s := 0; s < 8; s++ {
			ref := t.Nodes[i].Children[s]
			if ref == SentinelNode {
				continue
			}
			if int(ref) >= len(t.Nodes) {
				return fmt.Errorf("scene: node %d child %d references node %d of %d", i, s, ref, len(t.Nodes))
			}
			if t.Nodes[i].Colors[s] < 0 {
				return fmt.Errorf("scene: node %d child %d pairs a negative color with a real reference", i, s)
			}
		}
	}
	return nil
}
