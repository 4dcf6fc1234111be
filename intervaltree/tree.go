package intervaltree

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Rotations counts the rebalancing rotations a Tree has performed, by kind.
// A double rotation is counted once, under its own kind.
type Rotations struct {
	Left, Right, LeftRight, RightLeft int
}

// Total returns the number of rotations of any kind.
func (r Rotations) Total() int {
	return r.Left + r.Right + r.LeftRight + r.RightLeft
}

// Tree is an augmented AVL interval tree.  The zero value is an empty tree
// ready for use.
type Tree struct {
	// nodes is the arena.  nodes[id] is the node with NodeID id.
	nodes []node
	// root is only meaningful when len(nodes) > 0.
	root      NodeID
	rotations Rotations
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{root: NilNode}
}

// Len returns the number of intervals in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the current top node, or NilNode if the tree is empty.  The
// root may change after any insertion.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NilNode
	}
	return t.root
}

// Rotations returns the rotation counters accumulated so far.
func (t *Tree) Rotations() Rotations {
	return t.rotations
}

// Insert links n into the tree and returns its NodeID.  Nodes with equal start
// coordinates are routed to the left.  The tree is rebalanced before Insert
// returns.
func (t *Tree) Insert(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		start:   n.start,
		end:     n.end,
		maxEnd:  n.end,
		left:    NilNode,
		right:   NilNode,
		parent:  NilNode,
		payload: n.payload,
	})
	if id == 0 {
		t.root = id
		return id
	}

	cur := t.root
	for {
		c := &t.nodes[cur]
		if c.start >= n.start {
			if c.left == NilNode {
				c.left = id
				break
			}
			cur = c.left
		} else {
			if c.right == NilNode {
				c.right = id
				break
			}
			cur = c.right
		}
	}
	t.nodes[id].parent = cur
	t.rebalance(cur, id)
	// Rotations fix maxEnd for the nodes they move; everything on the final
	// path from the new node to the root still needs the new end folded in.
	for p := t.nodes[id].parent; p != NilNode; p = t.nodes[p].parent {
		t.updateMaxEnd(p)
	}
	return id
}

// InsertInterval is shorthand for NewNode followed by Insert.
func (t *Tree) InsertInterval(start, end PosType, payload interface{}) (NodeID, error) {
	n, err := NewNode(start, end, payload)
	if err != nil {
		return NilNode, err
	}
	return t.Insert(n), nil
}

// Remove is not supported: entries live for the lifetime of the tree.  It
// always returns an error of kind errors.NotSupported and leaves the tree
// unchanged.
func (t *Tree) Remove(id NodeID) error {
	return errors.E(errors.NotSupported, fmt.Sprintf("intervaltree: cannot remove node %d: removal is not supported", id))
}

// IsUnsupported reports whether err came from an unsupported operation such as
// Remove.
func IsUnsupported(err error) bool {
	return errors.Is(errors.NotSupported, err)
}

// Height returns the number of nodes on the longest root-to-leaf path, or 0
// for an empty tree.  It follows the balance factors, so it runs in
// O(log n).
func (t *Tree) Height() int {
	h := 0
	for cur := t.Root(); cur != NilNode; h++ {
		n := &t.nodes[cur]
		if n.bf > 0 {
			cur = n.right
		} else {
			cur = n.left
		}
	}
	return h
}

// Node returns the stored fields of id.  Entry.Depth is the number of edges
// between id and the root.  ok is false if id does not name a node.
func (t *Tree) Node(id NodeID) (e Entry, ok bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Entry{}, false
	}
	depth := 0
	for p := t.nodes[id].parent; p != NilNode; p = t.nodes[p].parent {
		depth++
	}
	return t.entry(id, depth), true
}

// entry snapshots node id as an Entry.
func (t *Tree) entry(id NodeID, depth int) Entry {
	n := &t.nodes[id]
	return Entry{
		ID:            id,
		Start:         n.start,
		End:           n.end,
		MaxEnd:        n.maxEnd,
		BalanceFactor: int(n.bf),
		Depth:         depth,
		Payload:       n.payload,
	}
}
