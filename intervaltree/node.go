package intervaltree

import (
	"fmt"

	"github.com/grailbio/intervalmemo/interval"
)

// PosType is the coordinate type used for interval endpoints.
type PosType = interval.PosType

// NodeID identifies a node within a single Tree.  IDs are assigned in
// insertion order, starting from zero, and are never reused.
type NodeID int32

// NilNode is the NodeID of an absent child, parent or root.
const NilNode NodeID = -1

// InvalidIntervalError is returned by NewNode when start > end.
type InvalidIntervalError struct {
	Start, End PosType
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("intervaltree: invalid interval [%d, %d]: start exceeds end", e.Start, e.End)
}

// Node is a detached interval, ready to be inserted into a Tree.  The only way
// to obtain a non-zero Node is NewNode, so a Node always satisfies
// Start() <= End().
type Node struct {
	start, end PosType
	payload    interface{}
}

// NewNode returns a Node for the closed interval [start, end] carrying
// payload.  The tree never inspects the payload.
func NewNode(start, end PosType, payload interface{}) (Node, error) {
	if start > end {
		return Node{}, &InvalidIntervalError{Start: start, End: end}
	}
	return Node{start: start, end: end, payload: payload}, nil
}

// Start returns the first position covered by the interval.
func (n Node) Start() PosType { return n.start }

// End returns the last position covered by the interval.
func (n Node) End() PosType { return n.end }

// Payload returns the opaque data attached to the interval.
func (n Node) Payload() interface{} { return n.payload }

// node is the arena representation of an inserted interval.
type node struct {
	start, end PosType
	// maxEnd is the largest end coordinate in the subtree rooted here.
	maxEnd PosType
	// bf is height(right) - height(left).  It is in [-1, 1] whenever no
	// insertion is in flight.
	bf int8
	// left and right are owned through the arena; parent is only used to walk
	// upward while rebalancing.
	left, right, parent NodeID
	payload             interface{}
}

// updateMaxEnd recomputes maxEnd of id from its own end and its children.
// Children must already be up to date.
func (t *Tree) updateMaxEnd(id NodeID) {
	n := &t.nodes[id]
	m := n.end
	if n.left != NilNode && t.nodes[n.left].maxEnd > m {
		m = t.nodes[n.left].maxEnd
	}
	if n.right != NilNode && t.nodes[n.right].maxEnd > m {
		m = t.nodes[n.right].maxEnd
	}
	n.maxEnd = m
}
