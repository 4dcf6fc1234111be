package intervaltree

import (
	"github.com/grailbio/base/log"
)

// rebalance walks from parent toward the root after child's subtree grew by
// one level, adjusting balance factors and rotating where a factor reaches
// +/-2.  A correctly executed rotation restores the subtree to its
// pre-insertion height, so the walk stops after the first one.
func (t *Tree) rebalance(parent, child NodeID) {
	for parent != NilNode {
		p := &t.nodes[parent]
		if p.right == child {
			p.bf++
		} else {
			p.bf--
		}
		switch p.bf {
		case 0:
			return
		case 1, -1:
			child, parent = parent, p.parent
		case 2:
			switch t.nodes[p.right].bf {
			case 1:
				t.rotations.Left++
				t.logRotation("single left", parent)
				t.rotateLeft(parent)
			case -1:
				t.rotations.RightLeft++
				t.logRotation("double right-left", parent)
				t.rotateRightLeft(parent)
			default:
				log.Panicf("intervaltree: node %d has balance factor 2 but its right child has %d",
					parent, t.nodes[p.right].bf)
			}
			return
		case -2:
			switch t.nodes[p.left].bf {
			case -1:
				t.rotations.Right++
				t.logRotation("single right", parent)
				t.rotateRight(parent)
			case 1:
				t.rotations.LeftRight++
				t.logRotation("double left-right", parent)
				t.rotateLeftRight(parent)
			default:
				log.Panicf("intervaltree: node %d has balance factor -2 but its left child has %d",
					parent, t.nodes[p.left].bf)
			}
			return
		default:
			log.Panicf("intervaltree: illegal balance factor %d at node %d", p.bf, parent)
		}
	}
}

func (t *Tree) logRotation(kind string, id NodeID) {
	if log.At(log.Debug) {
		n := &t.nodes[id]
		log.Debug.Printf("intervaltree: %s rotation at [%d, %d]", kind, n.start, n.end)
	}
}

// replaceChild makes newChild take oldChild's place under parent, or at the
// root when parent is NilNode.
func (t *Tree) replaceChild(parent, oldChild, newChild NodeID) {
	t.nodes[newChild].parent = parent
	switch {
	case parent == NilNode:
		t.root = newChild
	case t.nodes[parent].left == oldChild:
		t.nodes[parent].left = newChild
	default:
		t.nodes[parent].right = newChild
	}
}

// rotateLeft promotes the right child of x and returns it.  Both nodes end up
// with a zero balance factor.
func (t *Tree) rotateLeft(x NodeID) NodeID {
	y := t.nodes[x].right
	if y == NilNode {
		log.Panicf("intervaltree: left rotation at node %d without a right child", x)
	}
	inner := t.nodes[y].left
	t.nodes[x].right = inner
	if inner != NilNode {
		t.nodes[inner].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y

	t.nodes[x].bf = 0
	t.nodes[y].bf = 0
	t.updateMaxEnd(x)
	t.updateMaxEnd(y)
	return y
}

// rotateRight promotes the left child of x and returns it.  Both nodes end up
// with a zero balance factor.
func (t *Tree) rotateRight(x NodeID) NodeID {
	y := t.nodes[x].left
	if y == NilNode {
		log.Panicf("intervaltree: right rotation at node %d without a left child", x)
	}
	inner := t.nodes[y].right
	t.nodes[x].left = inner
	if inner != NilNode {
		t.nodes[inner].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y

	t.nodes[x].bf = 0
	t.nodes[y].bf = 0
	t.updateMaxEnd(x)
	t.updateMaxEnd(y)
	return y
}

// rotateRightLeft rotates x's right child right, then x left, promoting x's
// right-left grandchild.
func (t *Tree) rotateRightLeft(x NodeID) NodeID {
	y := t.nodes[x].right
	pivotBF := t.nodes[t.nodes[y].left].bf
	t.rotateRight(y)
	z := t.rotateLeft(x)
	// The single rotations zero every factor they touch, which is only right
	// when the pivot was balanced.
	switch pivotBF {
	case 1:
		t.nodes[x].bf = -1
	case -1:
		t.nodes[y].bf = 1
	}
	return z
}

// rotateLeftRight rotates x's left child left, then x right, promoting x's
// left-right grandchild.
func (t *Tree) rotateLeftRight(x NodeID) NodeID {
	y := t.nodes[x].left
	pivotBF := t.nodes[t.nodes[y].right].bf
	t.rotateLeft(y)
	z := t.rotateRight(x)
	switch pivotBF {
	case 1:
		t.nodes[y].bf = -1
	case -1:
		t.nodes[x].bf = 1
	}
	return z
}
