package intervaltree

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Check audits the whole tree: ordering, balance factors against recomputed
// heights, cached maxEnd values and parent links.  It returns an error of kind
// errors.Integrity describing the first violation found.  Check is O(n) and
// intended for tests and diagnostics.
func (t *Tree) Check() error {
	if len(t.nodes) == 0 {
		return nil
	}
	if p := t.nodes[t.root].parent; p != NilNode {
		return integrityErrorf("root %d has parent %d", t.root, p)
	}
	visited := 0
	_, _, err := t.check(t.root, &visited)
	if err != nil {
		return err
	}
	if visited != len(t.nodes) {
		return integrityErrorf("%d of %d nodes reachable from the root", visited, len(t.nodes))
	}
	return nil
}

// check returns the height and the [min, max] start range of the subtree at
// id along with the first violation in it.
func (t *Tree) check(id NodeID, visited *int) (height int, starts [2]PosType, err error) {
	*visited++
	if *visited > len(t.nodes) {
		return 0, starts, integrityErrorf("cycle through node %d", id)
	}
	n := &t.nodes[id]
	starts = [2]PosType{n.start, n.start}
	maxEnd := n.end
	var lh, rh int
	if n.left != NilNode {
		if t.nodes[n.left].parent != id {
			return 0, starts, integrityErrorf("left child %d of %d has parent %d", n.left, id, t.nodes[n.left].parent)
		}
		var ls [2]PosType
		if lh, ls, err = t.check(n.left, visited); err != nil {
			return
		}
		if ls[1] > n.start {
			return 0, starts, integrityErrorf("left subtree of %d [start %d] holds start %d", id, n.start, ls[1])
		}
		starts[0] = ls[0]
		if m := t.nodes[n.left].maxEnd; m > maxEnd {
			maxEnd = m
		}
	}
	if n.right != NilNode {
		if t.nodes[n.right].parent != id {
			return 0, starts, integrityErrorf("right child %d of %d has parent %d", n.right, id, t.nodes[n.right].parent)
		}
		var rs [2]PosType
		if rh, rs, err = t.check(n.right, visited); err != nil {
			return
		}
		// Insertion routes equal starts left, but rotations may later carry an
		// equal start across to the right.
		if rs[0] < n.start {
			return 0, starts, integrityErrorf("right subtree of %d [start %d] holds start %d", id, n.start, rs[0])
		}
		starts[1] = rs[1]
		if m := t.nodes[n.right].maxEnd; m > maxEnd {
			maxEnd = m
		}
	}
	if bf := rh - lh; bf != int(n.bf) {
		return 0, starts, integrityErrorf("node %d stores balance factor %d, heights give %d", id, n.bf, bf)
	}
	if n.bf < -1 || n.bf > 1 {
		return 0, starts, integrityErrorf("node %d is out of balance (%d)", id, n.bf)
	}
	if maxEnd != n.maxEnd {
		return 0, starts, integrityErrorf("node %d stores maxEnd %d, subtree gives %d", id, n.maxEnd, maxEnd)
	}
	if lh > rh {
		return lh + 1, starts, nil
	}
	return rh + 1, starts, nil
}

func integrityErrorf(format string, args ...interface{}) error {
	return errors.E(errors.Integrity, "intervaltree: "+fmt.Sprintf(format, args...))
}
