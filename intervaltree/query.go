package intervaltree

// QueryMode selects how many overlapping intervals QueryOverlap reports.
type QueryMode int

const (
	// QueryFirst stops at the first overlapping interval.  This is the
	// memoization check.
	QueryFirst QueryMode = iota
	// QueryAll reports every overlapping interval.
	QueryAll
)

// Match is an interval reported by QueryOverlap.
type Match struct {
	ID         NodeID
	Start, End PosType
	Payload    interface{}
}

// QueryOverlap returns the stored intervals that share at least one position
// with the closed probe [start, end], in non-decreasing start order.  An empty
// result means nothing overlaps; so does a probe with start > end.  Subtrees
// whose maxEnd lies before start, and nodes starting after end, are never
// visited.  The tree is not modified.
func (t *Tree) QueryOverlap(start, end PosType, mode QueryMode) []Match {
	if len(t.nodes) == 0 || start > end {
		return nil
	}
	var (
		matches []Match
		stack   []NodeID
	)
	cur := t.root
	for {
		for cur != NilNode && t.nodes[cur].maxEnd >= start {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		if len(stack) == 0 {
			return matches
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		// Everything still pending (this node's right subtree and the ancestors
		// on the stack) starts at or after n.start.
		if n.start > end {
			return matches
		}
		if n.end >= start {
			matches = append(matches, Match{ID: cur, Start: n.start, End: n.end, Payload: n.payload})
			if mode == QueryFirst {
				return matches
			}
		}
		cur = n.right
	}
}

// Overlaps reports whether any stored interval overlaps [start, end].
func (t *Tree) Overlaps(start, end PosType) bool {
	return len(t.QueryOverlap(start, end, QueryFirst)) > 0
}
