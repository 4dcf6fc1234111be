package intervaltree

// Entry is a read-only snapshot of one node, as exposed to reporting and
// visualization code.
type Entry struct {
	ID            NodeID
	Start, End    PosType
	MaxEnd        PosType
	BalanceFactor int
	// Depth is the number of edges between the node and the root.
	Depth   int
	Payload interface{}
}

type frame struct {
	id    NodeID
	depth int
}

// Iterator walks a Tree in order of non-decreasing start.  It is lazy: each
// Scan call descends only as far as the next node.  Inserting into the tree
// while an Iterator is live has undefined results; call Reset afterwards to
// start over.
//
// Typical usage:
//   it := tree.Traverse()
//   for it.Scan() {
//     e := it.Entry()
//     ...
//   }
type Iterator struct {
	t     *Tree
	stack []frame
	cur   frame
	entry Entry
}

// Traverse returns a new Iterator positioned before the first node.
func (t *Tree) Traverse() *Iterator {
	it := &Iterator{t: t}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the beginning of the tree.
func (it *Iterator) Reset() {
	it.stack = it.stack[:0]
	it.cur = frame{id: it.t.Root(), depth: 0}
	it.entry = Entry{}
}

// Scan advances to the next node, returning false once the tree is
// exhausted.
func (it *Iterator) Scan() bool {
	nodes := it.t.nodes
	for it.cur.id != NilNode {
		it.stack = append(it.stack, it.cur)
		it.cur = frame{id: nodes[it.cur.id].left, depth: it.cur.depth + 1}
	}
	if len(it.stack) == 0 {
		return false
	}
	f := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.entry = it.t.entry(f.id, f.depth)
	it.cur = frame{id: nodes[f.id].right, depth: f.depth + 1}
	return true
}

// Entry returns the node the last successful Scan stopped at.
func (it *Iterator) Entry() Entry {
	return it.entry
}

// Entries collects the whole traversal into a slice.
func (t *Tree) Entries() []Entry {
	entries := make([]Entry, 0, len(t.nodes))
	for it := t.Traverse(); it.Scan(); {
		entries = append(entries, it.Entry())
	}
	return entries
}
