package intervaltree

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
)

// bruteOverlap scans every stored interval.
func bruteOverlap(ivals []ival, start, end PosType) []NodeID {
	var ids []NodeID
	for i, iv := range ivals {
		if iv.start <= end && iv.end >= start {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

func matchIDs(matches []Match) []NodeID {
	var ids []NodeID
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type snapshot struct {
	root  NodeID
	nodes []node
}

func takeSnapshot(tree *Tree) snapshot {
	return snapshot{root: tree.Root(), nodes: append([]node(nil), tree.nodes...)}
}

func TestQueryEmptyTree(t *testing.T) {
	tree := New()
	expect.EQ(t, len(tree.QueryOverlap(0, 100, QueryFirst)), 0)
	expect.EQ(t, len(tree.QueryOverlap(0, 100, QueryAll)), 0)
	expect.False(t, tree.Overlaps(-5, 5))
}

func TestQueryGap(t *testing.T) {
	tree := New()
	a := mustInsert(t, tree, 0, 5, "a")
	b := mustInsert(t, tree, 10, 15, "b")

	expect.EQ(t, len(tree.QueryOverlap(6, 9, QueryAll)), 0)
	expect.False(t, tree.Overlaps(6, 9))

	all := tree.QueryOverlap(4, 11, QueryAll)
	expect.EQ(t, all, []Match{
		{ID: a, Start: 0, End: 5, Payload: "a"},
		{ID: b, Start: 10, End: 15, Payload: "b"},
	})
	first := tree.QueryOverlap(4, 11, QueryFirst)
	expect.EQ(t, len(first), 1)
	expect.EQ(t, first[0].ID, a)

	// Closed endpoints touch.
	expect.True(t, tree.Overlaps(5, 5))
	expect.True(t, tree.Overlaps(15, 20))
	expect.False(t, tree.Overlaps(16, 20))
	expect.False(t, tree.Overlaps(11, 4))
}

func TestQueryMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		tree := New()
		ivals := randomIntervals(r, r.Intn(300), 2000)
		for i, iv := range ivals {
			mustInsert(t, tree, iv.start, iv.end, i)
		}
		for q := 0; q < 100; q++ {
			start := PosType(r.Intn(2200) - 100)
			end := start + PosType(r.Intn(150))
			want := bruteOverlap(ivals, start, end)

			before := takeSnapshot(tree)
			got := tree.QueryOverlap(start, end, QueryAll)
			if !reflect.DeepEqual(matchIDs(got), want) {
				t.Fatalf("query [%d, %d]: got %v, want %v", start, end, matchIDs(got), want)
			}
			for i := 1; i < len(got); i++ {
				expect.LE(t, got[i-1].Start, got[i].Start)
			}
			first := tree.QueryOverlap(start, end, QueryFirst)
			if len(want) == 0 {
				expect.EQ(t, len(first), 0)
			} else {
				expect.EQ(t, len(first), 1)
				expect.EQ(t, first[0].ID, got[0].ID)
			}
			expect.True(t, reflect.DeepEqual(before, takeSnapshot(tree)), "query mutated the tree")
		}
	}
}
