package memo

import (
	"fmt"
	"strings"

	"github.com/biogo/store/llrb"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/intervalmemo/interval"
	"github.com/grailbio/intervalmemo/intervaltree"
)

// Payload is the data recorded with each processed range.  The tree never
// looks at it.
type Payload struct {
	// RefSeqID names the reference sequence the range was aligned against.
	RefSeqID string
	// TargSeqID names the target sequence aligned to the range.
	TargSeqID string
	// Aligned is set when Fingerprint and Score come from an alignment.
	// Ranges loaded from a BED file only mark the range as done.
	Aligned bool
	// Fingerprint identifies the target bases that were aligned; see
	// Fingerprint().
	Fingerprint uint64
	// Score is the alignment result, e.g. an edit distance.
	Score int
}

// Fingerprint hashes a stretch of sequence for Payload.Fingerprint.
func Fingerprint(seq string) uint64 {
	return farm.Hash64([]byte(seq))
}

// Hit is a recorded range returned by Lookup.
type Hit struct {
	ID      intervaltree.NodeID
	Region  interval.Entry
	Payload Payload
}

// Opts configures an Index.
type Opts struct {
	// SAMHeader enables the *ByID methods, which resolve reference IDs through
	// the header.
	SAMHeader *sam.Header
}

// refTree is the per-contig tree, ordered by contig name in Index.refs.
type refTree struct {
	name string
	tree *intervaltree.Tree
}

// Compare implements llrb.Comparable.
func (r *refTree) Compare(c llrb.Comparable) int {
	return strings.Compare(r.name, c.(*refTree).name)
}

// Index maps contig names to interval trees.
type Index struct {
	opts Opts
	// refs holds every *refTree, ordered by name, for export.
	refs   llrb.Tree
	byName map[string]*refTree
	// last is the most recently used contig.  Alignment usually works through
	// one contig at a time.
	last *refTree
}

// New returns an empty Index.
func New(opts Opts) *Index {
	return &Index{opts: opts, byName: make(map[string]*refTree)}
}

func (x *Index) lookupRef(refName string) *refTree {
	if x.last != nil && x.last.name == refName {
		return x.last
	}
	r := x.byName[refName]
	if r != nil {
		x.last = r
	}
	return r
}

func (x *Index) getOrCreateRef(refName string) *refTree {
	if r := x.lookupRef(refName); r != nil {
		return r
	}
	r := &refTree{name: refName, tree: intervaltree.New()}
	x.byName[refName] = r
	x.refs.Insert(r)
	x.last = r
	return r
}

// refNameByID resolves a reference ID through the SAM header.
func (x *Index) refNameByID(refID int) (string, error) {
	if x.opts.SAMHeader == nil {
		return "", errors.E(errors.Invalid, "memo: reference IDs need Opts.SAMHeader")
	}
	refs := x.opts.SAMHeader.Refs()
	if refID < 0 || refID >= len(refs) {
		return "", errors.E(errors.Invalid, fmt.Sprintf("memo: reference ID %d out of range [0, %d)", refID, len(refs)))
	}
	return refs[refID].Name(), nil
}

// Record marks the closed range [start, end] of refName as processed.  It
// returns an *intervaltree.InvalidIntervalError when start > end.
func (x *Index) Record(refName string, start, end interval.PosType, p Payload) (intervaltree.NodeID, error) {
	if refName == "" {
		return intervaltree.NilNode, errors.E(errors.Invalid, "memo: empty reference name")
	}
	n, err := intervaltree.NewNode(start, end, p)
	if err != nil {
		return intervaltree.NilNode, err
	}
	return x.getOrCreateRef(refName).tree.Insert(n), nil
}

// RecordEntry is Record for an interval.Entry.
func (x *Index) RecordEntry(e interval.Entry, p Payload) (intervaltree.NodeID, error) {
	return x.Record(e.RefName, e.Start, e.End, p)
}

// RecordByID is Record with the contig given as a SAM header reference ID.
func (x *Index) RecordByID(refID int, start, end interval.PosType, p Payload) (intervaltree.NodeID, error) {
	refName, err := x.refNameByID(refID)
	if err != nil {
		return intervaltree.NilNode, err
	}
	return x.Record(refName, start, end, p)
}

// Seen reports whether any recorded range on refName overlaps [start, end].
func (x *Index) Seen(refName string, start, end interval.PosType) bool {
	return len(x.Lookup(refName, start, end, intervaltree.QueryFirst)) > 0
}

// Lookup returns the recorded ranges on refName overlapping [start, end].  An
// unknown contig, like an empty tree, yields no hits.
func (x *Index) Lookup(refName string, start, end interval.PosType, mode intervaltree.QueryMode) []Hit {
	r := x.lookupRef(refName)
	if r == nil {
		return nil
	}
	matches := r.tree.QueryOverlap(start, end, mode)
	if len(matches) == 0 {
		return nil
	}
	hits := make([]Hit, len(matches))
	for i, m := range matches {
		hits[i] = Hit{
			ID:      m.ID,
			Region:  interval.Entry{RefName: refName, Start: m.Start, End: m.End},
			Payload: m.Payload.(Payload),
		}
	}
	return hits
}

// LookupByID is Lookup with the contig given as a SAM header reference ID.
func (x *Index) LookupByID(refID int, start, end interval.PosType, mode intervaltree.QueryMode) ([]Hit, error) {
	refName, err := x.refNameByID(refID)
	if err != nil {
		return nil, err
	}
	return x.Lookup(refName, start, end, mode), nil
}

// Forget would evict a recorded range.  Eviction is not supported, so it
// always fails with an error of kind errors.NotSupported.
func (x *Index) Forget(refName string, id intervaltree.NodeID) error {
	if r := x.lookupRef(refName); r != nil {
		return r.tree.Remove(id)
	}
	return errors.E(errors.NotSupported, fmt.Sprintf("memo: cannot forget %s node %d: eviction is not supported", refName, id))
}

// LoadEntries records every entry, deriving each payload with payloadFn.  A
// nil payloadFn records Payload{RefSeqID: e.RefName}.
func (x *Index) LoadEntries(entries []interval.Entry, payloadFn func(interval.Entry) Payload) error {
	for _, e := range entries {
		p := Payload{RefSeqID: e.RefName}
		if payloadFn != nil {
			p = payloadFn(e)
		}
		if _, err := x.RecordEntry(e, p); err != nil {
			return err
		}
	}
	return nil
}

// LoadBEDFromPath records every interval of a BED file, tagging each with
// targSeqID.  It returns the number of intervals recorded.
func (x *Index) LoadBEDFromPath(path string, opts interval.NewBEDOpts, targSeqID string) (int, error) {
	entries, err := interval.ReadBEDFromPath(path, opts)
	if err != nil {
		return 0, err
	}
	err = x.LoadEntries(entries, func(e interval.Entry) Payload {
		return Payload{RefSeqID: e.RefName, TargSeqID: targSeqID}
	})
	if err != nil {
		return 0, err
	}
	log.Printf("memo: recorded %d interval(s) from %s", len(entries), path)
	return len(entries), nil
}

// RefNames returns the contigs with at least one recorded range, sorted by
// name.
func (x *Index) RefNames() []string {
	names := make([]string, 0, x.refs.Len())
	x.refs.Do(func(c llrb.Comparable) bool {
		names = append(names, c.(*refTree).name)
		return false
	})
	return names
}

// Tree returns the tree for refName, or nil if nothing was recorded there.
// Callers must treat it as read-only.
func (x *Index) Tree(refName string) *intervaltree.Tree {
	if r := x.lookupRef(refName); r != nil {
		return r.tree
	}
	return nil
}

// Len returns the number of recorded ranges over all contigs.
func (x *Index) Len() int {
	n := 0
	for _, r := range x.byName {
		n += r.tree.Len()
	}
	return n
}

// Check audits every tree; see intervaltree.Tree.Check.
func (x *Index) Check() error {
	for _, name := range x.RefNames() {
		if err := x.byName[name].tree.Check(); err != nil {
			return errors.E(err, "memo: contig "+name)
		}
	}
	return nil
}
