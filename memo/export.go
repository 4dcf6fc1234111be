package memo

import (
	"fmt"
	"io"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/intervalmemo/intervaltree"
)

var exportColumns = []string{
	"REF", "START", "END", "BF", "MAX_END", "DEPTH",
	"REF_SEQ", "TARG_SEQ", "FINGERPRINT", "SCORE",
}

// WriteTSV writes every recorded range, contig by contig in name order and in
// start order within a contig, together with the tree metadata (balance
// factor, cached max end, depth) that reporting tools render.  Coordinates
// are 1-based and inclusive, following the usual text-format convention.
func (x *Index) WriteTSV(w io.Writer) error {
	tw := tsv.NewWriter(w)
	for _, col := range exportColumns {
		tw.WriteString(col)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, name := range x.RefNames() {
		for it := x.byName[name].tree.Traverse(); it.Scan(); {
			e := it.Entry()
			p := e.Payload.(Payload)
			tw.WriteString(name)
			tw.WriteInt64(int64(e.Start) + 1)
			tw.WriteInt64(int64(e.End) + 1)
			tw.WriteInt64(int64(e.BalanceFactor))
			tw.WriteInt64(int64(e.MaxEnd) + 1)
			tw.WriteInt64(int64(e.Depth))
			tw.WriteString(p.RefSeqID)
			tw.WriteString(p.TargSeqID)
			tw.WriteString(fmt.Sprintf("%016x", p.Fingerprint))
			tw.WriteInt64(int64(p.Score))
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// Checksum returns the seahash of the WriteTSV output.  Two indexes with the
// same checksum hold the same ranges, payloads and tree shapes.
func (x *Index) Checksum() (uint64, error) {
	h := seahash.New()
	if err := x.WriteTSV(h); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// RefSummary describes the tree of one contig.
type RefSummary struct {
	RefName   string
	Len       int
	Height    int
	Rotations intervaltree.Rotations
}

// Summary returns one RefSummary per contig, in name order.
func (x *Index) Summary() []RefSummary {
	var out []RefSummary
	for _, name := range x.RefNames() {
		t := x.byName[name].tree
		out = append(out, RefSummary{
			RefName:   name,
			Len:       t.Len(),
			Height:    t.Height(),
			Rotations: t.Rotations(),
		})
	}
	return out
}
