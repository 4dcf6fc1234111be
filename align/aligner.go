// Package align compares target sequences against windows of a reference,
// using a memo.Index so that reference ranges already aligned for a target are
// not recomputed.
package align

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/intervalmemo/encoding/fasta"
	"github.com/grailbio/intervalmemo/interval"
	"github.com/grailbio/intervalmemo/intervaltree"
	"github.com/grailbio/intervalmemo/memo"
	pkgerrors "github.com/pkg/errors"
)

// DefaultWindow is the window width used when Aligner.Window is zero.
const DefaultWindow = 64

// Result describes one reference window.
type Result struct {
	// Window is the reference range compared, closed.
	Window interval.Entry
	// Distance is the edit distance between the reference window and the
	// corresponding target bases.  For cached windows it is the score
	// recorded for Prior, which may cover a different range than Window,
	// and is 0 when Prior was recorded without an alignment (e.g. from BED).
	Distance int
	// Cached is set when the window overlapped a range already recorded for
	// the same target; Prior is that range.
	Cached bool
	Prior  interval.Entry
}

// Aligner places a target sequence on a reference region without gaps,
// window by window, and scores each window by edit distance.
type Aligner struct {
	Ref   fasta.Fasta
	Index *memo.Index
	// Window is the window width in bases.  Zero means DefaultWindow.
	Window int
}

// priorHit returns the first recorded range overlapping w that was aligned
// for targID.
func (a *Aligner) priorHit(w interval.Entry, targID string) (memo.Hit, bool) {
	for _, h := range a.Index.Lookup(w.RefName, w.Start, w.End, intervaltree.QueryAll) {
		if h.Payload.TargSeqID == targID {
			return h, true
		}
	}
	return memo.Hit{}, false
}

// AlignTarget aligns target, named targID, against region.  Target base i
// is placed at reference position region.Start+i; windows stop at the end of
// the region or of the target, whichever comes first.  Every newly computed
// window is recorded in the index.
//
// A window that overlaps a range recorded for targID is not recomputed.  If
// the recorded range is exactly the window and was produced by an earlier
// alignment with a different fingerprint, the target name was reused for
// different bases and an Integrity error is returned.
func (a *Aligner) AlignTarget(targID, target string, region interval.Entry) ([]Result, error) {
	if region.Start < 0 || region.Start > region.End {
		return nil, errors.E(errors.Invalid, "align: empty region "+region.String())
	}
	width := a.Window
	if width <= 0 {
		width = DefaultWindow
	}
	refLen, err := a.Ref.Len(region.RefName)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "align %s", targID)
	}
	end := int(region.End)
	if end >= int(refLen) {
		end = int(refLen) - 1
	}
	if last := int(region.Start) + len(target) - 1; last < end {
		end = last
	}

	var (
		results []Result
		nCached int
	)
	for ws := int(region.Start); ws <= end; ws += width {
		we := ws + width - 1
		if we > end {
			we = end
		}
		w := interval.Entry{RefName: region.RefName, Start: interval.PosType(ws), End: interval.PosType(we)}
		targBases := target[ws-int(region.Start) : we-int(region.Start)+1]
		fp := memo.Fingerprint(targBases)

		if h, ok := a.priorHit(w, targID); ok {
			if h.Payload.Aligned && h.Region == w && h.Payload.Fingerprint != fp {
				return results, errors.E(errors.Integrity,
					"align: target "+targID+" was already aligned to "+w.String()+" with different bases")
			}
			results = append(results, Result{Window: w, Distance: h.Payload.Score, Cached: true, Prior: h.Region})
			nCached++
			continue
		}

		refBases, err := a.Ref.Get(region.RefName, uint64(ws), uint64(we+1))
		if err != nil {
			return results, pkgerrors.Wrapf(err, "align %s", targID)
		}
		d := EditDistance(refBases, targBases)
		if _, err := a.Index.RecordEntry(w, memo.Payload{
			RefSeqID:    region.RefName,
			TargSeqID:   targID,
			Aligned:     true,
			Fingerprint: fp,
			Score:       d,
		}); err != nil {
			return results, err
		}
		results = append(results, Result{Window: w, Distance: d})
	}
	log.Debug.Printf("align: %s against %s: %d window(s), %d cached", targID, region, len(results), nCached)
	return results, nil
}
