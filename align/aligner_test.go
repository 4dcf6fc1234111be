package align

import (
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/intervalmemo/encoding/fasta"
	"github.com/grailbio/intervalmemo/interval"
	"github.com/grailbio/intervalmemo/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refFASTA = ">chr1\nACGTACGTAAGGCCTTACGTACGTA\n>chr2\nTTTT\n"

func newAligner(t *testing.T, window int) *Aligner {
	ref, err := fasta.New(strings.NewReader(refFASTA))
	require.NoError(t, err)
	return &Aligner{Ref: ref, Index: memo.New(memo.Opts{}), Window: window}
}

func TestAlignTargetWindows(t *testing.T) {
	a := newAligner(t, 8)
	region := interval.Entry{RefName: "chr1", Start: 0, End: 19}
	//        ACGTACGT AAGGCCTT ACGT
	target := "ACGTACGAAAGGCCTTACGA"
	results, err := a.AlignTarget("t1", target, region)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 0, End: 7}, results[0].Window)
	assert.Equal(t, 1, results[0].Distance)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 8, End: 15}, results[1].Window)
	assert.Equal(t, 0, results[1].Distance)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 16, End: 19}, results[2].Window)
	assert.Equal(t, 1, results[2].Distance)
	for _, r := range results {
		assert.False(t, r.Cached)
	}
	assert.Equal(t, 3, a.Index.Len())
	assert.NoError(t, a.Index.Check())

	// Same target again: every window is a memo hit.
	again, err := a.AlignTarget("t1", target, region)
	require.NoError(t, err)
	require.Len(t, again, 3)
	for i, r := range again {
		assert.True(t, r.Cached)
		assert.Equal(t, results[i].Window, r.Prior)
		assert.Equal(t, results[i].Distance, r.Distance)
	}
	assert.Equal(t, 3, a.Index.Len())

	// A different target is computed afresh.
	other, err := a.AlignTarget("t2", target, region)
	require.NoError(t, err)
	assert.False(t, other[0].Cached)
	assert.Equal(t, 6, a.Index.Len())
}

func TestAlignTargetClipsToReferenceAndTarget(t *testing.T) {
	a := newAligner(t, 0)
	results, err := a.AlignTarget("short", "TTT", interval.Entry{RefName: "chr2", Start: 0, End: 100})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, interval.Entry{RefName: "chr2", Start: 0, End: 2}, results[0].Window)
	assert.Equal(t, 0, results[0].Distance)

	results, err = a.AlignTarget("long", "TTTTTTTT", interval.Entry{RefName: "chr2", Start: 1, End: 100})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, interval.Entry{RefName: "chr2", Start: 1, End: 3}, results[0].Window)
}

func TestAlignTargetErrors(t *testing.T) {
	a := newAligner(t, 4)
	_, err := a.AlignTarget("t", "ACGT", interval.Entry{RefName: "chrZ", Start: 0, End: 3})
	assert.Error(t, err)
	_, err = a.AlignTarget("t", "ACGT", interval.Entry{RefName: "chr1", Start: 5, End: 3})
	assert.True(t, errors.Is(errors.Invalid, err))

	_, err = a.AlignTarget("t", "ACGT", interval.Entry{RefName: "chr1", Start: 0, End: 3})
	require.NoError(t, err)
	_, err = a.AlignTarget("t", "AAAA", interval.Entry{RefName: "chr1", Start: 0, End: 3})
	assert.True(t, errors.Is(errors.Integrity, err))
}

func TestAlignTargetAfterBEDPreload(t *testing.T) {
	a := newAligner(t, 4)
	// One range matches a window exactly, one only covers part of a window.
	err := a.Index.LoadEntries([]interval.Entry{
		{RefName: "chr1", Start: 0, End: 3},
		{RefName: "chr1", Start: 9, End: 10},
	}, func(e interval.Entry) memo.Payload {
		return memo.Payload{RefSeqID: e.RefName, TargSeqID: "t1"}
	})
	require.NoError(t, err)

	results, err := a.AlignTarget("t1", "ACGTACGTAAGG", interval.Entry{RefName: "chr1", Start: 0, End: 11})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Cached)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 0, End: 3}, results[0].Prior)
	assert.Equal(t, 0, results[0].Distance)
	assert.False(t, results[1].Cached)
	assert.True(t, results[2].Cached)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 9, End: 10}, results[2].Prior)
	assert.Equal(t, 3, a.Index.Len())
}
