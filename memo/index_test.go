package memo_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/intervalmemo/interval"
	"github.com/grailbio/intervalmemo/intervaltree"
	"github.com/grailbio/intervalmemo/memo"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeader(t *testing.T) *sam.Header {
	chr1, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	chr2, err := sam.NewReference("chr2", "", "", 2000, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	require.NoError(t, err)
	return header
}

func TestRecordAndSeen(t *testing.T) {
	x := memo.New(memo.Opts{})
	assert.False(t, x.Seen("chr1", 0, 100))

	_, err := x.Record("chr1", 0, 5, memo.Payload{TargSeqID: "t1"})
	require.NoError(t, err)
	_, err = x.Record("chr1", 10, 15, memo.Payload{TargSeqID: "t2"})
	require.NoError(t, err)

	assert.False(t, x.Seen("chr1", 6, 9))
	assert.True(t, x.Seen("chr1", 4, 11))
	assert.False(t, x.Seen("chr2", 4, 11))

	hits := x.Lookup("chr1", 4, 11, intervaltree.QueryAll)
	require.Len(t, hits, 2)
	assert.Equal(t, interval.Entry{RefName: "chr1", Start: 0, End: 5}, hits[0].Region)
	assert.Equal(t, "t1", hits[0].Payload.TargSeqID)
	assert.Equal(t, "t2", hits[1].Payload.TargSeqID)
	assert.Len(t, x.Lookup("chr1", 4, 11, intervaltree.QueryFirst), 1)
	assert.Equal(t, 2, x.Len())
	assert.NoError(t, x.Check())
}

func TestRecordErrors(t *testing.T) {
	x := memo.New(memo.Opts{})
	_, err := x.Record("chr1", 9, 3, memo.Payload{})
	_, ok := err.(*intervaltree.InvalidIntervalError)
	assert.True(t, ok, "got %v", err)
	_, err = x.Record("", 1, 3, memo.Payload{})
	assert.True(t, errors.Is(errors.Invalid, err))
	_, err = x.RecordByID(0, 1, 3, memo.Payload{})
	assert.True(t, errors.Is(errors.Invalid, err))
	assert.Equal(t, 0, x.Len())
}

func TestByID(t *testing.T) {
	x := memo.New(memo.Opts{SAMHeader: newHeader(t)})
	_, err := x.RecordByID(1, 100, 200, memo.Payload{Score: 3})
	require.NoError(t, err)
	_, err = x.RecordByID(2, 100, 200, memo.Payload{})
	assert.Error(t, err)

	hits, err := x.LookupByID(1, 150, 150, intervaltree.QueryFirst)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chr2", hits[0].Region.RefName)
	assert.Equal(t, 3, hits[0].Payload.Score)

	hits, err = x.LookupByID(0, 150, 150, intervaltree.QueryFirst)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestForgetUnsupported(t *testing.T) {
	x := memo.New(memo.Opts{})
	id, err := x.Record("chr1", 1, 2, memo.Payload{})
	require.NoError(t, err)
	err = x.Forget("chr1", id)
	assert.True(t, intervaltree.IsUnsupported(err))
	err = x.Forget("chrX", 0)
	assert.True(t, intervaltree.IsUnsupported(err))
	assert.True(t, x.Seen("chr1", 1, 1))
}

func TestRefNamesOrdered(t *testing.T) {
	x := memo.New(memo.Opts{})
	for _, name := range []string{"chr2", "chr10", "chr1", "chr2"} {
		_, err := x.Record(name, 0, 1, memo.Payload{})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"chr1", "chr10", "chr2"}, x.RefNames())
	assert.Nil(t, x.Tree("chr3"))
	assert.Equal(t, 2, x.Tree("chr2").Len())
	summary := x.Summary()
	require.Len(t, summary, 3)
	assert.Equal(t, "chr2", summary[2].RefName)
	assert.Equal(t, 2, summary[2].Len)
	assert.Equal(t, 2, summary[2].Height)
}

func TestLoadBEDFromPath(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "done.bed")
	require.NoError(t, ioutil.WriteFile(path, []byte("chr1\t0\t10\nchr1\t20\t30\nchr3\t5\t6\n"), 0600))

	x := memo.New(memo.Opts{})
	n, err := x.LoadBEDFromPath(path, interval.NewBEDOpts{}, "sample")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, x.Seen("chr1", 9, 9))
	assert.False(t, x.Seen("chr1", 10, 19))
	hits := x.Lookup("chr3", 5, 5, intervaltree.QueryAll)
	require.Len(t, hits, 1)
	assert.Equal(t, memo.Payload{RefSeqID: "chr3", TargSeqID: "sample"}, hits[0].Payload)

	_, err = x.LoadBEDFromPath(filepath.Join(tempDir, "missing.bed"), interval.NewBEDOpts{}, "")
	assert.Error(t, err)
}

func TestWriteTSV(t *testing.T) {
	x := memo.New(memo.Opts{})
	for _, e := range []interval.Entry{{RefName: "chr2", Start: 0, End: 9}, {RefName: "chr1", Start: 20, End: 29}, {RefName: "chr1", Start: 5, End: 50}} {
		_, err := x.RecordEntry(e, memo.Payload{RefSeqID: e.RefName, TargSeqID: "t", Fingerprint: 0xab, Score: 2})
		require.NoError(t, err)
	}
	var buf bytes.Buffer
	require.NoError(t, x.WriteTSV(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "REF\tSTART\tEND\tBF\tMAX_END\tDEPTH\tREF_SEQ\tTARG_SEQ\tFINGERPRINT\tSCORE", lines[0])
	assert.Equal(t, "chr1\t6\t51\t0\t51\t1\tchr1\tt\t00000000000000ab\t2", lines[1])
	assert.Equal(t, "chr1\t21\t30\t-1\t51\t0\tchr1\tt\t00000000000000ab\t2", lines[2])
	assert.Equal(t, "chr2\t1\t10\t0\t10\t0\tchr2\tt\t00000000000000ab\t2", lines[3])
}

func TestChecksum(t *testing.T) {
	x := memo.New(memo.Opts{})
	_, err := x.Record("chr1", 0, 9, memo.Payload{TargSeqID: "t"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, x.WriteTSV(&buf))
	sum, err := x.Checksum()
	require.NoError(t, err)
	assert.Equal(t, seahash.Sum64(buf.Bytes()), sum)

	_, err = x.Record("chr1", 3, 4, memo.Payload{TargSeqID: "t"})
	require.NoError(t, err)
	sum2, err := x.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, sum, sum2)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, memo.Fingerprint("ACGT"), memo.Fingerprint("ACGT"))
	assert.NotEqual(t, memo.Fingerprint("ACGT"), memo.Fingerprint("ACGA"))
}
