package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Entry represents a single interval on a named contig.  Start and End are
// 0-based and both inclusive: Entry{"chr1", 0, 0} covers exactly the first
// base.
type Entry struct {
	RefName string
	Start   PosType
	End     PosType
}

// Len returns the number of positions covered by e.
func (e Entry) Len() int {
	return int(e.End) - int(e.Start) + 1
}

// String formats e as a 1-based region string accepted by ParseRegionString.
func (e Entry) String() string {
	return fmt.Sprintf("%s:%d-%d", e.RefName, e.Start+1, e.End+1)
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[1-based last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning the contig ID and 0-based closed interval boundaries.  The
// interval [0, PosTypeMax - 1] is returned if there is no positional
// restriction.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		result.RefName = region
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.RefName = region[:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int
		if pos1, err = parsePos1(rangeStr); err != nil {
			return
		}
		result.Start = PosType(pos1 - 1)
		result.End = result.Start
		return
	}
	var first1, last1 int
	if first1, err = parsePos1(rangeStr[:dashPos]); err != nil {
		return
	}
	if last1, err = parsePos1(rangeStr[dashPos+1:]); err != nil {
		return
	}
	if last1 < first1 {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start = PosType(first1 - 1)
	result.End = PosType(last1 - 1)
	return
}

// parsePos1 parses a 1-based position, which must lie in [1, PosTypeMax].
func parsePos1(s string) (int, error) {
	// Commas are common in copy-pasted genome browser coordinates.
	pos1, err := strconv.Atoi(strings.Replace(s, ",", "", -1))
	if err != nil {
		return 0, err
	}
	if pos1 <= 0 || pos1 > PosTypeMax {
		return 0, fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", s)
	}
	return pos1, nil
}
