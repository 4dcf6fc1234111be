package interval

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewBEDOpts defines behavior of ReadBED and ReadBEDFromPath.
type NewBEDOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// isHeaderLine returns true for BED comment, "track" and "browser" lines.
func isHeaderLine(tok []byte) bool {
	if tok[0] == '#' {
		return true
	}
	s := gunsafe.BytesToString(tok)
	return s == "track" || s == "browser"
}

// ReadBED loads every interval from a BED stream, in file order.  Input need
// not be sorted and overlapping intervals are kept separate.  Empty
// intervals are dropped.  Each BED [start, end) becomes the closed Entry
// [start, end-1].
func ReadBED(reader io.Reader, opts NewBEDOpts) (entries []Entry, err error) {
	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}
	scanner := bufio.NewScanner(reader)
	var tokens [3][]byte
	lineIdx := 0
	nEmpty := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 || isHeaderLine(tokens[0]) {
			continue
		}
		if nToken != 3 {
			return nil, fmt.Errorf("interval.ReadBED: line %d has fewer tokens than expected", lineIdx)
		}
		var parsedStart, parsedEnd int
		if parsedStart, err = strconv.Atoi(gunsafe.BytesToString(tokens[1])); err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		parsedStart -= startSubtract
		if parsedStart < 0 {
			return nil, fmt.Errorf("interval.ReadBED: negative start coordinate %s on line %d", tokens[1], lineIdx)
		}
		if parsedEnd, err = strconv.Atoi(gunsafe.BytesToString(tokens[2])); err != nil {
			return nil, fmt.Errorf("interval.ReadBED: line %d: %v", lineIdx, err)
		}
		if parsedEnd < parsedStart || parsedEnd >= PosTypeMax {
			return nil, fmt.Errorf("interval.ReadBED: invalid coordinate pair on line %d", lineIdx)
		}
		if parsedEnd == parsedStart {
			nEmpty++
			continue
		}
		entries = append(entries, Entry{
			// Copy: tokens[0] points into the scanner's buffer.
			RefName: string(tokens[0]),
			Start:   PosType(parsedStart),
			End:     PosType(parsedEnd - 1),
		})
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	log.Printf("BED loaded, %d interval(s), %d empty interval(s) skipped.", len(entries), nEmpty)
	return entries, nil
}

// ReadBEDFromPath is a wrapper for ReadBED that takes a path instead of an
// io.Reader.  Gzipped input is detected from the path suffix.
func ReadBEDFromPath(path string, opts NewBEDOpts) (entries []Entry, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return ReadBED(reader, opts)
}
