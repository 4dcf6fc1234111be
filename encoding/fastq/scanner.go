// Package fastq reads FASTQ records as alignment targets.
package fastq

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// A Read is a FASTQ record.  ID keeps the whole header line, '@' included.
type Read struct {
	ID, Seq, Qual string
}

// Name returns the read name: the ID without its leading '@' and without
// anything after the first space.
func (r *Read) Name() string {
	name := strings.TrimPrefix(r.ID, "@")
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	return name
}

// Scanner reads FASTQ records one at a time.  It checks that header lines
// start with '@', that the separator line starts with '+', and that sequence
// and quality have equal length.  Scanners are not threadsafe.
type Scanner struct {
	b   *bufio.Scanner
	err error
	// done is set once the input is exhausted or an error occurred.
	done bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// line returns the next line.  Blank lines are only tolerated between
// records, which is where first is true.
func (s *Scanner) line(first bool) (string, bool) {
	for s.b.Scan() {
		l := strings.TrimRight(s.b.Text(), "\r")
		if first && l == "" {
			continue
		}
		return l, true
	}
	s.err = s.b.Err()
	if s.err == nil && !first {
		s.err = ErrShort
	}
	return "", false
}

// Scan reads the next record into read.  Once Scan returns false it never
// returns true again; Err then tells whether the input ended cleanly.
func (s *Scanner) Scan(read *Read) bool {
	if s.done {
		return false
	}
	var lines [4]string
	for i := range lines {
		l, ok := s.line(i == 0)
		if !ok {
			s.done = true
			return false
		}
		lines[i] = l
	}
	if lines[0] == "" || lines[0][0] != '@' || lines[2] == "" || lines[2][0] != '+' ||
		len(lines[1]) != len(lines[3]) {
		s.err = ErrInvalid
		s.done = true
		return false
	}
	read.ID, read.Seq, read.Qual = lines[0], lines[1], lines[3]
	return true
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	return s.err
}
