// Package memo is a memoization index for alignment over reference contigs.
// It keeps one intervaltree.Tree per contig and answers whether a reference
// range has already been processed, and by which target.
//
// Entries are never evicted: an Index grows monotonically for the duration
// of a run.  An Index is not safe for concurrent use.
package memo
