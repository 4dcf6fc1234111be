/*Package intervaltree implements an augmented AVL tree over closed integer
  intervals.  It is meant to serve as a memoization index answering "has this
  range already been processed?" while aligning sequence against a reference.

  Intervals are keyed on their start coordinate; equal starts are routed to
  the left subtree.  Every node caches the maximum end coordinate in its
  subtree, which lets overlap queries skip whole subtrees.

  Nodes live in an arena owned by the Tree; child and parent links are arena
  indices, so the parent back-link never owns anything.  Entries are never
  evicted: Remove always fails with a NotSupported error.

  A Tree is not safe for concurrent use.  Callers that share one across
  goroutines must serialize access themselves.
*/
package intervaltree
