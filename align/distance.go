package align

// EditDistance returns the Levenshtein distance between a and b: the number of
// single-base insertions, deletions and substitutions that turn a into b.
//
// Only two rows of the DP matrix are kept; row i holds the distances between
// a[:i] and every prefix of b.
func EditDistance(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			diagonal := prev[j-1]
			if a[i-1] != b[j-1] {
				diagonal++
			}
			down := prev[j] + 1
			right := cur[j-1] + 1
			best := diagonal
			if down < best {
				best = down
			}
			if right < best {
				best = right
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
