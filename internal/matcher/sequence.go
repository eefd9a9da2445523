// file: internal/matcher/sequence.go
// version: 1.0.0
// guid: 7041252b-5a73-4956-a063-3d52cdfe2d59

package matcher

// sequenceRatio measures similarity between two strings in [0,1] using the
// Ratcliff/Obershelp algorithm: twice the total length of all recursively
// found longest common blocks, divided by the combined length. Two empty
// strings compare as identical. Operates on runes so multibyte names score
// the same as their ASCII equivalents.
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	m := newBlockMatcher(ra, rb)
	return 2.0 * float64(m.matchTotal()) / float64(total)
}

type blockMatcher struct {
	a, b []rune
	// b2j maps each rune in b to its ascending positions.
	b2j map[rune][]int
}

func newBlockMatcher(a, b []rune) *blockMatcher {
	m := &blockMatcher{a: a, b: b, b2j: make(map[rune][]int, len(b))}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	return m
}

// longestMatch finds the longest block of equal runes inside a[alo:ahi] and
// b[blo:bhi]. Ties resolve to the block starting earliest in a, then
// earliest in b.
func (m *blockMatcher) longestMatch(alo, ahi, blo, bhi int) (besti, bestj, bestSize int) {
	besti, bestj = alo, blo
	lengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return besti, bestj, bestSize
}

// matchTotal sums the sizes of all matching blocks. Regions to the left and
// right of each longest match are searched iteratively with an explicit
// stack instead of recursion.
func (m *blockMatcher) matchTotal() int {
	type region struct {
		alo, ahi, blo, bhi int
	}
	stack := []region{{0, len(m.a), 0, len(m.b)}}
	total := 0
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, k := m.longestMatch(r.alo, r.ahi, r.blo, r.bhi)
		if k == 0 {
			continue
		}
		total += k
		if r.alo < i && r.blo < j {
			stack = append(stack, region{r.alo, i, r.blo, j})
		}
		if i+k < r.ahi && j+k < r.bhi {
			stack = append(stack, region{i + k, r.ahi, j + k, r.bhi})
		}
	}
	return total
}
