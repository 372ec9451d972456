package matching

import (
	"slices"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/giygas/interactions-api/interfaces"
)

// DefaultSymptomCutoff is the minimum ratio a symptom match must reach
const DefaultSymptomCutoff = 0.5

// Compile-time check to ensure SymptomResolver implements FuzzyResolver
var _ interfaces.FuzzyResolver = (*SymptomResolver)(nil)

// SymptomResolver resolves symptom names by Ratcliff/Obershelp similarity
type SymptomResolver struct {
	names  []string
	runes  [][]rune
	cutoff float64
}

// NewSymptomResolver builds a resolver over the canonical symptom names
func NewSymptomResolver(names []string, cutoff float64) *SymptomResolver {
	r := &SymptomResolver{
		names:  slices.Clone(names),
		runes:  make([][]rune, len(names)),
		cutoff: cutoff,
	}
	for i, name := range names {
		r.runes[i] = []rune(name)
	}
	return r
}

// Resolve returns the single closest symptom whose ratio reaches the cutoff.
// Equal ratios go to the lexicographically greatest name.
func (r *SymptomResolver) Resolve(text string) entities.MatchResult {
	query := []rune(catalog.NormalizeName(text))
	if len(query) == 0 {
		return entities.Unresolved()
	}

	best, bestScore := -1, 0.0
	for i, candidate := range r.runes {
		score := Ratio(candidate, query)
		if score < r.cutoff {
			continue
		}
		if best < 0 || score > bestScore || (score == bestScore && r.names[i] > r.names[best]) {
			best, bestScore = i, score
		}
	}

	if best < 0 {
		return entities.Unresolved()
	}
	return entities.Matched(r.names[best])
}

// Cutoff returns the acceptance cutoff
func (r *SymptomResolver) Cutoff() float64 {
	return r.cutoff
}

// Ratio returns 2*M/T where M is the number of characters in the matching
// blocks found by recursive longest-common-substring search and T is the
// combined length. Two empty sequences are identical (1.0).
func Ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingCharacters(a, b)) / float64(total)
}

func matchingCharacters(a, b []rune) int {
	positions := make(map[rune][]int)
	for j, c := range b {
		positions[c] = append(positions[c], j)
	}

	matched := 0
	queue := [][4]int{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		alo, ahi, blo, bhi := q[0], q[1], q[2], q[3]

		i, j, k := longestMatch(a, positions, alo, ahi, blo, bhi)
		if k == 0 {
			continue
		}
		matched += k
		if alo < i && blo < j {
			queue = append(queue, [4]int{alo, i, blo, j})
		}
		if i+k < ahi && j+k < bhi {
			queue = append(queue, [4]int{i + k, ahi, j + k, bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the given
// bounds, preferring the earliest start in a, then in b.
func longestMatch(a []rune, positions map[rune][]int, alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestSize := alo, blo, 0
	lengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
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
