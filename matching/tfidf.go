// Package matching implements the fuzzy resolvers that map free text to
// canonical catalog names: a TF-IDF cosine model for drug names and a
// sequence-similarity ratio for symptoms.
package matching

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/giygas/interactions-api/interfaces"
)

// DefaultNameThreshold is the cosine similarity a drug match must exceed
const DefaultNameThreshold = 0.6

// Character n-gram range used for drug name features
const (
	minGram = 2
	maxGram = 3
)

// Compile-time check to ensure NameResolver implements FuzzyResolver
var _ interfaces.FuzzyResolver = (*NameResolver)(nil)

type weightedTerm struct {
	term   int
	weight float64
}

// sparseVector is an L2-normalised vector ordered by term index
type sparseVector []weightedTerm

// NameResolver resolves drug names with a TF-IDF model fitted on the catalog
// names themselves. It is immutable after construction.
type NameResolver struct {
	names      []string
	vocabulary map[string]int
	idf        []float64
	vectors    []sparseVector
	threshold  float64
}

// NewNameResolver fits the vector-space model over names. Resolution ties
// go to the earliest name.
func NewNameResolver(names []string, threshold float64) *NameResolver {
	r := &NameResolver{
		names:      slices.Clone(names),
		vocabulary: make(map[string]int),
		threshold:  threshold,
	}

	counts := make([]map[string]int, len(names))
	documentFrequency := make(map[string]int)
	for i, name := range names {
		counts[i] = countNgrams(catalog.NormalizeName(name))
		for gram := range counts[i] {
			documentFrequency[gram]++
		}
	}

	// Sorted vocabulary keeps term indices stable between runs
	terms := slices.Sorted(maps.Keys(documentFrequency))
	r.idf = make([]float64, len(terms))
	n := float64(len(names))
	for i, term := range terms {
		r.vocabulary[term] = i
		r.idf[i] = math.Log((1+n)/(1+float64(documentFrequency[term]))) + 1
	}

	r.vectors = make([]sparseVector, len(names))
	for i := range names {
		r.vectors[i] = r.vectorize(counts[i])
	}

	return r
}

// Resolve returns the closest drug name, or unresolved when the best cosine
// similarity does not exceed the threshold.
func (r *NameResolver) Resolve(text string) entities.MatchResult {
	query := r.vectorize(countNgrams(catalog.NormalizeName(text)))
	if len(query) == 0 {
		return entities.Unresolved()
	}

	best, bestScore := -1, 0.0
	for i, v := range r.vectors {
		if score := dot(query, v); best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore <= r.threshold {
		return entities.Unresolved()
	}
	return entities.Matched(r.names[best])
}

// Threshold returns the acceptance threshold
func (r *NameResolver) Threshold() float64 {
	return r.threshold
}

// vectorize projects n-gram counts onto the fitted vocabulary.
// Out-of-vocabulary n-grams are dropped.
func (r *NameResolver) vectorize(counts map[string]int) sparseVector {
	v := make(sparseVector, 0, len(counts))
	for gram, count := range counts {
		if idx, ok := r.vocabulary[gram]; ok {
			v = append(v, weightedTerm{term: idx, weight: float64(count) * r.idf[idx]})
		}
	}
	if len(v) == 0 {
		return nil
	}

	slices.SortFunc(v, func(a, b weightedTerm) int { return a.term - b.term })

	var sum float64
	for _, t := range v {
		sum += t.weight * t.weight
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i].weight /= norm
	}
	return v
}

func dot(a, b sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			sum += a[i].weight * b[j].weight
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	return sum
}

// countNgrams extracts character n-grams from each whitespace separated word,
// padded with a space on both sides.
func countNgrams(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(text) {
		padded := []rune(" " + word + " ")
		for n := minGram; n <= maxGram; n++ {
			if len(padded) < n {
				counts[string(padded)]++
				continue
			}
			for i := 0; i+n <= len(padded); i++ {
				counts[string(padded[i:i+n])]++
			}
		}
	}
	return counts
}
