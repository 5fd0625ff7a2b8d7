package inkwell

import (
	"container/heap"
	"math"
)

// ScoredDoc pairs a document with its accumulated tf-idf score (spec §4.11
// step 7/8), grounded on original_source's scoring.rs ScoredDoc. Go's
// float64 comparisons never produce NaN for these scores (they are finite
// sums of finite products), so unlike the Rust original there is no need
// for a NaN-safe Ordering fallback; ties are broken by ascending doc-id for
// determinism, which the original leaves unspecified.
type ScoredDoc struct {
	DocID uint32
	Score float64
}

// IDF computes log10(N/df), the glossary's inverse-document-frequency
// formula. This is intentionally NOT the teacher's natural-log,
// BM25-smoothed calculateIDF (index.go/search.go) — spec.md names BM25 as a
// non-goal and calls for plain tf-idf instead (scoring.rs).
func IDF(totalDocs, df uint32) float64 {
	if df == 0 {
		return 0
	}
	return math.Log10(float64(totalDocs) / float64(df))
}

// TermFrequency is the number of positions a term occupies in one
// document's posting.
func TermFrequency(p Posting) float64 { return float64(len(p.Positions)) }

// TFIDFWeight is tf * idf for one (term, document) pair.
func TFIDFWeight(tf, idf float64) float64 { return tf * idf }

// scoredDocHeap is a max-heap by Score (container/heap's Pop removes the
// minimum by Less, so Less is inverted here to get a max-heap), matching
// scoring.rs's BinaryHeap<ScoredDoc> used for top-k selection.
type scoredDocHeap []ScoredDoc

func (h scoredDocHeap) Len() int { return len(h) }
func (h scoredDocHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].DocID < h[j].DocID
}
func (h scoredDocHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scoredDocHeap) Push(x any)        { *h = append(*h, x.(ScoredDoc)) }
func (h *scoredDocHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK returns the k highest-scoring docs from scores, highest first.
func TopK(scores map[uint32]float64, k int) []ScoredDoc {
	h := make(scoredDocHeap, 0, len(scores))
	for id, s := range scores {
		h = append(h, ScoredDoc{DocID: id, Score: s})
	}
	heap.Init(&h)

	if k > h.Len() || k <= 0 {
		k = h.Len()
	}
	out := make([]ScoredDoc, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, heap.Pop(&h).(ScoredDoc))
	}
	return out
}

// EuclideanNorm computes the Euclidean (L2) norm of a tf-idf weight
// vector, used for the document-length normalization spec.md's Open
// Questions resolve in favor of implementing (SPEC_FULL.md §C).
func EuclideanNorm(weights []float64) float64 {
	var sumSquares float64
	for _, w := range weights {
		sumSquares += w * w
	}
	return math.Sqrt(sumSquares)
}
