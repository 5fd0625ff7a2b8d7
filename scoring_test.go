package inkwell

import "testing"

func TestIDFZeroWhenTermInEveryDocument(t *testing.T) {
	if got := IDF(10, 10); got != 0 {
		t.Fatalf("IDF(10,10) = %v, want 0", got)
	}
}

func TestIDFZeroDocFrequencyIsZero(t *testing.T) {
	if got := IDF(10, 0); got != 0 {
		t.Fatalf("IDF(10,0) = %v, want 0 (guarded against divide-by-zero)", got)
	}
}

func TestIDFDecreasesAsDocFrequencyRises(t *testing.T) {
	rare := IDF(100, 1)
	common := IDF(100, 50)
	if !(rare > common) {
		t.Fatalf("IDF(100,1)=%v should exceed IDF(100,50)=%v", rare, common)
	}
}

func TestEuclideanNormPythagorean(t *testing.T) {
	if got := EuclideanNorm([]float64{3, 4}); got != 5 {
		t.Fatalf("EuclideanNorm([3,4]) = %v, want 5", got)
	}
}

func TestTopKOrdersDescendingByScore(t *testing.T) {
	scores := map[uint32]float64{1: 0.5, 2: 2.0, 3: 1.0}
	got := TopK(scores, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].DocID != 2 || got[1].DocID != 3 {
		t.Fatalf("TopK order = %+v, want doc 2 then doc 3", got)
	}
}

func TestTopKTieBreaksByAscendingDocID(t *testing.T) {
	scores := map[uint32]float64{5: 1.0, 2: 1.0, 9: 1.0}
	got := TopK(scores, 3)
	if got[0].DocID != 2 || got[1].DocID != 5 || got[2].DocID != 9 {
		t.Fatalf("TopK tie order = %+v, want ascending doc-id 2,5,9", got)
	}
}

func TestTopKClampsToAvailableResults(t *testing.T) {
	scores := map[uint32]float64{1: 1.0}
	got := TopK(scores, 50)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1 (clamped to map size)", len(got))
	}
}
