package inkwell

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// MergedTerm is one unit of the merge driver's output stream: a term
// assigned its final term-id together with its globally merged posting
// list, ready for the block writer.
type MergedTerm struct {
	Term     string
	TermID   uint32
	Postings PostingList
}

// ScanRunFiles globs *.idx files in dir and returns their paths sorted by
// name (spec §4.5/§4.7: merge processes run files in no particular order
// but deterministically given a set — sorting by name gives a stable,
// reproducible order). The sort is byte-wise, so with the SPIMI writer's
// "<counter>.idx" names it matches creation order only below ten runs
// ("10.idx" sorts before "2.idx").
func ScanRunFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.idx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// MergeRuns performs the external k-way merge over the run files at the
// given paths (spec §4.7), emitting one MergedTerm per distinct term in
// ascending lexicographic order with sequential term-ids starting at 1. It
// closes every iterator before returning, successfully or not.
func MergeRuns(paths []string, logger *slog.Logger) ([]MergedTerm, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(paths) == 0 {
		return nil, nil
	}

	iters := make([]*RunIterator, 0, len(paths))
	defer func() {
		for _, it := range iters {
			it.Close()
		}
	}()

	for _, p := range paths {
		it, err := OpenRunIterator(p)
		if err != nil {
			return nil, err
		}
		iters = append(iters, it)
	}

	var merged []MergedTerm
	var nextTermID uint32 = 1

	for {
		minTerm, any := minCurrentTerm(iters)
		if !any {
			break
		}

		var lists []PostingList
		for _, it := range iters {
			if it.done || it.CurrentTerm != minTerm {
				continue
			}
			lists = append(lists, it.CurrentPostings)
			it.Next()
			if it.Err() != nil {
				return nil, it.Err()
			}
		}

		combined := mergeAllPostingLists(lists)
		merged = append(merged, MergedTerm{Term: minTerm, TermID: nextTermID, Postings: combined})
		nextTermID++
	}

	logger.Info("merge complete", "terms", len(merged), "runs", len(paths))
	return merged, nil
}

// minCurrentTerm returns the lexicographically smallest CurrentTerm among
// non-exhausted iterators, and whether any iterator is still live.
func minCurrentTerm(iters []*RunIterator) (string, bool) {
	min := ""
	found := false
	for _, it := range iters {
		if it.done {
			continue
		}
		if !found || it.CurrentTerm < min {
			min = it.CurrentTerm
			found = true
		}
	}
	return min, found
}

// mergeAllPostingLists folds a set of same-term posting lists (one per run
// that had the term) into one globally ordered list, pairwise.
func mergeAllPostingLists(lists []PostingList) PostingList {
	var acc PostingList
	for _, l := range lists {
		acc = mergeTwoPostingLists(acc, l)
	}
	return acc
}

// mergeTwoPostingLists performs the classic two-pointer ascending-doc-id
// merge (grounded on original_source's positional_intersect.rs
// merge_postings): left wins on a doc-id tie. Per spec §4.7, ties should
// never actually occur across runs (each (term, doc-id) pair is produced
// by ingestion exactly once); if they do, only the left list's posting is
// kept and the right one's is dropped.
func mergeTwoPostingLists(a, b PostingList) PostingList {
	merged := make(PostingList, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].DocID < b[j].DocID:
			merged = append(merged, a[i])
			i++
		case a[i].DocID > b[j].DocID:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// RemoveRunFiles deletes the given run files, used after a successful
// merge when Config.DeleteRunsAfterMerge is set.
func RemoveRunFiles(paths []string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	return nil
}
