package inkwell

import (
	"sort"
	"testing"
)

func TestBKTreeExactMatch(t *testing.T) {
	tr := NewBKTree()
	tr.Add("search")
	got := tr.Find("search", 0)
	if len(got) != 1 || got[0] != "search" {
		t.Fatalf("Find(exact) = %v, want [search]", got)
	}
}

func TestBKTreeEditDistanceOne(t *testing.T) {
	tr := NewBKTree()
	tr.Add("search")
	tr.Add("engine")

	got := tr.Find("searcn", 1) // one substitution from "search"
	sort.Strings(got)
	found := false
	for _, w := range got {
		if w == "search" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Find(searcn, 1) = %v, want to include search", got)
	}
	for _, w := range got {
		if w == "engine" {
			t.Fatalf("Find(searcn, 1) incorrectly matched unrelated word %q", w)
		}
	}
}

func TestBKTreeBeyondMaxDistanceExcluded(t *testing.T) {
	tr := NewBKTree()
	tr.Add("search")
	got := tr.Find("zzzzzzzz", 1)
	if len(got) != 0 {
		t.Fatalf("Find() beyond max distance = %v, want empty", got)
	}
}

func TestBKTreeDuplicateInsertIsNoop(t *testing.T) {
	tr := NewBKTree()
	tr.Add("search")
	tr.Add("search")
	got := tr.Find("search", 0)
	if len(got) != 1 {
		t.Fatalf("duplicate Add produced %d matches, want 1", len(got))
	}
}

func TestTermDirectorySuggestFallback(t *testing.T) {
	td := NewTermDirectory()
	td.SetTermID("search", 1)
	td.SetTermFrequency("search", 3)
	td.SetBlockIDs("search", []uint32{0})

	if _, ok := td.GetMetadata("serch"); ok {
		t.Fatalf("misspelled term should not be directly present")
	}

	suggestions := td.Suggest("serch", 2)
	found := false
	for _, s := range suggestions {
		if s == "search" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Suggest(serch, 2) = %v, want to include search", suggestions)
	}
}

func TestTermDirectoryPopulateFromMergeTwoPhases(t *testing.T) {
	td := NewTermDirectory()
	td.SetTermID("apple", 1)
	td.SetTermID("mango", 2)

	info := map[uint32]*TermBlockInfo{
		1: {BlockIDs: []uint32{0, 1}, DF: 5},
		2: {BlockIDs: []uint32{0}, DF: 2},
	}
	td.PopulateFromMerge(info)

	meta, ok := td.GetMetadata("apple")
	if !ok {
		t.Fatalf("apple metadata missing after PopulateFromMerge")
	}
	if meta.TermFrequency != 5 || len(meta.BlockIDs) != 2 {
		t.Fatalf("apple metadata = %+v, want df=5 blockIDs len 2", meta)
	}
}
