package inkwell

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSingleTermBlocks(t *testing.T, cfg Config, termID uint32, postings PostingList) (*IndexReader, map[uint32]*TermBlockInfo) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final.idx")
	cfg.FinalIndexPath = path

	bw, err := NewBlockWriter(path, cfg)
	if err != nil {
		t.Fatalf("NewBlockWriter: %v", err)
	}
	if err := bw.AddTerm(MergedTerm{Term: "x", TermID: termID, Postings: postings}); err != nil {
		t.Fatalf("AddTerm: %v", err)
	}
	info, err := bw.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	reader, err := OpenIndexReader(path, cfg.MaxBlockSizeBytes())
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	t.Cleanup(func() { reader.Close(); os.Remove(path) })
	return reader, info
}

// S4 — Chunk split: 150 postings of one term must span ≥2 chunks whose
// concatenated decoded postings equal the input exactly.
func TestChunkSplitAtOneFiftyPostings(t *testing.T) {
	cfg := DefaultConfig()
	var postings PostingList
	for i := 1; i <= 150; i++ {
		postings = append(postings, Posting{DocID: uint32(i), Positions: []uint32{1}})
	}

	reader, info := writeSingleTermBlocks(t, cfg, 1, postings)
	blockIDs := info[1].BlockIDs

	chunkCount := 0
	for _, id := range blockIDs {
		block, err := OpenBlock(reader.f, id, cfg.MaxBlockSizeBytes())
		if err != nil {
			t.Fatalf("OpenBlock(%d): %v", id, err)
		}
		idx := block.TermExists(1)
		if idx < 0 {
			t.Fatalf("term-id 1 missing from listed block %d", id)
		}
		chunks, err := block.DecodeChunksForTerm(idx)
		if err != nil {
			t.Fatalf("DecodeChunksForTerm: %v", err)
		}
		chunkCount += len(chunks)
	}
	if chunkCount < 2 {
		t.Fatalf("expected ≥2 chunks, got %d", chunkCount)
	}

	got, err := reader.ReadTermPostings(1, blockIDs)
	if err != nil {
		t.Fatalf("ReadTermPostings: %v", err)
	}
	if len(got) != len(postings) {
		t.Fatalf("got %d postings, want %d", len(got), len(postings))
	}
	for i := range postings {
		if !reflect.DeepEqual(got[i], postings[i]) {
			t.Fatalf("posting %d: got %+v, want %+v", i, got[i], postings[i])
		}
	}
}

// S5 — Block split: with a 1KB max block size, 500 postings of 10
// positions each must span ≥2 blocks; decoding all listed blocks in order
// must reproduce the original posting list.
func TestBlockSplitAtSmallBlockSize(t *testing.T) {
	cfg := DefaultConfig(WithMaxBlockSizeKB(1))
	var postings PostingList
	for i := 1; i <= 500; i++ {
		positions := make([]uint32, 10)
		for j := range positions {
			positions[j] = uint32(j)
		}
		postings = append(postings, Posting{DocID: uint32(i), Positions: positions})
	}

	reader, info := writeSingleTermBlocks(t, cfg, 7, postings)
	blockIDs := info[7].BlockIDs
	if len(blockIDs) < 2 {
		t.Fatalf("expected ≥2 block-ids, got %d", len(blockIDs))
	}

	got, err := reader.ReadTermPostings(7, blockIDs)
	if err != nil {
		t.Fatalf("ReadTermPostings: %v", err)
	}
	if len(got) != len(postings) {
		t.Fatalf("got %d postings, want %d", len(got), len(postings))
	}
	for i := range postings {
		if !reflect.DeepEqual(got[i], postings[i]) {
			t.Fatalf("posting %d: got %+v, want %+v", i, got[i], postings[i])
		}
	}
}

func TestBlockTermExistsBinarySearch(t *testing.T) {
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "final.idx")
	cfg.FinalIndexPath = path

	bw, err := NewBlockWriter(path, cfg)
	if err != nil {
		t.Fatalf("NewBlockWriter: %v", err)
	}
	terms := []MergedTerm{
		{Term: "a", TermID: 1, Postings: PostingList{{DocID: 1, Positions: []uint32{0}}}},
		{Term: "b", TermID: 5, Postings: PostingList{{DocID: 1, Positions: []uint32{0}}}},
		{Term: "c", TermID: 9, Postings: PostingList{{DocID: 1, Positions: []uint32{0}}}},
	}
	for _, mt := range terms {
		if err := bw.AddTerm(mt); err != nil {
			t.Fatalf("AddTerm: %v", err)
		}
	}
	if _, err := bw.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	block, err := OpenBlock(f, 0, cfg.MaxBlockSizeBytes())
	if err != nil {
		t.Fatalf("OpenBlock: %v", err)
	}
	if block.TermExists(5) < 0 {
		t.Errorf("expected term-id 5 to be found")
	}
	if block.TermExists(3) >= 0 {
		t.Errorf("expected term-id 3 (absent) to report -1")
	}
}
