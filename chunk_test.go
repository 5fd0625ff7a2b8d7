package inkwell

import (
	"reflect"
	"testing"
)

func TestChunkEncodeDecodeSingleTerm(t *testing.T) {
	c := NewChunk(128)
	postings := PostingList{
		{DocID: 1, Positions: []uint32{0, 2}},
		{DocID: 5, Positions: []uint32{1}},
		{DocID: 9, Positions: []uint32{0, 1, 2}},
	}
	for _, p := range postings {
		if err := c.Add(p); err != nil {
			t.Fatalf("Add(%+v): %v", p, err)
		}
	}
	encoded := c.Encode()

	dc, consumed, ok, err := DecodeChunk(encoded)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for a real chunk")
	}
	if consumed != len(encoded) {
		t.Fatalf("consumed %d, want %d", consumed, len(encoded))
	}
	if dc.MaxDocID != 9 {
		t.Fatalf("MaxDocID = %d, want 9", dc.MaxDocID)
	}
	if !reflect.DeepEqual(dc.Postings, postings) {
		t.Fatalf("decoded %+v, want %+v", dc.Postings, postings)
	}
}

func TestChunkZeroSizeIsPadding(t *testing.T) {
	buf := make([]byte, 16) // all zero
	_, _, ok, err := DecodeChunk(buf)
	if err != nil {
		t.Fatalf("unexpected error on padding: %v", err)
	}
	if ok {
		t.Fatalf("a zero size-of-chunk must report ok=false (padding), not a real chunk")
	}
}

func TestChunk128PostingsRemainsOneChunk(t *testing.T) {
	c := NewChunk(128)
	for i := 1; i <= 128; i++ {
		if err := c.Add(Posting{DocID: uint32(i), Positions: []uint32{1}}); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
		if c.Full() && i != 128 {
			t.Fatalf("chunk reported full at %d postings, expected exactly at 128", i)
		}
	}
	if !c.Full() {
		t.Fatalf("chunk with 128 postings should report Full()")
	}
}

func TestChunkAddRejectsNonAscendingDocID(t *testing.T) {
	c := NewChunk(128)
	if err := c.Add(Posting{DocID: 5, Positions: []uint32{0}}); err != nil {
		t.Fatalf("Add(5): %v", err)
	}
	if err := c.Add(Posting{DocID: 3, Positions: []uint32{0}}); err != ErrValueOverflow {
		t.Fatalf("Add(3) after Add(5) error = %v, want ErrValueOverflow", err)
	}
}
