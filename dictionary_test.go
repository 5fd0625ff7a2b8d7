package inkwell

import "testing"

func TestDictionaryByteSizeMonotonic(t *testing.T) {
	d := NewDictionary(1 << 20)
	prev := d.ByteSize()
	d.Append("rust", Posting{DocID: 1, Positions: []uint32{0}})
	if d.ByteSize() <= prev {
		t.Fatalf("byte size did not grow on new term+posting")
	}
	prev = d.ByteSize()
	d.Append("rust", Posting{DocID: 2, Positions: []uint32{0, 1}})
	if d.ByteSize() <= prev {
		t.Fatalf("byte size did not grow on new posting")
	}
}

func TestDictionarySortTerms(t *testing.T) {
	d := NewDictionary(1 << 20)
	d.AddTerm("zebra")
	d.AddTerm("apple")
	d.AddTerm("mango")
	got := d.SortTerms()
	want := []string{"apple", "mango", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortTerms() = %v, want %v", got, want)
		}
	}
}

func TestDictionaryShouldFlush(t *testing.T) {
	d := NewDictionary(10)
	if d.ShouldFlush() {
		t.Fatalf("empty dictionary should not need a flush")
	}
	d.Append("a-long-term-name", Posting{DocID: 1, Positions: []uint32{0, 1, 2}})
	if !d.ShouldFlush() {
		t.Fatalf("dictionary should have exceeded its tiny threshold")
	}
	d.Clear()
	if d.ShouldFlush() || d.Len() != 0 {
		t.Fatalf("Clear() did not reset state")
	}
}
