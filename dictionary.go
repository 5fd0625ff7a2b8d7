package inkwell

import "sort"

// DefaultMaxDictionaryBytes is the SPIMI flush threshold used when a
// Dictionary is constructed directly (outside of Config wiring).
const DefaultMaxDictionaryBytes = 10_000_000

// Dictionary is the per-run, in-memory term→postings accumulator driven by
// SPIMI ingestion (spec §4.4). It tracks an estimated byte size that
// monotonically increases as terms and postings are appended, so the SPIMI
// loop can decide deterministically when to flush.
type Dictionary struct {
	terms   map[string]PostingList
	maxSize int64
	size    int64
}

// NewDictionary creates an empty Dictionary with the given flush threshold.
func NewDictionary(maxSize int64) *Dictionary {
	if maxSize <= 0 {
		maxSize = DefaultMaxDictionaryBytes
	}
	return &Dictionary{
		terms:   make(map[string]PostingList),
		maxSize: maxSize,
	}
}

// AddTerm registers term with an empty posting list if it is not already
// present. It is a no-op if the term already exists.
func (d *Dictionary) AddTerm(term string) {
	if _, ok := d.terms[term]; ok {
		return
	}
	d.terms[term] = nil
	d.size += int64(4 + len(term))
}

// Append adds one posting to term's list, creating the term first if
// necessary, and grows the accounted byte size by 4 + 4*len(positions).
func (d *Dictionary) Append(term string, p Posting) {
	d.AddTerm(term)
	d.terms[term] = append(d.terms[term], p)
	d.size += int64(4 + 4*len(p.Positions))
}

// Contains reports whether term has been registered in this dictionary.
func (d *Dictionary) Contains(term string) bool {
	_, ok := d.terms[term]
	return ok
}

// Get returns the posting list accumulated so far for term.
func (d *Dictionary) Get(term string) PostingList {
	return d.terms[term]
}

// SortTerms returns every registered term name in ascending lexicographic
// (byte-wise) order.
func (d *Dictionary) SortTerms() []string {
	names := make([]string, 0, len(d.terms))
	for t := range d.terms {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

// ByteSize returns the current accounted byte size estimate.
func (d *Dictionary) ByteSize() int64 { return d.size }

// MaxSize returns the flush threshold.
func (d *Dictionary) MaxSize() int64 { return d.maxSize }

// ShouldFlush reports whether ByteSize has reached MaxSize.
func (d *Dictionary) ShouldFlush() bool { return d.size >= d.maxSize }

// Clear empties the dictionary and resets the byte size, so it can be
// reused for the next run.
func (d *Dictionary) Clear() {
	d.terms = make(map[string]PostingList)
	d.size = 0
}

// Len reports the number of distinct terms currently registered.
func (d *Dictionary) Len() int { return len(d.terms) }
