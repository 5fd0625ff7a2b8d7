package inkwell

import (
	"os"
	"sync"
)

// IndexReader holds the final index file handle open for query-time block
// reads. Per spec §5, a query coordinator may guard the single handle with
// an exclusive section around each block read (the conforming choice taken
// here), or an implementation may open separate handles per worker; this
// type takes the single-shared-handle-with-mutex option.
type IndexReader struct {
	mu        sync.Mutex
	f         *os.File
	blockSize int
}

// OpenIndexReader opens path read-only for query-time block reads.
func OpenIndexReader(path string, blockSize int) (*IndexReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &IndexReader{f: f, blockSize: blockSize}, nil
}

// Close releases the underlying file handle.
func (r *IndexReader) Close() error { return r.f.Close() }

// ReadTermPostings loads every posting for termID across blockIDs,
// decoding each block's chunks for that term in block order and
// concatenating them (spec §4.11 step 4/5: blocks are listed in the
// term-directory entry in document order, so concatenation preserves the
// global ascending-doc-id invariant).
func (r *IndexReader) ReadTermPostings(termID uint32, blockIDs []uint32) (PostingList, error) {
	var all PostingList
	for _, blockID := range blockIDs {
		r.mu.Lock()
		block, err := OpenBlock(r.f, blockID, r.blockSize)
		r.mu.Unlock()
		if err != nil {
			return nil, err
		}

		idx := block.TermExists(termID)
		if idx < 0 {
			continue
		}
		chunks, err := block.DecodeChunksForTerm(idx)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			all = append(all, c.Postings...)
		}
	}
	return all, nil
}
