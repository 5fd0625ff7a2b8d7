package inkwell

import (
	"bufio"
	"encoding/binary"
	"os"
)

// TermBlockInfo is the per-term-id bookkeeping the block writer hands back
// to the term directory after a merge: every block the term's chunks ended
// up in, in the order they were written.
type TermBlockInfo struct {
	BlockIDs []uint32
	DF       uint32 // document frequency: count of postings merged for this term
}

// BlockWriter lays out a stream of MergedTerm records into fixed-size
// blocks (spec §4.8), writing the finished final index to disk as it goes.
//
// Term-offsets are only computed at flush time (encode), once a block's
// final term count and per-term chunk-byte totals are known — not
// incrementally as terms are added — since adding a new term mid-block
// grows the header and would invalidate any offset computed earlier.
// AddTerm otherwise implements the space-accounting state machine ported
// from index_merge_writer.rs: before starting a new term's first chunk, it
// requires room for a new term-header entry (6 bytes) plus a new chunk
// header (8 bytes); before each posting, it requires room for the
// posting's own encoded size plus the chunk's still-unwritten terminator
// byte. Either check failing flushes the current block and starts a new
// one, re-recording the term as continuing there.
type BlockWriter struct {
	f    *os.File
	w    *bufio.Writer
	cfg  Config
	info map[uint32]*TermBlockInfo

	blockID     uint32
	curTermIDs  []uint32
	curChunks   map[uint32][]byte // finalized, encoded chunks concatenated per term-id
	activeChunk *Chunk
	activeTerm  uint32
	haveActive  bool
}

// NewBlockWriter creates a writer that truncates/creates path for the final
// index.
func NewBlockWriter(path string, cfg Config) (*BlockWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &BlockWriter{
		f:         f,
		w:         bufio.NewWriter(f),
		cfg:       cfg,
		info:      make(map[uint32]*TermBlockInfo),
		curChunks: make(map[uint32][]byte),
	}, nil
}

func (bw *BlockWriter) headerSize() int { return 4 + blockEntryHeaderSize*len(bw.curTermIDs) }

// bodySize returns the total bytes of finalized chunks written so far in
// the current block, across all terms.
func (bw *BlockWriter) bodySize() int {
	total := 0
	for _, c := range bw.curChunks {
		total += len(c)
	}
	return total
}

func (bw *BlockWriter) currentSize() int { return bw.headerSize() + bw.bodySize() }

// AddTerm writes one merged term's full posting list into the block
// stream, splitting into chunks (≤ PostingsPerChunk postings each) and
// blocks (≤ MaxBlockSizeBytes) as needed.
func (bw *BlockWriter) AddTerm(mt MergedTerm) error {
	if err := bw.beginChunk(mt.TermID); err != nil {
		return err
	}

	for _, p := range mt.Postings {
		if bw.activeChunk.Full() {
			if err := bw.finalizeChunk(); err != nil {
				return err
			}
			if err := bw.beginChunk(mt.TermID); err != nil {
				return err
			}
		}

		postingSize, err := bw.activeChunk.PostingSize(p)
		if err != nil {
			return err
		}
		// SizeOfChunk already counts the doc-id-stream terminator.
		if bw.currentSize()+bw.activeChunk.SizeOfChunk()+postingSize > bw.cfg.MaxBlockSizeBytes() {
			if bw.activeChunk.Count() == 0 && len(bw.curChunks[mt.TermID]) == 0 {
				// None of this term's postings fit in this block: drop the
				// header entry beginChunk added so no term is left without
				// a chunk.
				if last := len(bw.curTermIDs) - 1; last >= 0 && bw.curTermIDs[last] == mt.TermID {
					bw.curTermIDs = bw.curTermIDs[:last]
				}
			}
			if err := bw.finalizeChunk(); err != nil {
				return err
			}
			if err := bw.flushBlock(); err != nil {
				return err
			}
			if err := bw.beginChunk(mt.TermID); err != nil {
				return err
			}
		}

		if err := bw.activeChunk.Add(p); err != nil {
			return err
		}
	}

	return bw.finalizeChunk()
}

// termInBlock reports whether termID already has a header entry in the
// block currently being accumulated.
func (bw *BlockWriter) termInBlock(termID uint32) bool {
	for _, id := range bw.curTermIDs {
		if id == termID {
			return true
		}
	}
	return false
}

// newChunkCost is the header bytes a new chunk for termID would add to
// the block: 8 bytes for the chunk's own size-of-chunk/max-doc-id header,
// plus a further 6-byte term-header entry (u32 term-id + u16 term-offset)
// if termID has no header entry in this block yet.
func (bw *BlockWriter) newChunkCost(termID uint32) int {
	cost := chunkHeaderSize
	if !bw.termInBlock(termID) {
		cost += blockEntryHeaderSize
	}
	return cost
}

// beginChunk implements spec §4.8's "before appending, require
// current-block-size + 6 (new term header) + 8 (new chunk header) ≤ max"
// check: it must run, and flush the current block if needed, BEFORE
// curTermIDs is mutated or a chunk is started — otherwise a term's header
// entry could be committed to a block that has no room left for any of
// its chunk bytes.
func (bw *BlockWriter) beginChunk(termID uint32) error {
	if bw.currentSize()+bw.newChunkCost(termID) > bw.cfg.MaxBlockSizeBytes() {
		if err := bw.flushBlock(); err != nil {
			return err
		}
	}

	if !bw.termInBlock(termID) {
		bw.curTermIDs = append(bw.curTermIDs, termID)
	}

	bw.activeTerm = termID
	bw.activeChunk = NewChunk(bw.cfg.PostingsPerChunk)
	bw.haveActive = true
	return nil
}

func (bw *BlockWriter) finalizeChunk() error {
	if bw.activeChunk == nil || bw.activeChunk.Count() == 0 {
		bw.activeChunk = nil
		bw.haveActive = false
		return nil
	}
	encoded := bw.activeChunk.Encode()
	bw.curChunks[bw.activeTerm] = append(bw.curChunks[bw.activeTerm], encoded...)

	info := bw.info[bw.activeTerm]
	if info == nil {
		info = &TermBlockInfo{}
		bw.info[bw.activeTerm] = info
	}
	if len(info.BlockIDs) == 0 || info.BlockIDs[len(info.BlockIDs)-1] != bw.blockID {
		info.BlockIDs = append(info.BlockIDs, bw.blockID)
	}
	info.DF += uint32(bw.activeChunk.Count())

	bw.activeChunk = nil
	bw.haveActive = false
	return nil
}

// flushBlock writes out the current block's header and chunk bytes,
// computing term-offsets now that the final per-block term count and
// chunk sizes are known, padded to MaxBlockSizeBytes, and resets writer
// state for a new block.
func (bw *BlockWriter) flushBlock() error {
	if len(bw.curTermIDs) == 0 {
		return nil
	}

	blockSize := bw.cfg.MaxBlockSizeBytes()
	out := make([]byte, 0, blockSize)

	n := len(bw.curTermIDs)
	headerEnd := 4 + blockEntryHeaderSize*n

	var nBuf [4]byte
	binary.LittleEndian.PutUint32(nBuf[:], uint32(n))
	out = append(out, nBuf[:]...)
	for _, id := range bw.curTermIDs {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], id)
		out = append(out, b[:]...)
	}

	offset := headerEnd
	offsets := make([]uint16, n)
	for i, id := range bw.curTermIDs {
		offsets[i] = uint16(offset)
		offset += len(bw.curChunks[id])
	}
	for _, off := range offsets {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], off)
		out = append(out, b[:]...)
	}

	for _, id := range bw.curTermIDs {
		out = append(out, bw.curChunks[id]...)
	}

	if len(out) > blockSize {
		return ErrBlockOverflow
	}
	padded := make([]byte, blockSize)
	copy(padded, out)

	if _, err := bw.w.Write(padded); err != nil {
		return err
	}

	bw.blockID++
	bw.curTermIDs = nil
	bw.curChunks = make(map[uint32][]byte)
	return nil
}

// Finish flushes any partial final block and closes the underlying file,
// returning the per-term-id block/frequency bookkeeping for the term
// directory's phase-B population (spec §4.10).
func (bw *BlockWriter) Finish() (map[uint32]*TermBlockInfo, error) {
	if err := bw.finalizeChunk(); err != nil {
		return nil, err
	}
	if err := bw.flushBlock(); err != nil {
		return nil, err
	}
	if err := bw.w.Flush(); err != nil {
		return nil, err
	}
	if err := bw.f.Close(); err != nil {
		return nil, err
	}
	return bw.info, nil
}
