package inkwell

import (
	"encoding/binary"
	"os"
	"sort"
)

// blockEntryHeaderSize is the 6 bytes (u32 term-id + u16 term-offset) a new
// term adds to a block's header.
const blockEntryHeaderSize = 6

// Block is the ≤max-block-size on-disk container of chunks from one or
// more terms (spec §3/§4.8/§4.9). A Block read from disk owns a fixed-size
// buffer exactly MaxBlockSizeBytes long (the last block is padded to this
// size, so block-id = file-offset / max-block-size).
type Block struct {
	TermIDs     []uint32
	TermOffsets []uint16 // byte offset within the block, one per TermIDs entry
	buf         []byte    // raw block bytes, length == block size
}

// OpenBlock reads block number blockID from an already-open final index
// file handle.
func OpenBlock(f *os.File, blockID uint32, blockSize int) (*Block, error) {
	buf := make([]byte, blockSize)
	if _, err := f.ReadAt(buf, int64(blockID)*int64(blockSize)); err != nil {
		return nil, err
	}
	return parseBlock(buf)
}

func parseBlock(buf []byte) (*Block, error) {
	if len(buf) < 4 {
		return nil, ErrCorruptBlock
	}
	n := binary.LittleEndian.Uint32(buf[0:4])
	headerEnd := 4 + 6*int(n)
	if headerEnd > len(buf) {
		return nil, ErrCorruptBlock
	}

	termIDs := make([]uint32, n)
	offsets := make([]uint16, n)
	for i := 0; i < int(n); i++ {
		off := 4 + 4*i
		termIDs[i] = binary.LittleEndian.Uint32(buf[off : off+4])
	}
	offBase := 4 + 4*int(n)
	for i := 0; i < int(n); i++ {
		off := offBase + 2*i
		offsets[i] = binary.LittleEndian.Uint16(buf[off : off+2])
	}

	return &Block{TermIDs: termIDs, TermOffsets: offsets, buf: buf}, nil
}

// TermExists binary-searches TermIDs for termID and returns its index, or
// -1 if absent (spec §4.9).
func (b *Block) TermExists(termID uint32) int {
	i := sort.Search(len(b.TermIDs), func(i int) bool { return b.TermIDs[i] >= termID })
	if i < len(b.TermIDs) && b.TermIDs[i] == termID {
		return i
	}
	return -1
}

// DecodeChunksForTerm decodes every chunk belonging to the term at the
// given index (as returned by TermExists), stopping at the next term's
// offset or at a zero size-of-chunk (padding).
func (b *Block) DecodeChunksForTerm(index int) ([]DecodedChunk, error) {
	start := int(b.TermOffsets[index])
	end := len(b.buf)
	if index+1 < len(b.TermOffsets) {
		end = int(b.TermOffsets[index+1])
	}

	var chunks []DecodedChunk
	data := b.buf[start:end]
	for len(data) > 0 {
		dc, consumed, ok, err := DecodeChunk(data)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		chunks = append(chunks, dc)
		data = data[consumed:]
	}
	return chunks, nil
}
