package inkwell

import "encoding/binary"

// chunkHeaderSize is the 8 bytes of u32 size-of-chunk + u32 max-doc-id that
// precede every chunk's body on disk.
const chunkHeaderSize = 8

// Chunk accumulates up to PostingsPerChunk postings for one term within one
// block (spec §3/§4.8). docIDs is the VB-delta doc-id stream (not yet
// terminated); positions is the concatenated per-posting VB-delta position
// streams, each already 0x00-terminated.
type Chunk struct {
	docIDs    []byte
	positions []byte
	maxDocID  uint32
	lastDocID uint32
	count     int
	cap       int
}

// NewChunk creates an empty chunk with the given posting cap (spec default
// 128, Config.PostingsPerChunk).
func NewChunk(cap int) *Chunk {
	if cap <= 0 {
		cap = 128
	}
	return &Chunk{cap: cap}
}

// Full reports whether the chunk has reached its posting cap.
func (c *Chunk) Full() bool { return c.count >= c.cap }

// Count returns the number of postings accumulated so far.
func (c *Chunk) Count() int { return c.count }

// PostingSize returns the number of bytes appending p would add to the
// chunk (used by the block writer's space-accounting check, spec §4.8). A
// doc-id smaller than the chunk's last doc-id would make the delta wrap
// around as an unsigned subtraction, which spec §7 requires rejecting as
// ErrValueOverflow rather than silently sizing a nonsense delta.
func (c *Chunk) PostingSize(p Posting) (int, error) {
	if p.DocID < c.lastDocID {
		return 0, ErrValueOverflow
	}
	docBytes := varByteLen(p.DocID - c.lastDocID)
	posBytes, err := EncodePositions(nil, p.Positions)
	if err != nil {
		return 0, err
	}
	return docBytes + len(posBytes) + 1, nil // +1 terminator
}

// Add appends posting p to the chunk: doc-id delta (absolute for the first
// posting), followed by the position stream terminated with 0x00. Returns
// ErrValueOverflow under the same wrap condition as PostingSize, leaving
// the chunk unmodified.
func (c *Chunk) Add(p Posting) error {
	if p.DocID < c.lastDocID {
		return ErrValueOverflow
	}
	positions, err := EncodePositions(c.positions, p.Positions)
	if err != nil {
		return err
	}

	c.docIDs = EncodeVarByte(c.docIDs, p.DocID-c.lastDocID)
	c.lastDocID = p.DocID
	if p.DocID > c.maxDocID {
		c.maxDocID = p.DocID
	}

	c.positions = append(positions, 0x00)
	c.count++
	return nil
}

// SizeOfChunk returns the total on-disk size of this chunk, including its
// 8-byte header and the doc-id-stream terminator byte.
func (c *Chunk) SizeOfChunk() int {
	return chunkHeaderSize + len(c.docIDs) + 1 + len(c.positions)
}

// Encode serializes the finalized chunk: u32 size-of-chunk, u32 max-doc-id,
// doc-id stream terminated by 0x00, then the positions stream.
func (c *Chunk) Encode() []byte {
	out := make([]byte, 8, c.SizeOfChunk())
	binary.LittleEndian.PutUint32(out[0:4], uint32(c.SizeOfChunk()))
	binary.LittleEndian.PutUint32(out[4:8], c.maxDocID)
	out = append(out, c.docIDs...)
	out = append(out, 0x00)
	out = append(out, c.positions...)
	return out
}

// DecodedChunk is the in-memory result of decoding a chunk's bytes back
// into postings.
type DecodedChunk struct {
	MaxDocID uint32
	Postings PostingList
}

// DecodeChunk parses one chunk from the front of buf and returns the
// decoded postings plus the number of bytes consumed (the chunk's own
// size-of-chunk field). A zero size-of-chunk signals padding / end of real
// data and is reported via ok=false rather than an error, matching the
// block reader's "stop on zero" contract (spec §4.9).
func DecodeChunk(buf []byte) (dc DecodedChunk, consumed int, ok bool, err error) {
	if len(buf) < chunkHeaderSize {
		return DecodedChunk{}, 0, false, nil
	}
	size := binary.LittleEndian.Uint32(buf[0:4])
	if size == 0 {
		return DecodedChunk{}, 0, false, nil
	}
	maxDocID := binary.LittleEndian.Uint32(buf[4:8])
	if int(size) > len(buf) {
		return DecodedChunk{}, 0, false, ErrCorruptChunk
	}

	body := buf[chunkHeaderSize:size]

	sep := indexByte(body, 0x00)
	if sep < 0 {
		return DecodedChunk{}, 0, false, ErrCorruptChunk
	}
	docIDBytes := body[:sep]
	posBytes := body[sep+1:]

	docIDs := decodeDeltaDocIDs(docIDBytes)
	posGroups := splitOnZero(posBytes, len(docIDs))

	postings := make(PostingList, len(docIDs))
	for i, id := range docIDs {
		var positions []uint32
		if i < len(posGroups) {
			positions = DecodePositions(posGroups[i])
		}
		postings[i] = Posting{DocID: id, Positions: positions}
	}

	return DecodedChunk{MaxDocID: maxDocID, Postings: postings}, int(size), true, nil
}

func decodeDeltaDocIDs(buf []byte) []uint32 {
	var ids []uint32
	var prev uint32
	for len(buf) > 0 {
		delta, n, err := DecodeVarByte(buf)
		if err != nil {
			break
		}
		prev += delta
		ids = append(ids, prev)
		buf = buf[n:]
	}
	return ids
}

// splitOnZero splits buf into up to n groups separated by 0x00 terminator
// bytes (each posting's position stream is independently terminated).
func splitOnZero(buf []byte, n int) [][]byte {
	groups := make([][]byte, 0, n)
	start := 0
	for i := 0; i < len(buf) && len(groups) < n; i++ {
		if buf[i] == 0x00 {
			groups = append(groups, buf[start:i])
			start = i + 1
		}
	}
	return groups
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}

func varByteLen(n uint32) int {
	length := 1
	for n >= 0x80 {
		n >>= 7
		length++
	}
	return length
}
