package inkwell

import "encoding/binary"

// Posting is a (doc-id, positions) record: one term's occurrences within
// one document. positions is strictly ascending and duplicate-free; an
// empty positions slice is legal only for degenerate/test postings, never
// produced by real ingestion.
type Posting struct {
	DocID     uint32
	Positions []uint32
}

// PostingList is a sequence of postings ordered strictly by ascending
// doc-id, with unique doc-ids.
type PostingList []Posting

// EncodePostingList appends the posting-list codec encoding of list to dst.
// Per posting: VB(doc-id delta, first absolute) + u16 LE length of encoded
// positions + the encoded position bytes. list must be strictly ascending
// by doc-id (spec §3); a doc-id that would make the delta wrap around as
// an unsigned subtraction is rejected as ErrValueOverflow (spec §7).
func EncodePostingList(dst []byte, list PostingList) ([]byte, error) {
	var prevDoc uint32
	for _, p := range list {
		if p.DocID < prevDoc {
			return nil, ErrValueOverflow
		}
		dst = EncodeVarByte(dst, p.DocID-prevDoc)
		prevDoc = p.DocID

		posBytes, err := EncodePositions(nil, p.Positions)
		if err != nil {
			return nil, err
		}
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(posBytes)))
		dst = append(dst, lenBuf[:]...)
		dst = append(dst, posBytes...)
	}
	return dst, nil
}

// DecodePostingList reverses EncodePostingList. Decoding stops on buffer
// exhaustion or a short/truncated final record rather than returning an
// error: boundary truncation is tolerated, matching the run-writer's own
// tolerant read behavior (spec §4.3).
func DecodePostingList(buf []byte) PostingList {
	var list PostingList
	var prevDoc uint32
	for len(buf) > 0 {
		delta, n, err := DecodeVarByte(buf)
		if err != nil {
			break
		}
		buf = buf[n:]

		if len(buf) < 2 {
			break
		}
		length := int(binary.LittleEndian.Uint16(buf[:2]))
		buf = buf[2:]

		if len(buf) < length {
			// Truncated position stream: decode what is present and stop.
			prevDoc += delta
			list = append(list, Posting{DocID: prevDoc, Positions: DecodePositions(buf)})
			break
		}

		prevDoc += delta
		list = append(list, Posting{DocID: prevDoc, Positions: DecodePositions(buf[:length])})
		buf = buf[length:]
	}
	return list
}
