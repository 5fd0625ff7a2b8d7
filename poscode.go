package inkwell

// Position codec: delta-encodes a strictly ascending position list, then
// VarByte-encodes each delta. The first position is encoded relative to an
// implicit previous value of 0, so it is absolute.

// EncodePositions appends the delta-VarByte encoding of positions to dst.
// positions must be strictly ascending; this is the caller's invariant to
// uphold (ingestion only ever produces such lists). Per spec §7's overflow
// rule, a position that is not ascending relative to its predecessor would
// make the delta wrap around as an unsigned subtraction — EncodePositions
// rejects that case as ErrValueOverflow instead of silently encoding a
// nonsense huge delta.
func EncodePositions(dst []byte, positions []uint32) ([]byte, error) {
	var prev uint32
	for _, p := range positions {
		if p < prev {
			return nil, ErrValueOverflow
		}
		dst = EncodeVarByte(dst, p-prev)
		prev = p
	}
	return dst, nil
}

// DecodePositions reverses EncodePositions, reconstructing the absolute
// position list from buf. Decoding is tolerant of a short trailing read: it
// simply stops and returns what it has decoded so far, matching the
// run-writer's tolerant posting-list decode behavior.
func DecodePositions(buf []byte) []uint32 {
	var positions []uint32
	var prev uint32
	for len(buf) > 0 {
		delta, n, err := DecodeVarByte(buf)
		if err != nil {
			break
		}
		prev += delta
		positions = append(positions, prev)
		buf = buf[n:]
	}
	return positions
}
