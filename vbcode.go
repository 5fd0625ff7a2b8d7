package inkwell

// VarByte (VB) encodes an unsigned integer as a big-endian sequence of 7-bit
// groups. Every group occupies one byte; the final byte has its top bit set
// (value += 128) to mark the end of the number, so decoding never needs a
// length prefix.
//
//	VB(0)   = [0x80]
//	VB(127) = [0xFF]
//	VB(128) = [0x01, 0x80]

const vbContinuationBit = 0x80

// EncodeVarByte appends the VarByte encoding of n to dst and returns the
// extended slice.
func EncodeVarByte(dst []byte, n uint32) []byte {
	var groups [5]byte
	i := len(groups)
	for {
		i--
		groups[i] = byte(n & 0x7F)
		n >>= 7
		if n == 0 {
			break
		}
	}
	groups[len(groups)-1] += vbContinuationBit
	return append(dst, groups[i:]...)
}

// DecodeVarByte reads one VarByte-encoded value from the front of buf,
// returning the value and the number of bytes consumed. If buf is exhausted
// before a terminating byte (top bit set) is seen, it returns the partial
// value accumulated so far and ErrShortRead, along with the full length of
// buf as bytes consumed.
func DecodeVarByte(buf []byte) (uint32, int, error) {
	var value uint32
	for i, b := range buf {
		value = (value << 7) | uint32(b&0x7F)
		if b&vbContinuationBit != 0 {
			return value, i + 1, nil
		}
	}
	return value, len(buf), ErrShortRead
}
