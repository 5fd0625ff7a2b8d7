package inkwell

import "errors"

// Sentinel errors, checked with errors.Is, following the teacher's
// package-level errors.New convention.
var (
	ErrEmptyQuery     = errors.New("inkwell: empty query after tokenization")
	ErrTermNotFound   = errors.New("inkwell: term not found in directory")
	ErrCorruptChunk   = errors.New("inkwell: corrupt chunk header")
	ErrCorruptBlock   = errors.New("inkwell: corrupt block header")
	ErrCorruptRunFile = errors.New("inkwell: corrupt run file")
	ErrShortRead      = errors.New("inkwell: short read past end of buffer")
	ErrBlockOverflow  = errors.New("inkwell: block writer would exceed max block size")
	ErrValueOverflow  = errors.New("inkwell: value exceeds uint32 range")
	ErrNoRuns         = errors.New("inkwell: no run files to merge")
)
