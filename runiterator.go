package inkwell

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"unicode/utf8"
)

// RunIterator is a single-pass forward cursor over a run file (spec §4.6).
// It is not restartable: once exhausted, a new iterator must be opened to
// read the file again.
type RunIterator struct {
	f    *os.File
	r    *bufio.Reader
	rem  uint32 // terms remaining to read
	done bool
	err  error

	CurrentTerm     string
	CurrentPostings PostingList
}

// OpenRunIterator opens path and positions the iterator at the first term.
func OpenRunIterator(path string) (*RunIterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	it := &RunIterator{f: f, r: bufio.NewReader(f)}
	if err := it.init(); err != nil {
		f.Close()
		return nil, err
	}
	it.Next()
	if err := it.Err(); err != nil {
		f.Close()
		return nil, err
	}
	return it, nil
}

func (it *RunIterator) init() error {
	var buf [4]byte
	if _, err := io.ReadFull(it.r, buf[:]); err != nil {
		return err
	}
	it.rem = binary.LittleEndian.Uint32(buf[:])
	return nil
}

// Next reads the next (term, postings) record and exposes it as
// CurrentTerm/CurrentPostings, returning true. On exhaustion it clears both
// fields and returns false. A short read mid-record is surfaced by setting
// the iterator to a permanently exhausted, errored state; callers detect
// this via Err.
func (it *RunIterator) Next() bool {
	if it.done || it.rem == 0 {
		it.done = true
		it.CurrentTerm = ""
		it.CurrentPostings = nil
		return false
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(it.r, lenBuf[:]); err != nil {
		it.fail(err)
		return false
	}
	nameLen := binary.LittleEndian.Uint32(lenBuf[:])

	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(it.r, nameBytes); err != nil {
		it.fail(err)
		return false
	}
	if !utf8.Valid(nameBytes) {
		it.fail(ErrCorruptRunFile)
		return false
	}

	if _, err := io.ReadFull(it.r, lenBuf[:]); err != nil {
		it.fail(err)
		return false
	}
	postLen := binary.LittleEndian.Uint32(lenBuf[:])

	postBytes := make([]byte, postLen)
	if _, err := io.ReadFull(it.r, postBytes); err != nil {
		it.fail(err)
		return false
	}

	it.CurrentTerm = string(nameBytes)
	it.CurrentPostings = DecodePostingList(postBytes)
	it.rem--
	return true
}

// fail puts the iterator into a permanently exhausted state and records
// err so Err() surfaces the short-read/corruption as an I/O error to the
// caller (spec §4.6/§7), instead of looking like clean exhaustion.
func (it *RunIterator) fail(err error) {
	it.done = true
	it.err = err
	it.CurrentTerm = ""
	it.CurrentPostings = nil
}

// err holds the last failure, if Next stopped due to corrupt data rather
// than clean exhaustion.
func (it *RunIterator) Err() error { return it.err }

// Close releases the underlying file handle.
func (it *RunIterator) Close() error { return it.f.Close() }
