package inkwell

import (
	"bufio"
	"encoding/binary"
	"os"
)

// WriteRunFile serializes a Dictionary's contents as a sorted run file
// (spec §6):
//
//	u32 term-count
//	repeated term-count times:
//	  u32 name-length
//	  bytes[name-length]
//	  u32 postings-length
//	  bytes[postings-length]  (posting-list codec)
//
// Terms are written in ascending lexicographic order (Dictionary.SortTerms),
// which is what lets the run iterator guarantee strictly ascending term
// reads.
func WriteRunFile(path string, dict *Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	names := dict.SortTerms()

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(names)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	for _, name := range names {
		postings, err := EncodePostingList(nil, dict.Get(name))
		if err != nil {
			return err
		}

		var nameLen [4]byte
		binary.LittleEndian.PutUint32(nameLen[:], uint32(len(name)))
		if _, err := w.Write(nameLen[:]); err != nil {
			return err
		}
		if _, err := w.WriteString(name); err != nil {
			return err
		}

		var postLen [4]byte
		binary.LittleEndian.PutUint32(postLen[:], uint32(len(postings)))
		if _, err := w.Write(postLen[:]); err != nil {
			return err
		}
		if _, err := w.Write(postings); err != nil {
			return err
		}
	}

	return w.Flush()
}
