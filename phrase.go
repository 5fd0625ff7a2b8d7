package inkwell

import "sort"

// hasPosition binary-searches positions (sorted ascending, as every
// decoded posting's position list is) for the exact value want, realizing
// spec §4.11 step 6's "verified by binary search within each term's
// sorted position list".
func hasPosition(positions []uint32, want uint32) bool {
	i := sort.Search(len(positions), func(i int) bool { return positions[i] >= want })
	return i < len(positions) && positions[i] == want
}

// HasConsecutivePositions reports whether there exist positions
// p, p+1, p+2, … — one per entry in termPositions, in order — realizing
// the phrase-match predicate (spec §4.11 step 6). termPositions[i] holds
// the sorted position list of the i-th query term.
func HasConsecutivePositions(termPositions [][]uint32) bool {
	if len(termPositions) == 0 {
		return false
	}
	for _, p := range termPositions[0] {
		if consecutiveFrom(p, termPositions[1:]) {
			return true
		}
	}
	return false
}

// consecutiveFrom checks whether start, start+1, start+2, … appear in
// order across rest's position lists, each probed by binary search for
// the exact expected position.
func consecutiveFrom(start uint32, rest [][]uint32) bool {
	want := start
	for _, positions := range rest {
		want++
		if !hasPosition(positions, want) {
			return false
		}
	}
	return true
}
