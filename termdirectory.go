package inkwell

import "sync"

// TermMetadata is a term directory entry (spec §3/§4.10): the term's final
// term-id, its document frequency, and every block containing its chunks.
type TermMetadata struct {
	TermID        uint32
	TermFrequency uint32
	BlockIDs      []uint32
}

// TermDirectory is the in-memory term→metadata map populated by the merge
// in two phases (phase A assigns term-ids during merge; phase B, after
// merge, copies block-ids and frequency from the block writer's per-term-id
// map), augmented by a BK-tree for fuzzy lookup. It is owned by a single
// engine instance, never global (spec §9).
type TermDirectory struct {
	mu      sync.RWMutex
	entries map[string]*TermMetadata
	byID    map[uint32]string
	tree    *BKTree
}

// NewTermDirectory creates an empty directory.
func NewTermDirectory() *TermDirectory {
	return &TermDirectory{
		entries: make(map[string]*TermMetadata),
		byID:    make(map[uint32]string),
		tree:    NewBKTree(),
	}
}

// SetTermID records term's final term-id (merge phase A) and adds it to
// the BK-tree for fuzzy suggestion.
func (td *TermDirectory) SetTermID(term string, id uint32) {
	td.mu.Lock()
	defer td.mu.Unlock()
	if _, ok := td.entries[term]; !ok {
		td.entries[term] = &TermMetadata{}
		td.tree.Add(term)
	}
	td.entries[term].TermID = id
	td.byID[id] = term
}

// SetTermFrequency records term's document frequency (merge phase B).
func (td *TermDirectory) SetTermFrequency(term string, df uint32) {
	td.mu.Lock()
	defer td.mu.Unlock()
	if e, ok := td.entries[term]; ok {
		e.TermFrequency = df
	}
}

// SetBlockIDs records the blocks containing term's chunks (merge phase B).
func (td *TermDirectory) SetBlockIDs(term string, blockIDs []uint32) {
	td.mu.Lock()
	defer td.mu.Unlock()
	if e, ok := td.entries[term]; ok {
		e.BlockIDs = blockIDs
	}
}

// GetMetadata returns term's metadata and whether it was present.
func (td *TermDirectory) GetMetadata(term string) (TermMetadata, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	e, ok := td.entries[term]
	if !ok {
		return TermMetadata{}, false
	}
	return *e, true
}

// TermForID reverse-looks-up a term string from its term-id.
func (td *TermDirectory) TermForID(id uint32) (string, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	t, ok := td.byID[id]
	return t, ok
}

// Terms returns every term string registered in the directory.
func (td *TermDirectory) Terms() []string {
	td.mu.RLock()
	defer td.mu.RUnlock()
	out := make([]string, 0, len(td.entries))
	for t := range td.entries {
		out = append(out, t)
	}
	return out
}

// Suggest returns candidate terms within maxDistance edit distance of term,
// via the BK-tree (spec §4.10's fuzzy suggestion).
func (td *TermDirectory) Suggest(term string, maxDistance int) []string {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.tree.Find(term, maxDistance)
}

// PopulateFromMerge runs both phases of directory population from a
// completed merge: phase A (term-id per MergedTerm) is expected to have
// already run via SetTermID as terms were emitted; this populates phase B
// (block-ids and frequency) from the block writer's per-term-id info map.
func (td *TermDirectory) PopulateFromMerge(info map[uint32]*TermBlockInfo) {
	td.mu.RLock()
	idToTerm := make(map[uint32]string, len(td.byID))
	for id, t := range td.byID {
		idToTerm[id] = t
	}
	td.mu.RUnlock()

	for id, i := range info {
		term, ok := idToTerm[id]
		if !ok {
			continue
		}
		td.SetBlockIDs(term, i.BlockIDs)
		td.SetTermFrequency(term, i.DF)
	}
}
