package inkwell

import "github.com/agnivade/levenshtein"

// BKTree is a metric tree over term strings using Levenshtein edit distance
// (spec §3/§4.10). Grounded on original_source's bk_tree.rs, a thin wrapper
// over a Levenshtein-metric BK-tree; here the distance function itself
// comes from github.com/agnivade/levenshtein, the same library a sibling
// example repo pairs with this module's own stemmer dependency.
type BKTree struct {
	root *bkNode
}

type bkNode struct {
	word     string
	children map[int]*bkNode
}

// NewBKTree creates an empty tree.
func NewBKTree() *BKTree { return &BKTree{} }

// Add inserts word into the tree.
func (t *BKTree) Add(word string) {
	if t.root == nil {
		t.root = &bkNode{word: word, children: make(map[int]*bkNode)}
		return
	}
	cur := t.root
	for {
		d := levenshtein.ComputeDistance(cur.word, word)
		if d == 0 {
			return // already present
		}
		next, ok := cur.children[d]
		if !ok {
			cur.children[d] = &bkNode{word: word, children: make(map[int]*bkNode)}
			return
		}
		cur = next
	}
}

// Find returns every word within maxDistance edit-distance of key.
func (t *BKTree) Find(key string, maxDistance int) []string {
	if t.root == nil {
		return nil
	}
	var matches []string
	t.search(t.root, key, maxDistance, &matches)
	return matches
}

func (t *BKTree) search(n *bkNode, key string, maxDistance int, matches *[]string) {
	d := levenshtein.ComputeDistance(n.word, key)
	if d <= maxDistance {
		*matches = append(*matches, n.word)
	}
	lo, hi := d-maxDistance, d+maxDistance
	for dist, child := range n.children {
		if dist >= lo && dist <= hi {
			t.search(child, key, maxDistance, matches)
		}
	}
}
