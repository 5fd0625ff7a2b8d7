package inkwell

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// QueryProcessor executes queries against a merged index: tokenize,
// resolve term metadata, pick a seed term, decode blocks, intersect,
// optionally phrase-filter, score with tf-idf, and return top-k results
// (spec §4.11).
type QueryProcessor struct {
	Reader *IndexReader
	Dir    *TermDirectory
	Docs   *DocStore
	Tok    Tokenizer
	Cfg    Config
}

// resolvedTerm is one query term after directory lookup (with optional
// BK-tree fallback) and full posting-list decode.
type resolvedTerm struct {
	term     string
	meta     TermMetadata
	postings PostingList
	byDoc    map[uint32]Posting
}

// resolve looks up term in the directory; if absent, it consults the
// BK-tree for a same-or-better candidate within Cfg.BKTreeMaxDistance and
// substitutes the first suggestion found. If still absent, it returns
// ok=false: the term contributes no postings, per spec §4.11 step 2/§7.
func (qp *QueryProcessor) resolve(term string) (resolvedTerm, bool, error) {
	meta, ok := qp.Dir.GetMetadata(term)
	resolvedName := term
	if !ok {
		suggestions := qp.Dir.Suggest(term, qp.Cfg.BKTreeMaxDistance)
		if len(suggestions) == 0 {
			return resolvedTerm{}, false, nil
		}
		resolvedName = suggestions[0]
		meta, ok = qp.Dir.GetMetadata(resolvedName)
		if !ok {
			return resolvedTerm{}, false, nil
		}
	}

	postings, err := qp.Reader.ReadTermPostings(meta.TermID, meta.BlockIDs)
	if err != nil {
		return resolvedTerm{}, false, err
	}

	byDoc := make(map[uint32]Posting, len(postings))
	for _, p := range postings {
		byDoc[p.DocID] = p
	}

	return resolvedTerm{term: resolvedName, meta: meta, postings: postings, byDoc: byDoc}, true, nil
}

// runVariant implements the shared pipeline steps 2-8 of spec §4.11 for
// one list of query term strings, optionally applying the phrase filter
// (step 6).
func (qp *QueryProcessor) runVariant(terms []string, phraseFilter bool) ([]ScoredDoc, error) {
	var resolved []resolvedTerm
	for _, t := range terms {
		rt, ok, err := qp.resolve(t)
		if err != nil {
			return nil, err
		}
		if !ok {
			// An absent term contributes no postings, so the conjunction
			// (and any phrase match) is empty.
			return nil, nil
		}
		resolved = append(resolved, rt)
	}
	if len(resolved) == 0 {
		return nil, nil
	}

	// Phrase adjacency (step 6) depends on query order, so seed selection
	// sorts a copy (bySeed) and resolved stays in query order.
	inQueryOrder := resolved

	bySeed := make([]resolvedTerm, len(resolved))
	copy(bySeed, resolved)
	sort.Slice(bySeed, func(i, j int) bool {
		return bySeed[i].meta.TermFrequency < bySeed[j].meta.TermFrequency
	})
	seed := bySeed[0]

	candidates := roaring.New()
	for docID := range seed.byDoc {
		candidates.Add(docID)
	}

	for _, rt := range bySeed[1:] {
		present := roaring.New()
		for docID := range rt.byDoc {
			present.Add(docID)
		}
		candidates.And(present)
	}

	if phraseFilter {
		candidates = filterPhrase(candidates, inQueryOrder)
	}

	totalDocs := qp.Docs.Count()
	scores := make(map[uint32]float64)

	it := candidates.Iterator()
	for it.HasNext() {
		docID := it.Next()
		var score float64
		for _, rt := range resolved {
			p, ok := rt.byDoc[docID]
			if !ok {
				continue
			}
			idf := IDF(totalDocs, rt.meta.TermFrequency)
			score += TFIDFWeight(TermFrequency(p), idf)
		}
		if meta, ok := qp.Docs.Get(docID); ok && meta.Norm > 0 {
			score /= meta.Norm
		}
		scores[docID] = score
	}

	return TopK(scores, qp.Cfg.TopK), nil
}

// filterPhrase retains only candidate doc-ids where the resolved terms'
// positions appear consecutively in query order (spec §4.11 step 6).
func filterPhrase(candidates *roaring.Bitmap, resolved []resolvedTerm) *roaring.Bitmap {
	out := roaring.New()
	it := candidates.Iterator()
	for it.HasNext() {
		docID := it.Next()
		positionLists := make([][]uint32, len(resolved))
		for i, rt := range resolved {
			positionLists[i] = rt.byDoc[docID].Positions
		}
		if HasConsecutivePositions(positionLists) {
			out.Add(docID)
		}
	}
	return out
}

// Search executes a query against the three ranking variants of spec
// §4.11/§5 concurrently (up to three goroutines, no shared mutable state,
// joined via channels) and concatenates their top-k lists in order
// a (unigram+phrase), b (bigram, no phrase), c (unigram, no phrase), with
// no deduplication across variants.
func (qp *QueryProcessor) Search(query string) ([]ScoredDoc, error) {
	tokens, err := qp.Tok.TokenizeQuery(query)
	if err != nil {
		return nil, err
	}
	if len(tokens.Unigrams) == 0 {
		return nil, ErrEmptyQuery
	}

	unigramTerms := termStrings(tokens.Unigrams)
	bigramTerms := termStrings(tokens.Bigrams)

	type variantResult struct {
		docs []ScoredDoc
		err  error
	}
	resultCh := make([]chan variantResult, 3)
	for i := range resultCh {
		resultCh[i] = make(chan variantResult, 1)
	}

	go func() {
		docs, err := qp.runVariant(unigramTerms, true)
		resultCh[0] <- variantResult{docs, err}
	}()
	go func() {
		docs, err := qp.runVariant(bigramTerms, false)
		resultCh[1] <- variantResult{docs, err}
	}()
	go func() {
		docs, err := qp.runVariant(unigramTerms, false)
		resultCh[2] <- variantResult{docs, err}
	}()

	var merged []ScoredDoc
	for i := range resultCh {
		r := <-resultCh[i]
		if r.err != nil {
			return nil, r.err
		}
		merged = append(merged, r.docs...)
	}
	return merged, nil
}

func termStrings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Term
	}
	return out
}
