package inkwell

import (
	"path/filepath"
	"testing"
)

// fixedTokenizer lets scenario tests inject exact (position, term) streams
// without depending on stemming/stopword specifics, isolating the tests
// from StandardTokenizer's normalization choices.
type fixedTokenizer struct {
	docs map[string][]Token
}

func (f fixedTokenizer) Tokenize(text string) []Token { return f.docs[text] }

func (f fixedTokenizer) TokenizeQuery(text string) (TokenizeResult, error) {
	if text == "" {
		return TokenizeResult{}, ErrEmptyQuery
	}
	uni := f.docs[text]
	var bi []Token
	for i := 0; i+1 < len(uni); i++ {
		bi = append(bi, Token{Position: uni[i].Position, Term: uni[i].Term + " " + uni[i+1].Term})
	}
	return TokenizeResult{Unigrams: uni, Bigrams: bi}, nil
}

type listDocumentSource struct {
	texts []string
	i     int
}

func (s *listDocumentSource) NextDocument() (url, title, text string, ok bool) {
	if s.i >= len(s.texts) {
		return "", "", "", false
	}
	text = s.texts[s.i]
	s.i++
	return "", "", text, true
}

func buildEngine(t *testing.T, tok Tokenizer, texts []string, opts ...Option) *Engine {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig(append([]Option{
		WithIndexDirectory(filepath.Join(dir, "runs")),
		WithFinalIndexPath(filepath.Join(dir, "final.idx")),
	}, opts...)...)

	e := NewEngine(cfg)
	e.Tok = tok
	if err := e.Ingest(&listDocumentSource{texts: texts}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

// S1 — Single document, single term.
func TestScenarioS1SingleDocSingleTerm(t *testing.T) {
	tok := fixedTokenizer{docs: map[string][]Token{
		"doc1": {{Position: 0, Term: "hello"}, {Position: 2, Term: "hello"}},
		"hello": {{Position: 0, Term: "hello"}},
	}}
	e := buildEngine(t, tok, []string{"doc1"})

	results, err := e.Query("hello")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	foundDoc1 := false
	for _, r := range results {
		if r.DocID == 1 {
			foundDoc1 = true
			if r.Score != 0 {
				t.Errorf("score for sole-document term should be 0 (idf=log10(1/1)), got %v", r.Score)
			}
		}
	}
	if !foundDoc1 {
		t.Fatalf("expected doc-id 1 among results, got %+v", results)
	}
}

// S2 — Two docs, conjunctive.
func TestScenarioS2Conjunctive(t *testing.T) {
	tok := fixedTokenizer{docs: map[string][]Token{
		"doc1":      {{Position: 0, Term: "rust"}, {Position: 1, Term: "fast"}},
		"doc2":      {{Position: 0, Term: "rust"}, {Position: 1, Term: "slow"}},
		"rust fast": {{Position: 0, Term: "rust"}, {Position: 1, Term: "fast"}},
	}}
	e := buildEngine(t, tok, []string{"doc1", "doc2"})

	results, err := e.Query("rust fast")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	sawDoc1 := false
	for _, r := range results {
		if r.DocID == 2 {
			t.Fatalf("doc-id 2 should not satisfy conjunctive 'rust fast' (no 'fast')")
		}
		if r.DocID == 1 {
			sawDoc1 = true
		}
	}
	if !sawDoc1 {
		t.Fatalf("expected doc-id 1 in conjunctive results, got %+v", results)
	}
}

// S6 — Phrase miss: non-consecutive positions in non-phrase mode still
// conjunctively match, but phrase mode must reject them.
func TestScenarioS6PhraseMiss(t *testing.T) {
	tok := fixedTokenizer{docs: map[string][]Token{
		"doc1": {{Position: 0, Term: "a"}, {Position: 1, Term: "c"}, {Position: 2, Term: "b"}},
		"a b":  {{Position: 0, Term: "a"}, {Position: 1, Term: "b"}},
	}}
	e := buildEngine(t, tok, []string{"doc1"})

	results, err := e.Query("a b")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	qp := &QueryProcessor{Reader: e.reader, Dir: e.Dir, Docs: e.Docs, Tok: e.Tok, Cfg: e.Cfg}
	phraseOnly, err := qp.runVariant([]string{"a", "b"}, true)
	if err != nil {
		t.Fatalf("runVariant(phrase): %v", err)
	}
	for _, r := range phraseOnly {
		if r.DocID == 1 {
			t.Fatalf("phrase mode should reject doc 1 (a@0, b@2 are not consecutive)")
		}
	}

	sawNonPhraseMatch := false
	for _, r := range results {
		if r.DocID == 1 {
			sawNonPhraseMatch = true
		}
	}
	if !sawNonPhraseMatch {
		t.Fatalf("non-phrase variants should still surface doc 1, got %+v", results)
	}
}

func TestEmptyQueryErrors(t *testing.T) {
	tok := NewStandardTokenizer()
	e := buildEngine(t, tok, []string{"hello world"})
	if _, err := e.Query("   "); err != ErrEmptyQuery {
		t.Fatalf("Query(empty) error = %v, want ErrEmptyQuery", err)
	}
}
