package inkwell

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Token is one normalized term at a 0-based position in a document or
// query (spec §6's tokenizer collaborator contract).
type Token struct {
	Position uint32
	Term     string
}

// TokenizeResult is the unigram/bigram split produced by TokenizeQuery,
// carried over from original_source's TokenizeQueryResult (spec §4.11 step
// 1 needs both for its unigram and bigram ranking variants).
type TokenizeResult struct {
	Unigrams []Token
	Bigrams  []Token
}

// Lemmatizer is the pluggable external collaborator spec.md explicitly
// excludes the loading of (lemmatization lookup-table loading is named out
// of scope in spec §1); the default Tokenizer consults one only if set.
type Lemmatizer interface {
	Lemmatize(word string) (string, bool)
}

// Tokenizer turns a text blob into a sequence of (position, normalized
// term) pairs (spec §6). Stop-word filtering, if any, must be applied
// uniformly at ingest and query time, which is why both Tokenize and
// TokenizeQuery route through the same normalize/stem/filter pipeline.
type Tokenizer interface {
	Tokenize(text string) []Token
	TokenizeQuery(text string) (TokenizeResult, error)
}

// DefaultStopWords mirrors the teacher analyzer's stopword set: common
// English function words excluded from indexing and querying alike.
var DefaultStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true,
}

// StandardTokenizer is the default Tokenizer implementation: split on
// whitespace, clean each word (lowercase, trim leading/trailing
// non-alphanumerics), drop stopwords, then use the optional lemmatizer's
// lemma if it has one, otherwise stem with the snowball English stemmer
// (a lemma is not stemmed) — the same pipeline shape as the
// teacher's analyzer.go, generalized to also emit bigrams for queries.
type StandardTokenizer struct {
	Lemmatizer Lemmatizer
	StopWords  map[string]bool
}

// NewStandardTokenizer creates a tokenizer with the default stopword set
// and no lemmatizer.
func NewStandardTokenizer() *StandardTokenizer {
	return &StandardTokenizer{StopWords: DefaultStopWords}
}

// cleanWord lowercases and trims leading/trailing non-alphanumeric runes,
// grounded on original_source's clean_word.
func cleanWord(word string) string {
	lowered := strings.ToLower(word)
	trimmed := strings.TrimFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return trimmed
}

func (tk *StandardTokenizer) normalize(word string) (string, bool) {
	cleaned := cleanWord(word)
	if cleaned == "" {
		return "", false
	}
	if tk.StopWords != nil && tk.StopWords[cleaned] {
		return "", false
	}
	if tk.Lemmatizer != nil {
		if lemma, ok := tk.Lemmatizer.Lemmatize(cleaned); ok {
			return lemma, true
		}
	}
	return english.Stem(cleaned, false), true
}

// Tokenize implements Tokenizer.
func (tk *StandardTokenizer) Tokenize(text string) []Token {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var tokens []Token
	var position uint32
	for _, word := range strings.Fields(text) {
		if term, ok := tk.normalize(word); ok {
			tokens = append(tokens, Token{Position: position, Term: term})
		}
		position++
	}
	return tokens
}

// TokenizeQuery implements Tokenizer, additionally emitting adjacent-pair
// bigram tokens ("term1 term2") between consecutive surviving unigrams, as
// required for ranking variant (b) in spec §4.11.
func (tk *StandardTokenizer) TokenizeQuery(text string) (TokenizeResult, error) {
	if strings.TrimSpace(text) == "" {
		return TokenizeResult{}, ErrEmptyQuery
	}

	var result TokenizeResult
	var position uint32
	var prev string
	havePrev := false

	for _, word := range strings.Fields(text) {
		term, ok := tk.normalize(word)
		if ok {
			result.Unigrams = append(result.Unigrams, Token{Position: position, Term: term})
			if havePrev {
				result.Bigrams = append(result.Bigrams, Token{
					Position: position - 1,
					Term:     prev + " " + term,
				})
			}
			prev = term
			havePrev = true
		}
		position++
	}

	return result, nil
}
