package inkwell

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// IngestRecord is one (term, posting) unit pushed onto the SPIMI queue by
// the ingest producer thread (spec §5).
type IngestRecord struct {
	Term    string
	Posting Posting
}

// SPIMIConsumer drains a channel of IngestRecord, accumulating
// them into a Dictionary and flushing sorted run files once the
// dictionary's byte size reaches cfg.MaxDictionaryBytes (spec §4.5). It is
// the sole consumer: exactly one goroutine should call Run.
type SPIMIConsumer struct {
	cfg      Config
	dict     *Dictionary
	runCount int
	runPaths []string
}

// NewSPIMIConsumer creates a consumer bound to cfg's dictionary threshold
// and index directory.
func NewSPIMIConsumer(cfg Config) *SPIMIConsumer {
	return &SPIMIConsumer{
		cfg:  cfg,
		dict: NewDictionary(cfg.MaxDictionaryBytes),
	}
}

// Run drains records until the channel is closed (the producer closing its
// send-endpoint, spec §5), flushing on threshold and flushing whatever
// remains on close. It returns the paths of every run file it wrote.
func (c *SPIMIConsumer) Run(records <-chan IngestRecord) ([]string, error) {
	for rec := range records {
		if c.dict.ShouldFlush() {
			if err := c.flush(); err != nil {
				return nil, err
			}
		}
		c.dict.Append(rec.Term, rec.Posting)
	}

	if c.dict.Len() > 0 {
		if err := c.flush(); err != nil {
			return nil, err
		}
	}

	return c.runPaths, nil
}

func (c *SPIMIConsumer) flush() error {
	path := filepath.Join(c.cfg.IndexDirectory, fmt.Sprintf("%d.idx", c.runCount))
	c.runCount++

	if err := WriteRunFile(path, c.dict); err != nil {
		return err
	}
	c.cfg.Logger.Info("spimi flush", "path", path, "terms", c.dict.Len(), "bytes", c.dict.ByteSize())

	c.runPaths = append(c.runPaths, path)
	c.dict.Clear()
	return nil
}

// IngestDocuments is the producer loop: pulls documents from src, tokenizes
// with tok, assigns sequential doc-ids starting at 1, records metadata in
// docs, and pushes one IngestRecord per distinct term in each document,
// carrying all of that term's positions, onto records. It closes records on completion, draining the single consumer
// goroutine that should already be running on the other end (spec §5's
// producer/consumer channel model).
func IngestDocuments(src DocumentSource, tok Tokenizer, docs *DocStore, records chan<- IngestRecord, logger *slog.Logger) error {
	defer close(records)
	if logger == nil {
		logger = slog.Default()
	}

	var nextDocID uint32 = 1
	var count int
	for {
		url, title, text, ok := src.NextDocument()
		if !ok {
			break
		}

		docID := nextDocID
		nextDocID++

		tokens := tok.Tokenize(text)
		docs.Put(docID, DocumentMetadata{Title: title, URL: url, Length: len(tokens)})

		byTerm := make(map[string][]uint32)
		for _, t := range tokens {
			byTerm[t.Term] = append(byTerm[t.Term], t.Position)
		}
		for term, positions := range byTerm {
			records <- IngestRecord{Term: term, Posting: Posting{DocID: docID, Positions: positions}}
		}
		count++
	}

	logger.Info("ingest complete", "documents", count)
	return nil
}
