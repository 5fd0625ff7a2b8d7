package inkwell

import (
	"os"
)

// Engine is the top-level handle wiring together ingestion, merge, and
// query execution (spec §2's "Wiring" component). One Engine instance owns
// its own TermDirectory and DocStore; multiple instances may coexist in
// one process (spec §9).
type Engine struct {
	Cfg    Config
	Dir    *TermDirectory
	Docs   *DocStore
	Tok    Tokenizer
	reader *IndexReader
}

// NewEngine creates an Engine with a default StandardTokenizer and fresh,
// empty directory/doc-store.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		Cfg:  cfg,
		Dir:  NewTermDirectory(),
		Docs: NewDocStore(),
		Tok:  NewStandardTokenizer(),
	}
}

// Ingest runs the full build pipeline: run the single ingest producer on
// the calling goroutine while a single SPIMI consumer goroutine drains its
// records (spec §5), wait for both, then merge the
// resulting run files into the final block-structured index and populate
// the term directory.
func (e *Engine) Ingest(src DocumentSource) error {
	if err := os.MkdirAll(e.Cfg.IndexDirectory, 0o755); err != nil {
		return err
	}

	records := make(chan IngestRecord)
	consumer := NewSPIMIConsumer(e.Cfg)

	type consumeResult struct {
		paths []string
		err   error
	}
	done := make(chan consumeResult, 1)
	go func() {
		paths, err := consumer.Run(records)
		done <- consumeResult{paths, err}
	}()

	if err := IngestDocuments(src, e.Tok, e.Docs, records, e.Cfg.Logger); err != nil {
		return err
	}

	res := <-done
	if res.err != nil {
		return res.err
	}

	return e.mergeAndFinalize(res.paths)
}

func (e *Engine) mergeAndFinalize(runPaths []string) error {
	if len(runPaths) == 0 {
		e.Cfg.Logger.Info("merge skipped: no run files produced")
		return nil
	}

	merged, err := MergeRuns(runPaths, e.Cfg.Logger)
	if err != nil {
		return err
	}

	bw, err := NewBlockWriter(e.Cfg.FinalIndexPath, e.Cfg)
	if err != nil {
		return err
	}

	for _, mt := range merged {
		e.Dir.SetTermID(mt.Term, mt.TermID)
		if err := bw.AddTerm(mt); err != nil {
			return err
		}
	}

	info, err := bw.Finish()
	if err != nil {
		return err
	}
	e.Dir.PopulateFromMerge(info)

	e.normalizeDocumentVectors(merged)

	if e.Cfg.DeleteRunsAfterMerge {
		if err := RemoveRunFiles(runPaths); err != nil {
			return err
		}
	}

	e.Cfg.Logger.Info("index build complete", "final_index", e.Cfg.FinalIndexPath, "terms", len(merged))
	return nil
}

// normalizeDocumentVectors computes each document's tf-idf vector norm
// from the fully merged posting lists (the Open Question in spec.md's
// Design Notes, resolved in favor of implementing normalization per
// SPEC_FULL.md §C) and stores it in the doc store.
func (e *Engine) normalizeDocumentVectors(merged []MergedTerm) {
	totalDocs := e.Docs.Count()
	weights := make(map[uint32][]float64)

	for _, mt := range merged {
		df := uint32(len(mt.Postings))
		idf := IDF(totalDocs, df)
		for _, p := range mt.Postings {
			w := TFIDFWeight(TermFrequency(p), idf)
			weights[p.DocID] = append(weights[p.DocID], w)
		}
	}

	for docID, ws := range weights {
		e.Docs.SetNorm(docID, EuclideanNorm(ws))
	}
}

// OpenForQuery opens the final index file for query-time reads. Call after
// Ingest in the same process, or standalone against a previously built
// index once the term directory has been separately rebuilt (spec.md's
// Non-goals: the term directory is not persisted by the core and must be
// rebuilt from the final merged index — an Engine that only calls
// OpenForQuery without first having run Ingest or an equivalent directory
// rebuild will see an empty directory and resolve no terms).
func (e *Engine) OpenForQuery() error {
	reader, err := OpenIndexReader(e.Cfg.FinalIndexPath, e.Cfg.MaxBlockSizeBytes())
	if err != nil {
		return err
	}
	e.reader = reader
	return nil
}

// Close releases the query-time file handle, if open.
func (e *Engine) Close() error {
	if e.reader == nil {
		return nil
	}
	return e.reader.Close()
}

// Query builds a QueryProcessor bound to this engine's state and executes
// one search (spec §4.11).
func (e *Engine) Query(query string) ([]ScoredDoc, error) {
	if e.reader == nil {
		if err := e.OpenForQuery(); err != nil {
			return nil, err
		}
	}
	qp := &QueryProcessor{Reader: e.reader, Dir: e.Dir, Docs: e.Docs, Tok: e.Tok, Cfg: e.Cfg}
	return qp.Search(query)
}
