package inkwell

import (
	"log/slog"
)

// Config collects every tunable the core recognizes (spec §6). Construct
// with DefaultConfig and adjust with the With* options, mirroring the
// teacher's BM25Parameters options-struct pattern.
type Config struct {
	// MaxDictionaryBytes is the SPIMI flush threshold: once the per-run
	// in-memory Dictionary's accounted byte size reaches this, the run is
	// flushed to disk and the dictionary is cleared.
	MaxDictionaryBytes int64

	// MaxBlockSizeKB is the final-index block size, in kilobytes.
	MaxBlockSizeKB int

	// PostingsPerChunk is the cap on postings accumulated by one chunk
	// before it is finalized.
	PostingsPerChunk int

	// IndexDirectory is where per-run .idx files are written during
	// ingestion.
	IndexDirectory string

	// FinalIndexPath is the path of the merged, block-structured index.
	FinalIndexPath string

	// BKTreeMaxDistance is the default edit-distance radius consulted when
	// a query term is absent from the term directory.
	BKTreeMaxDistance int

	// TopK is the number of results returned per ranking variant.
	TopK int

	// DeleteRunsAfterMerge removes per-run .idx files once the merge that
	// consumed them completes successfully.
	DeleteRunsAfterMerge bool

	// Logger receives structured phase-boundary records. DefaultConfig sets
	// it to slog.Default(); a nil Logger is not replaced by the Engine or
	// the SPIMIConsumer.
	Logger *slog.Logger
}

// MaxBlockSizeBytes is MaxBlockSizeKB expressed in bytes.
func (c Config) MaxBlockSizeBytes() int {
	return c.MaxBlockSizeKB * 1000
}

// Option mutates a Config in place; pass any number to DefaultConfig.
type Option func(*Config)

// DefaultConfig returns the documented defaults from spec §6, overridden by
// any supplied options.
func DefaultConfig(opts ...Option) Config {
	c := Config{
		MaxDictionaryBytes:   10_000_000,
		MaxBlockSizeKB:       64,
		PostingsPerChunk:     128,
		IndexDirectory:       "index_directory",
		FinalIndexPath:       "final.idx",
		BKTreeMaxDistance:    1,
		TopK:                 2,
		DeleteRunsAfterMerge: true,
		Logger:               slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithMaxDictionaryBytes(n int64) Option { return func(c *Config) { c.MaxDictionaryBytes = n } }
func WithMaxBlockSizeKB(n int) Option       { return func(c *Config) { c.MaxBlockSizeKB = n } }
func WithPostingsPerChunk(n int) Option     { return func(c *Config) { c.PostingsPerChunk = n } }
func WithIndexDirectory(dir string) Option  { return func(c *Config) { c.IndexDirectory = dir } }
func WithFinalIndexPath(path string) Option { return func(c *Config) { c.FinalIndexPath = path } }
func WithBKTreeMaxDistance(n int) Option    { return func(c *Config) { c.BKTreeMaxDistance = n } }
func WithTopK(n int) Option                 { return func(c *Config) { c.TopK = n } }
func WithLogger(l *slog.Logger) Option      { return func(c *Config) { c.Logger = l } }
func WithDeleteRunsAfterMerge(b bool) Option {
	return func(c *Config) { c.DeleteRunsAfterMerge = b }
}
