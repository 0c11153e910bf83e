// Package ingest extracts kana words from reading material and merges them
// into a vocabulary store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/japaniel/kanastudy/pkg/article"
	"github.com/japaniel/kanastudy/pkg/segment"
	"github.com/japaniel/kanastudy/pkg/vocab"
)

// PageFetcher downloads a web page as article text.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (article.Text, error)
}

// Ingester runs the segmenter over input sources and merges the words into
// a store.
type Ingester struct {
	// Logger is used for per-source progress. nil means no logging.
	Logger *slog.Logger
	// Now stamps new entries. Defaults to time.Now.
	Now func() time.Time
	// OnProgress is called after each source with the number of sources done.
	OnProgress func(current, total int)
	// Fetcher resolves URL sources. Required only when URLs are given.
	Fetcher PageFetcher
	// Workers bounds concurrent URL downloads.
	Workers int
}

// NewIngester creates a new Ingester.
func NewIngester(logger *slog.Logger, fetcher PageFetcher) *Ingester {
	return &Ingester{
		Logger:  logger,
		Now:     time.Now,
		Fetcher: fetcher,
		Workers: defaultWorkers,
	}
}

const defaultWorkers = 4

// Result summarizes one ingestion run.
type Result struct {
	Sources int // sources read
	Words   int // words emitted by the segmenter, duplicates included
	Unique  int // distinct words in this run
	Added   int // words that were new to the store
}

func (ig *Ingester) logger() *slog.Logger {
	if ig.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ig.Logger
}

// Load reads every file, then every URL, in order.
func (ig *Ingester) Load(ctx context.Context, paths, urls []string) ([]article.Text, error) {
	texts := make([]article.Text, 0, len(paths)+len(urls))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := article.ReadFile(p)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	if len(urls) == 0 {
		return texts, nil
	}
	if ig.Fetcher == nil {
		return nil, fmt.Errorf("ingest: no fetcher configured for %d url(s)", len(urls))
	}
	fetched, err := ig.fetchAll(ctx, urls)
	if err != nil {
		return nil, err
	}
	return append(texts, fetched...), nil
}

// fetchAll downloads urls concurrently. Results keep the order of urls and
// the first failing URL in that order decides the error.
func (ig *Ingester) fetchAll(ctx context.Context, urls []string) ([]article.Text, error) {
	texts := make([]article.Text, len(urls))
	errs := make([]error, len(urls))

	pool := NewWorkerPool(min(max(ig.Workers, 1), len(urls)), len(urls))
	pool.Start(ctx)
	for i, u := range urls {
		err := pool.Submit(ctx, func(ctx context.Context) {
			texts[i], errs[i] = ig.Fetcher.Fetch(ctx, u)
			ig.logger().Debug("fetched source", "url", u, "err", errs[i])
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return texts, nil
}

// Segment runs one segmenter across all texts as a single stream, so a run
// may continue from the end of one text into the start of the next.
func (ig *Ingester) Segment(ctx context.Context, texts []article.Text) ([]string, error) {
	log := ig.logger()
	seg := segment.New()
	var words []string
	emit := func(w string) { words = append(words, w) }

	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		before := len(words)
		if err := seg.Scan(strings.NewReader(t.Body), emit); err != nil {
			return nil, fmt.Errorf("segment %s: %w", t.Name, err)
		}
		log.Debug("segmented source", "source", t.Name, "title", t.Title, "words", len(words)-before)
		if ig.OnProgress != nil {
			ig.OnProgress(i+1, len(texts))
		}
	}
	if w, ok := seg.Finish(); ok {
		words = append(words, w)
	}
	return words, nil
}

// Ingest segments texts and merges the resulting words into store.
// Entries already in the store are left untouched.
func (ig *Ingester) Ingest(ctx context.Context, store *vocab.Store, texts []article.Text) (Result, error) {
	words, err := ig.Segment(ctx, texts)
	if err != nil {
		return Result{}, err
	}
	unique := dedupe(words)

	now := time.Now
	if ig.Now != nil {
		now = ig.Now
	}
	added := store.Merge(unique, now())

	res := Result{
		Sources: len(texts),
		Words:   len(words),
		Unique:  len(unique),
		Added:   added,
	}
	ig.logger().Info("ingestion complete",
		"sources", res.Sources, "words", res.Words, "unique", res.Unique, "added", res.Added, "store_size", store.Len())
	return res, nil
}

// dedupe keeps the first occurrence of every word.
func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
