package insider

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Document is one unit of batch input: raw filing content plus the
// optional title/summary feed metadata that sharpens identity
// extraction when present.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Content string `json:"content"`
}

// BatchOptions configures ExtractBatch.
type BatchOptions struct {
	Workers int              // concurrent extractors, default 4
	Cache   *ResultCache     // optional memoization across runs
	Logger  *slog.Logger     // nil silences batch logging
	Now     func() time.Time // clock override, default time.Now
}

// BatchItem pairs an input document ID with its extraction record.
type BatchItem struct {
	ID     string       `json:"id"`
	Record FilingRecord `json:"record"`
}

// BatchResult is the outcome of a batch run. Items keep input order
// regardless of worker scheduling.
type BatchResult struct {
	Items     []BatchItem    `json:"items"`
	Extracted int            `json:"extracted"`
	Failed    int            `json:"failed"`
	ByMethod  map[Method]int `json:"byMethod"`
	Elapsed   time.Duration  `json:"elapsed"`
}

const defaultBatchWorkers = 4

// ExtractBatch runs the pipeline over docs with a fixed-size worker
// pool. Each document is independent, so the batch is embarrassingly
// parallel; ExtractBatch never fails as a whole, per-document failures
// surface in the individual records.
func ExtractBatch(docs []Document, opts BatchOptions) *BatchResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	if workers > len(docs) && len(docs) > 0 {
		workers = len(docs)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	start := time.Now()
	items := make([]BatchItem, len(docs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc := docs[i]

				record, cached := cachedRecord(opts.Cache, doc.Content)
				if !cached {
					record = extractRecord(doc.Title, doc.Summary, doc.Content, now())
					if opts.Cache != nil {
						opts.Cache.Put(doc.Content, record)
					}
				}

				items[i] = BatchItem{ID: doc.ID, Record: record}
				logger.Debug("extracted filing",
					"id", doc.ID,
					"method", record.Extraction.Method,
					"failed", record.Extraction.Failed,
					"cached", cached)
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &BatchResult{
		Items:   items,
		Elapsed: time.Since(start),
		ByMethod: lo.CountValuesBy(items, func(it BatchItem) Method {
			return it.Record.Extraction.Method
		}),
	}
	for _, it := range items {
		if it.Record.Extraction.Failed {
			result.Failed++
		} else {
			result.Extracted++
		}
	}

	logger.Info("batch extraction complete",
		"documents", len(docs),
		"extracted", result.Extracted,
		"failed", result.Failed,
		"elapsed", result.Elapsed)

	return result
}

func cachedRecord(c *ResultCache, content string) (FilingRecord, bool) {
	if c == nil {
		return FilingRecord{}, false
	}
	return c.Get(content)
}
