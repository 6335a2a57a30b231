package insider_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	insider "github.com/hrvstr/go-insider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableDoc = `<html><body>
<p>The insider purchased shares of common stock as reported below.</p>
<table><tr><td>2,500</td><td>$18.20</td><td>$45,500</td></tr></table>
</body></html>`

const textDoc = "On 06/10/2025 the chief executive officer reported that he purchased " +
	"5,000 shares of common stock at a price of $12.50 per share."

func TestExtractBatch(t *testing.T) {
	xmlData, err := os.ReadFile("testdata/form4/meridian_sale/input.xml")
	require.NoError(t, err)

	docs := []insider.Document{
		{ID: "form4", Content: string(xmlData)},
		{ID: "table", Content: tableDoc},
		{ID: "text", Content: textDoc},
		{ID: "broken", Content: "nope"},
	}

	result := insider.ExtractBatch(docs, insider.BatchOptions{
		Workers: 3,
		Now:     func() time.Time { return testClock },
	})

	require.Len(t, result.Items, len(docs))

	// Items keep input order regardless of worker scheduling.
	for i, item := range result.Items {
		assert.Equal(t, docs[i].ID, item.ID)
	}

	assert.Equal(t, 3, result.Extracted)
	assert.Equal(t, 1, result.Failed)

	assert.Equal(t, 1, result.ByMethod[insider.MethodXMLStructured])
	assert.Equal(t, 1, result.ByMethod[insider.MethodHTMLTable])
	assert.Equal(t, 1, result.ByMethod[insider.MethodGenericRegex])
	assert.Equal(t, 1, result.ByMethod[insider.MethodFailed])
}

func TestExtractBatchTitleIdentity(t *testing.T) {
	// The feed title names the reporting person even when the document
	// body does not.
	docs := []insider.Document{
		{
			ID:      "indexed",
			Title:   "4 - Calloway Diane M (0001494730) (Reporting)",
			Content: tableDoc,
		},
	}

	result := insider.ExtractBatch(docs, insider.BatchOptions{
		Now: func() time.Time { return testClock },
	})

	require.Len(t, result.Items, 1)
	rec := result.Items[0].Record
	assert.Equal(t, "Calloway Diane M", rec.Insider.Name)
	assert.Equal(t, "0001494730", rec.Insider.CIK)
}

func TestExtractBatchCache(t *testing.T) {
	cache := insider.NewResultCache(time.Minute)

	docs := []insider.Document{
		{ID: "a", Content: tableDoc},
		{ID: "b", Content: textDoc},
		{ID: "a-again", Content: tableDoc},
	}

	// One worker keeps cache interactions sequential: the replayed
	// document is guaranteed to see the stored result.
	result := insider.ExtractBatch(docs, insider.BatchOptions{
		Workers: 1,
		Cache:   cache,
		Now:     func() time.Time { return testClock },
	})

	stats := cache.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.InDelta(t, 1.0/3.0, stats.HitRate, 0.001)

	if diff := cmp.Diff(result.Items[0].Record, result.Items[2].Record); diff != "" {
		t.Errorf("cached record differs from fresh record:\n%s", diff)
	}

	cache.Clear()
	assert.Zero(t, cache.Stats().Entries)
}

func TestExtractBatchEmpty(t *testing.T) {
	result := insider.ExtractBatch(nil, insider.BatchOptions{})

	assert.Empty(t, result.Items)
	assert.Zero(t, result.Extracted)
	assert.Zero(t, result.Failed)
}
