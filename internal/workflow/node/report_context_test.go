package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCrawlSnapshot(t *testing.T) {
	snap := BuildCrawlSnapshot("https://example.com")
	require.Len(t, snap.CrawlData, 6)
	assert.Equal(t, "https://example.com/about", snap.CrawlData[1].URL)
	assert.Equal(t, 404, snap.CrawlData[5].StatusCode)

	text, err := IndentedJSON(snap)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Contains(t, decoded, "google_search_console_summary")
	errs := decoded["error_summary"].(map[string]any)
	assert.Len(t, errs["404_errors"], 2)
	assert.Equal(t, []any{}, errs["5xx_errors"])

	again, err := IndentedJSON(BuildCrawlSnapshot("https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestBuildSerpSnapshotKeepsKeywordVerbatim(t *testing.T) {
	kw := "R&D <tools>"
	snap := BuildSerpSnapshot(kw)
	require.Len(t, snap.TopTenResult, 10)
	assert.Equal(t, kw+" - The Ultimate Guide", snap.TopTenResult[0].Title)

	text, err := IndentedJSON(snap)
	require.NoError(t, err)
	assert.Contains(t, text, `"keyword": "R&D <tools>"`)
	assert.Contains(t, text, "top_10_results")
}
