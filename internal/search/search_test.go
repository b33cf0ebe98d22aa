package search

import (
	"testing"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	idx := NewIndex(nil)
	idx.Rebuild([]dict.KanjiEntry{
		{Literal: "日", Meanings: []string{"day", "sun"}, OnReadings: []string{"ニチ", "ジツ"}, KunReadings: []string{"ひ"}},
		{Literal: "月", Meanings: []string{"month", "moon"}, OnReadings: []string{"ゲツ", "ガツ"}, KunReadings: []string{"つき"}},
		{Literal: "火", Meanings: []string{"fire"}, OnReadings: []string{"カ"}, KunReadings: []string{"ひ"}},
	})
	return idx
}

func TestIndex_SearchByLiteral(t *testing.T) {
	idx := testIndex()

	results := idx.Search("日")
	require.Len(t, results, 1)
	require.Equal(t, "日", results[0].Literal)
}

func TestIndex_SearchByMeaning(t *testing.T) {
	idx := testIndex()

	results := idx.Search("moon")
	require.NotEmpty(t, results)
	require.Equal(t, "月", results[0].Literal)
}

func TestIndex_SearchByReading(t *testing.T) {
	idx := testIndex()

	// Two entries share the kun reading ひ
	results := idx.Search("ひ")
	require.Len(t, results, 2)
}

func TestIndex_SearchIsCaseInsensitive(t *testing.T) {
	idx := testIndex()

	results := idx.Search("FIRE")
	require.NotEmpty(t, results)
	require.Equal(t, "火", results[0].Literal)
}

func TestIndex_SearchDeduplicates(t *testing.T) {
	idx := testIndex()

	// "day" and "sun" both point at 日; fuzzy matching must not
	// return it twice
	results := idx.Search("d")
	seen := map[string]int{}
	for _, r := range results {
		seen[r.Literal]++
	}
	for literal, count := range seen {
		require.Equal(t, 1, count, "duplicate result for %s", literal)
	}
}

func TestIndex_EmptyQuery(t *testing.T) {
	idx := testIndex()

	require.Nil(t, idx.Search(""))
	require.Nil(t, idx.Search("   "))
}

func TestIndex_RebuildReplaces(t *testing.T) {
	idx := testIndex()
	require.Equal(t, 3, idx.Len())

	idx.Rebuild([]dict.KanjiEntry{
		{Literal: "水", Meanings: []string{"water"}},
	})
	require.Equal(t, 1, idx.Len())
	require.Empty(t, idx.Search("fire"))
	require.NotEmpty(t, idx.Search("water"))
}

func TestIndex_EmptyIndex(t *testing.T) {
	idx := NewIndex(nil)
	require.Equal(t, 0, idx.Len())
	require.Empty(t, idx.Search("day"))
}
