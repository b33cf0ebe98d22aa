// Package search provides fuzzy lookup over the installed kanji data set.
package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/hokuto/jiten/internal/dict"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Index holds an in-memory lookup index over installed entries
type Index struct {
	mu      sync.RWMutex
	entries []dict.KanjiEntry
	terms   []string         // Pre-computed lowercase searchable terms
	byTerm  map[string][]int // term -> entry indexes
	logger  *slog.Logger
}

// NewIndex creates an empty index
func NewIndex(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		byTerm: make(map[string][]int),
		logger: logger,
	}
}

// Rebuild replaces the index contents with the given entries
func (idx *Index) Rebuild(entries []dict.KanjiEntry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = entries
	idx.terms = idx.terms[:0]
	idx.byTerm = make(map[string][]int)

	for i, entry := range entries {
		for _, term := range searchableTerms(entry) {
			if _, seen := idx.byTerm[term]; !seen {
				idx.terms = append(idx.terms, term)
			}
			idx.byTerm[term] = append(idx.byTerm[term], i)
		}
	}

	idx.logger.Debug("rebuilt search index", "entries", len(entries), "terms", len(idx.terms))
}

// Len returns the number of indexed entries
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Search returns entries matching the query by literal, meaning or reading,
// best matches first
func (idx *Index) Search(query string) []dict.KanjiEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// A single-character query is usually the kanji itself
	if indexes, ok := idx.byTerm[query]; ok {
		return idx.collect(indexes, nil)
	}

	matches := fuzzy.RankFindNormalizedFold(query, idx.terms)
	sort.Sort(matches)

	seen := make(map[int]bool)
	var results []dict.KanjiEntry
	for _, match := range matches {
		for _, i := range idx.byTerm[match.Target] {
			if seen[i] {
				continue
			}
			seen[i] = true
			results = append(results, idx.entries[i])
		}
	}
	return results
}

// collect maps entry indexes to entries, skipping duplicates
func (idx *Index) collect(indexes []int, seen map[int]bool) []dict.KanjiEntry {
	if seen == nil {
		seen = make(map[int]bool)
	}
	var results []dict.KanjiEntry
	for _, i := range indexes {
		if seen[i] {
			continue
		}
		seen[i] = true
		results = append(results, idx.entries[i])
	}
	return results
}

// searchableTerms extracts the lowercase terms an entry can be found by
func searchableTerms(entry dict.KanjiEntry) []string {
	terms := make([]string, 0, 1+len(entry.Meanings)+len(entry.OnReadings)+len(entry.KunReadings))
	terms = append(terms, entry.Literal)
	for _, m := range entry.Meanings {
		terms = append(terms, strings.ToLower(m))
	}
	terms = append(terms, entry.OnReadings...)
	terms = append(terms, entry.KunReadings...)
	return terms
}
