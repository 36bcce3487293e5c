package search

import (
	"sort"
	"strings"

	"github.com/bookverse/verso/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a ranked quick-jump result
type Match struct {
	Book  domain.Book
	Score int // Lower is better
}

// QuickJump ranks books against a free-form query for the omnibar. Matching
// is fuzzy over "title by author" so either part of the line can be typed.
// This is deliberately looser than the showcase filter, which keeps exact
// substring semantics; quick-jump is about getting to a known book fast.
func QuickJump(query string, books []domain.Book) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = b.Title + " by " + b.Author
	}

	ranks := fuzzy.RankFindFold(query, lines)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{
			Book:  books[r.OriginalIndex],
			Score: r.Distance,
		})
	}
	return matches
}
