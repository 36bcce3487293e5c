package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookverse/verso/internal/domain"
)

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Category: "Fiction", IsFeatured: true},
		{ID: "2", Title: "The Lean Startup", Author: "Eric Ries", Category: "Business"},
		{ID: "3", Title: "Neuromancer", Author: "William Gibson", Category: "Fiction"},
		{ID: "4", Title: "Deep Work", Author: "Cal Newport", Category: "Business", IsFeatured: true},
		{ID: "5", Title: "Dune Messiah", Author: "Frank Herbert", Category: "Fiction"},
	}
}

func ids(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestFilterDefaultCriteriaPassesEverything(t *testing.T) {
	books := testBooks()
	got := Filter(books, domain.DefaultCriteria())
	assert.Equal(t, ids(books), ids(got))
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter(testBooks(), domain.Criteria{Category: "Fiction"})
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestFilterIsIdempotent(t *testing.T) {
	c := domain.Criteria{Category: "Fiction", Query: "dune"}
	once := Filter(testBooks(), c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestFilterQueryIsCaseInsensitive(t *testing.T) {
	for _, query := range []string{"dune", "Dune", "DUNE", "dUnE"} {
		got := Filter(testBooks(), domain.Criteria{Category: domain.CategoryAll, Query: query})
		assert.Equal(t, []string{"1", "5"}, ids(got), "query %q", query)
	}
}

func TestFilterQueryMatchesAuthor(t *testing.T) {
	got := Filter(testBooks(), domain.Criteria{Query: "herbert"})
	assert.Equal(t, []string{"1", "5"}, ids(got))
}

func TestFilterQueryWhitespaceIsLiteral(t *testing.T) {
	// Whitespace is part of the substring, not stripped
	got := Filter(testBooks(), domain.Criteria{Query: "dune "})
	assert.Equal(t, []string{"5"}, ids(got))

	got = Filter(testBooks(), domain.Criteria{Query: "  dune  "})
	assert.Empty(t, got)
}

func TestFilterConjunction(t *testing.T) {
	// Category and query and featured must all hold at once
	got := Filter(testBooks(), domain.Criteria{
		Category:     "Fiction",
		Query:        "dune",
		FeaturedOnly: true,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterCategoryIsExactMatch(t *testing.T) {
	// No substring or case folding on categories
	got := Filter(testBooks(), domain.Criteria{Category: "fiction"})
	assert.Empty(t, got)

	got = Filter(testBooks(), domain.Criteria{Category: "Business"})
	assert.Equal(t, []string{"2", "4"}, ids(got))
}

func TestFilterAllSentinelPassesEveryCategory(t *testing.T) {
	got := Filter(testBooks(), domain.Criteria{Category: domain.CategoryAll})
	assert.Len(t, got, len(testBooks()))
}

func TestFilterFeaturedOnly(t *testing.T) {
	got := Filter(testBooks(), domain.Criteria{FeaturedOnly: true})
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestFilterNoMatchesYieldsEmpty(t *testing.T) {
	got := Filter(testBooks(), domain.Criteria{Query: "zzzzzz"})
	assert.Empty(t, got)
}

func TestFeaturedIndependentOfCriteria(t *testing.T) {
	got := Featured(testBooks())
	assert.Equal(t, []string{"1", "4"}, ids(got))
}
