package catalog

import (
	"strings"

	"github.com/bookverse/verso/internal/domain"
)

// Filter returns the books matching the criteria, in their original order.
// The three predicates are independent and conjoined:
//
//   - category: exact match, unless the criteria carry the "all" sentinel
//   - query: case-insensitive substring of title or author
//   - featured: gate on IsFeatured when FeaturedOnly is set
//
// Recomputation is total; the lists involved are small.
func Filter(books []domain.Book, c domain.Criteria) []domain.Book {
	query := strings.ToLower(c.Query)

	visible := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if !categoryPass(b, c.Category) {
			continue
		}
		if !queryPass(b, query) {
			continue
		}
		if c.FeaturedOnly && !b.IsFeatured {
			continue
		}
		visible = append(visible, b)
	}
	return visible
}

func categoryPass(b domain.Book, category string) bool {
	return category == "" || category == domain.CategoryAll || b.Category == category
}

func queryPass(b domain.Book, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(b.Author), lowerQuery)
}

// Featured returns the featured subset for the showcase rail. Independent of
// any active criteria.
func Featured(books []domain.Book) []domain.Book {
	featured := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.IsFeatured {
			featured = append(featured, b)
		}
	}
	return featured
}
