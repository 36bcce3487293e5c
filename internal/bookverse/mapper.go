package bookverse

import (
	"time"

	"github.com/bookverse/verso/internal/domain"
)

// parseTime handles the backend's timestamp formats: RFC 3339 with zone, or
// the naive ISO form the server emits for records it created itself.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// mapUser converts a wire user record to the domain entity
func mapUser(d userDTO) domain.User {
	return domain.User{
		ID:        d.ID,
		Email:     d.Email,
		Name:      d.Name,
		Role:      domain.Role(d.Role),
		CreatedAt: parseTime(d.CreatedAt),
	}
}

// mapBook converts a wire book record to the domain entity
func mapBook(d bookDTO) domain.Book {
	cover := ""
	if d.CoverImage != nil {
		cover = *d.CoverImage
	}
	return domain.Book{
		ID:          d.ID,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		CoverImage:  cover,
		IsFeatured:  d.IsFeatured,
		CTAText:     d.CTAText,
		CreatedAt:   parseTime(d.CreatedAt),
		UpdatedAt:   parseTime(d.UpdatedAt),
	}
}

// mapBooks converts a list of wire records, preserving server order
func mapBooks(dtos []bookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(dtos))
	for _, d := range dtos {
		books = append(books, mapBook(d))
	}
	return books
}
