package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the privilege level of a user account
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an authenticated account on the catalog server
type User struct {
	ID        string    // Server-assigned identifier
	Email     string    // Login identity
	Name      string    // Display name
	Role      Role      // "user" or "admin"
	CreatedAt time.Time // Account creation time
}

// IsAdmin reports whether the account may use catalog mutations
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DefaultCTAText is the call-to-action shown when the server record has none
const DefaultCTAText = "Buy Now"

// Book represents a single catalog record
type Book struct {
	ID          string  // Server-assigned, immutable
	Title       string  // Display title
	Author      string  // Author line
	Description string  // Long-form description
	Price       float64 // Non-negative decimal
	Category    string  // Server-extensible category string
	CoverImage  string  // Absolute URL, server-relative path, or empty
	IsFeatured  bool    // Shown in the featured rail
	CTAText     string  // Call-to-action button text
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormattedPrice returns the price as a display string
func (b Book) FormattedPrice() string {
	return fmt.Sprintf("$%.2f", b.Price)
}

// CTAButtonText returns the call-to-action text, falling back to the default
func (b Book) CTAButtonText() string {
	if b.CTAText == "" {
		return DefaultCTAText
	}
	return b.CTAText
}

// CoverURL resolves the cover reference for display. Server-relative paths
// (e.g. "/uploads/abc.jpg") are resolved against baseURL; absolute URLs pass
// through; an empty reference returns "".
func (b Book) CoverURL(baseURL string) string {
	switch {
	case b.CoverImage == "":
		return ""
	case strings.HasPrefix(b.CoverImage, "http://"), strings.HasPrefix(b.CoverImage, "https://"):
		return b.CoverImage
	default:
		return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(b.CoverImage, "/")
	}
}

// BookFields carries the mutable scalar fields of a book for create/update
// submissions. The server assigns id and timestamps.
type BookFields struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Category    string
	IsFeatured  bool
	CTAText     string
}

// CategoryAll is the synthetic category sentinel used only by the UI filter.
// It is never sent to the backend.
const CategoryAll = "all"

// Criteria is the triple of filter inputs driving the visible book list
type Criteria struct {
	Category     string // Exact category, or CategoryAll
	Query        string // Case-insensitive substring on title or author
	FeaturedOnly bool
}

// DefaultCriteria returns the criteria that pass every book through
func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll}
}

// IsDefault reports whether the criteria filter nothing out
func (c Criteria) IsDefault() bool {
	return c == DefaultCriteria()
}
