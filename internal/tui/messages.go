package tui

import (
	"time"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/session"
)

// SessionResolvedMsg reports the outcome of startup session restoration
type SessionResolvedMsg struct {
	Status session.Status
	User   *domain.User
}

// BooksLoadedMsg carries a refreshed catalog snapshot
type BooksLoadedMsg struct {
	Books []domain.Book
}

// CategoriesLoadedMsg carries the category list including the "all" sentinel
type CategoriesLoadedMsg struct {
	Categories []string
}

// AuthResultMsg reports the outcome of a login or register attempt
type AuthResultMsg struct {
	User *domain.User
	Err  error
}

// LoggedOutMsg reports that the session has been terminated locally
type LoggedOutMsg struct{}

// BookFetchedMsg carries a freshly re-read record for the edit form
type BookFetchedMsg struct {
	Book domain.Book
}

// BookSavedMsg reports a successful create or update
type BookSavedMsg struct {
	Book    domain.Book
	Created bool
}

// BookSaveFailedMsg keeps the form open with its values intact
type BookSaveFailedMsg struct {
	Err error
}

// BookDeletedMsg reports a successful delete
type BookDeletedMsg struct {
	ID    string
	Title string
}

// ErrMsg is a generic operation failure
type ErrMsg struct {
	Err     error
	Context string
}

// StatusMsg shows a transient message in the footer
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the footer status line
type ClearStatusMsg struct{}

// TickMsg drives the loading spinner
type TickMsg time.Time
