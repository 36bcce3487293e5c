package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookverse/verso/internal/bookverse"
	"github.com/bookverse/verso/internal/catalog"
	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/session"
	"github.com/bookverse/verso/internal/tui/components"
)

const requestTimeout = 15 * time.Second

// InitSessionCmd restores a persisted session, if any
func InitSessionCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		status := sess.Initialize(ctx)
		return SessionResolvedMsg{
			Status: status,
			User:   sess.CurrentUser(),
		}
	}
}

// LoadBooksCmd fetches the full catalog
func LoadBooksCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.Refresh(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading books"}
		}
		return BooksLoadedMsg{Books: books}
	}
}

// LoadCategoriesCmd fetches the category list
func LoadCategoriesCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		categories, err := svc.RefreshCategories(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading categories"}
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

// AuthCmd attempts a login or registration
func AuthCmd(sess *session.Store, submit components.AuthSubmit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if submit.Mode == components.ModeRegister {
			err = sess.Register(ctx, submit.Email, submit.Password, submit.Name, domain.RoleUser)
		} else {
			err = sess.Login(ctx, submit.Email, submit.Password)
		}
		if err != nil {
			return AuthResultMsg{Err: err}
		}
		return AuthResultMsg{User: sess.CurrentUser()}
	}
}

// LogoutCmd terminates the session locally
func LogoutCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess.Logout()
		return LoggedOutMsg{}
	}
}

// FetchBookCmd re-reads a single record ahead of editing
func FetchBookCmd(svc *catalog.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		book, err := svc.Fetch(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading book"}
		}
		return BookFetchedMsg{Book: book}
	}
}

// SaveBookCmd creates or updates a book, uploading a cover when a path is set
func SaveBookCmd(svc *catalog.Service, submit components.BookSubmit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var cover *bookverse.CoverImage
		if submit.CoverPath != "" {
			f, err := os.Open(submit.CoverPath)
			if err != nil {
				return BookSaveFailedMsg{Err: fmt.Errorf("open cover image: %w", err)}
			}
			defer f.Close()
			cover = &bookverse.CoverImage{
				Filename: filepath.Base(submit.CoverPath),
				Reader:   f,
			}
		}

		var (
			book domain.Book
			err  error
		)
		if submit.ID == "" {
			book, err = svc.Create(ctx, submit.Fields, cover)
		} else {
			book, err = svc.Update(ctx, submit.ID, submit.Fields, cover)
		}
		if err != nil {
			return BookSaveFailedMsg{Err: err}
		}
		return BookSavedMsg{Book: book, Created: submit.ID == ""}
	}
}

// DeleteBookCmd removes a book from the catalog
func DeleteBookCmd(svc *catalog.Service, id, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting book"}
		}
		return BookDeletedMsg{ID: id, Title: title}
	}
}

// TickCmd drives the loading spinner
func TickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ClearStatusCmd clears the footer after a short delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
