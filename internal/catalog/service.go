package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bookverse/verso/internal/bookverse"
	"github.com/bookverse/verso/internal/domain"
)

// Service owns the authoritative in-memory book list and the category list.
// Reads hand out copies; views never share the backing slices.
//
// Admin mutations go through the API client and then update the local
// snapshot optimistically: create prepends, update replaces by id, delete
// removes by id. There is no re-sync after a mutation, so a concurrent admin
// session can drift the snapshot until the next Refresh. Known limitation.
type Service struct {
	client *bookverse.Client
	logger *slog.Logger

	mu         sync.RWMutex
	books      []domain.Book
	categories []string
}

// NewService creates a catalog service with an empty snapshot
func NewService(client *bookverse.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// Refresh replaces the book snapshot with the server's current list,
// preserving the server's order
func (s *Service) Refresh(ctx context.Context) ([]domain.Book, error) {
	books, err := s.client.ListBooks(ctx, bookverse.ListOptions{})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.books = books
	s.mu.Unlock()

	s.logger.Debug("catalog refreshed", "books", len(books))
	return s.Books(), nil
}

// RefreshCategories replaces the category snapshot. The synthetic "all"
// sentinel is prepended for the UI; it never reaches the backend.
func (s *Service) RefreshCategories(ctx context.Context) ([]string, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	withSentinel := make([]string, 0, len(categories)+1)
	withSentinel = append(withSentinel, domain.CategoryAll)
	withSentinel = append(withSentinel, categories...)

	s.mu.Lock()
	s.categories = withSentinel
	s.mu.Unlock()

	s.logger.Debug("categories refreshed", "count", len(categories))
	return s.Categories(), nil
}

// Books returns a copy of the current snapshot
func (s *Service) Books() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]domain.Book, len(s.books))
	copy(books, s.books)
	return books
}

// Categories returns a copy of the category list, "all" sentinel first.
// Before the first RefreshCategories it returns just the sentinel.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.categories) == 0 {
		return []string{domain.CategoryAll}
	}
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// Create submits a new book and prepends the server's record to the snapshot
func (s *Service) Create(ctx context.Context, fields domain.BookFields, cover *bookverse.CoverImage) (domain.Book, error) {
	book, err := s.client.CreateBook(ctx, fields, cover)
	if err != nil {
		return domain.Book{}, err
	}

	s.mu.Lock()
	s.books = append([]domain.Book{book}, s.books...)
	s.mu.Unlock()

	s.logger.Info("book created", "id", book.ID, "title", book.Title)
	return book, nil
}

// Update submits changed fields and replaces the matching snapshot entry in
// place, keeping list order
func (s *Service) Update(ctx context.Context, id string, fields domain.BookFields, cover *bookverse.CoverImage) (domain.Book, error) {
	book, err := s.client.UpdateBook(ctx, id, fields, cover)
	if err != nil {
		return domain.Book{}, err
	}

	s.mu.Lock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i] = book
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("book updated", "id", book.ID, "title", book.Title)
	return book, nil
}

// Delete removes a book server-side, then from the snapshot
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("book deleted", "id", id)
	return nil
}

// Fetch re-reads a single record from the server and refreshes the matching
// snapshot entry. Used before editing so the form starts from the server's
// current state rather than a possibly drifted snapshot.
func (s *Service) Fetch(ctx context.Context, id string) (domain.Book, error) {
	book, err := s.client.GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}

	s.mu.Lock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i] = book
			break
		}
	}
	s.mu.Unlock()

	return book, nil
}

// Get returns the snapshot entry with the given id, if present
func (s *Service) Get(id string) (domain.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}
