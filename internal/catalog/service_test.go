package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookverse/verso/internal/bookverse"
	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/log"
)

// fakeBackend is a minimal in-memory stand-in for the BookVerse API
type fakeBackend struct {
	books  []map[string]any
	nextID int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		books: []map[string]any{
			{"id": "1", "title": "Dune", "author": "Frank Herbert", "category": "Fiction", "is_featured": true, "price": 14.99},
			{"id": "2", "title": "Deep Work", "author": "Cal Newport", "category": "Business", "is_featured": false, "price": 18.0},
		},
		nextID: 3,
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.books)
	})
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Fiction", "Business"})
	})
	mux.HandleFunc("GET /api/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, b := range f.books {
			if b["id"] == r.PathValue("id") {
				json.NewEncoder(w).Encode(b)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Book not found"})
	})
	mux.HandleFunc("POST /api/books", func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		book := map[string]any{
			"id":     strconv.Itoa(f.nextID),
			"title":  r.FormValue("title"),
			"author": r.FormValue("author"),
		}
		f.nextID++
		f.books = append(f.books, book)
		json.NewEncoder(w).Encode(book)
	})
	mux.HandleFunc("PUT /api/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		json.NewEncoder(w).Encode(map[string]any{
			"id":    r.PathValue("id"),
			"title": r.FormValue("title"),
		})
	})
	mux.HandleFunc("DELETE /api/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	})
	return mux
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(newFakeBackend().handler())
	t.Cleanup(srv.Close)
	client := bookverse.NewClient(srv.URL, log.NullLogger())
	return NewService(client, log.NullLogger())
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	svc := newTestService(t)
	assert.Empty(t, svc.Books())

	books, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Len(t, svc.Books(), 2)
}

func TestCategoriesPrependAllSentinel(t *testing.T) {
	svc := newTestService(t)

	// Before the first refresh only the sentinel is available
	assert.Equal(t, []string{domain.CategoryAll}, svc.Categories())

	categories, err := svc.RefreshCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryAll, "Fiction", "Business"}, categories)
}

func TestCreatePrependsToSnapshot(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	book, err := svc.Create(context.Background(), domain.BookFields{Title: "Neuromancer", Author: "William Gibson"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "3", book.ID)

	books := svc.Books()
	require.Len(t, books, 3)
	assert.Equal(t, "Neuromancer", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "2", domain.BookFields{Title: "Deep Work (2nd ed)"}, nil)
	require.NoError(t, err)

	books := svc.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Deep Work (2nd ed)", books[1].Title)
}

func TestDeleteRemovesFromSnapshot(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "1"))

	books := svc.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "2", books[0].ID)

	_, ok := svc.Get("1")
	assert.False(t, ok)
}

func TestFetchRefreshesSnapshotEntry(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	book, err := svc.Fetch(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", book.Title)

	_, err = svc.Fetch(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBooksReturnsACopy(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	books := svc.Books()
	books[0].Title = "mutated"
	assert.Equal(t, "Dune", svc.Books()[0].Title)
}
