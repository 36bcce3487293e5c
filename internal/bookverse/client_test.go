package bookverse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/log"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, log.NullLogger()), srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestLoginReturnsUserAndToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req["email"])
		assert.Equal(t, "hunter2", req["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token": "tok-123",
			"token_type":   "bearer",
			"user": map[string]any{
				"id":         "u1",
				"email":      "ada@example.com",
				"name":       "Ada",
				"role":       "admin",
				"created_at": "2025-03-01T10:00:00",
			},
		})
	}))

	user, token, err := client.Login(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	// Login does not attach the token; the session store owns that decision
	assert.Empty(t, client.Token())
}

func TestLoginRejectedMapsToAuthFailed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
	}))

	_, _, err := client.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, "Incorrect email or password", domain.Message(err))
}

func TestMeSendsBearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": "u1", "email": "ada@example.com", "name": "Ada", "role": "user",
		})
	}))

	client.SetToken("tok-123")
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.False(t, user.IsAdmin())
}

func TestListBooksMapsWireRecords(t *testing.T) {
	cover := "/uploads/dune.jpg"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{
				"id": "1", "title": "Dune", "author": "Frank Herbert",
				"description": "Spice.", "price": 14.99, "category": "Fiction",
				"cover_image": cover, "is_featured": true,
				"cta_button_text": "", "created_at": "2025-03-01T10:00:00.123456",
			},
			{
				"id": "2", "title": "Deep Work", "author": "Cal Newport",
				"description": "Focus.", "price": 18, "category": "Business",
				"cover_image": nil, "is_featured": false,
			},
		})
	}))

	books, err := client.ListBooks(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, cover, books[0].CoverImage)
	assert.True(t, books[0].IsFeatured)
	assert.False(t, books[0].CreatedAt.IsZero())
	assert.Equal(t, "$14.99", books[0].FormattedPrice())
	assert.Equal(t, domain.DefaultCTAText, books[0].CTAButtonText())

	// Missing cover arrives as JSON null
	assert.Empty(t, books[1].CoverImage)
}

func TestListBooksQueryParameters(t *testing.T) {
	featured := true
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Fiction", r.URL.Query().Get("category"))
		assert.Equal(t, "true", r.URL.Query().Get("featured"))
		assert.Equal(t, "dune", r.URL.Query().Get("search"))
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	}))

	_, err := client.ListBooks(context.Background(), ListOptions{
		Category: "Fiction",
		Featured: &featured,
		Search:   "dune",
	})
	require.NoError(t, err)
}

func TestCreateBookSubmitsMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Dune", r.FormValue("title"))
		assert.Equal(t, "Frank Herbert", r.FormValue("author"))
		assert.Equal(t, "14.99", r.FormValue("price"))
		assert.Equal(t, "Fiction", r.FormValue("category"))
		assert.Equal(t, "true", r.FormValue("is_featured"))
		assert.Equal(t, "Buy Now", r.FormValue("cta_button_text"))

		file, header, err := r.FormFile("cover_image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "dune.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": "1", "title": "Dune", "author": "Frank Herbert",
			"price": 14.99, "category": "Fiction", "is_featured": true,
		})
	}))

	book, err := client.CreateBook(context.Background(), domain.BookFields{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Spice.",
		Price:       14.99,
		Category:    "Fiction",
		IsFeatured:  true,
		CTAText:     "Buy Now",
	}, &CoverImage{
		Filename: "dune.jpg",
		Reader:   strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1", book.ID)
}

func TestUpdateBookWithoutCoverOmitsFilePart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/books/42", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, _, err := r.FormFile("cover_image")
		assert.Error(t, err)

		writeJSON(t, w, http.StatusOK, map[string]any{"id": "42", "title": "Dune"})
	}))

	book, err := client.UpdateBook(context.Background(), "42", domain.BookFields{Title: "Dune"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "42", book.ID)
}

func TestDeleteMissingBookMapsToNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Book not found"})
	}))

	err := client.DeleteBook(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestForbiddenMutationMapsToForbidden(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]string{"detail": "Admin access required"})
	}))

	_, err := client.CreateBook(context.Background(), domain.BookFields{Title: "x"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUnreachableServerMapsToOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, log.NullLogger())
	_, err := client.ListBooks(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Equal(t, "Could not reach the catalog server", domain.Message(err))
}

func TestParseTimeFormats(t *testing.T) {
	for _, s := range []string{
		"2025-03-01T10:00:00Z",
		"2025-03-01T10:00:00.123456",
		"2025-03-01T10:00:00",
	} {
		assert.False(t, parseTime(s).IsZero(), "format %q", s)
	}
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("not a time").IsZero())
}
