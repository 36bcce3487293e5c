package bookverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bookverse/verso/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Verso/1.0"
)

// Client is a thin facade over the BookVerse REST API. Each call is a single
// request/response round trip: no caching, no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string // Bearer credential attached to outbound requests
}

// NewClient creates a new BookVerse API client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken attaches a bearer credential to all subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the outbound bearer credential
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently attached bearer credential
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// CoverImage is an optional binary cover upload for book mutations
type CoverImage struct {
	Filename string
	Reader   io.Reader
}

// ListOptions are the optional server-side query parameters of GET /api/books.
// The showcase filters locally; these are only used for the initial fetch.
type ListOptions struct {
	Category string
	Featured *bool
	Search   string
}

// doRequest performs an authenticated HTTP request with an optional JSON body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, query, body, contentType)
}

// do performs the request and maps error statuses to domain errors
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("bookverse request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("bookverse request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("bookverse request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, apiError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// apiError builds an APIError carrying the backend detail message and, where
// the status maps cleanly, the matching sentinel for errors.Is tests
func apiError(status int, body []byte) error {
	var payload errorResponse
	_ = json.Unmarshal(body, &payload)

	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = domain.ErrAuthFailed
	case http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case http.StatusNotFound:
		sentinel = domain.ErrBookNotFound
	}

	return &domain.APIError{Status: status, Detail: payload.Detail, Err: sentinel}
}

// Login authenticates with email and password, returning the user record and
// access token. The token is not attached to the client; the session store
// decides when to do that.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.User{}, "", fmt.Errorf("failed to parse auth response: %w", err)
	}

	return mapUser(resp.User), resp.AccessToken, nil
}

// Register creates an account and returns the user record and access token
func (c *Client) Register(ctx context.Context, email, password, name string, role domain.Role) (domain.User, string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", nil, registerRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     string(role),
	})
	if err != nil {
		return domain.User{}, "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.User{}, "", fmt.Errorf("failed to parse auth response: %w", err)
	}

	return mapUser(resp.User), resp.AccessToken, nil
}

// Me returns the user record for the attached bearer credential
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return domain.User{}, err
	}

	var dto userDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.User{}, fmt.Errorf("failed to parse user: %w", err)
	}

	return mapUser(dto), nil
}

// ListBooks returns books in the server's order
func (c *Client) ListBooks(ctx context.Context, opts ListOptions) ([]domain.Book, error) {
	query := url.Values{}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Featured != nil {
		query.Set("featured", strconv.FormatBool(*opts.Featured))
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/books", query, nil)
	if err != nil {
		return nil, err
	}

	var dtos []bookDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse books: %w", err)
	}

	return mapBooks(dtos), nil
}

// GetBook returns a single book by id
func (c *Client) GetBook(ctx context.Context, id string) (domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.Book{}, err
	}

	var dto bookDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Book{}, fmt.Errorf("failed to parse book: %w", err)
	}

	return mapBook(dto), nil
}

// ListCategories returns the category strings currently in use server-side.
// The UI's "all" sentinel is not part of this list.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}

	return categories, nil
}

// CreateBook submits a new book as a multipart payload. Requires admin
// privilege server-side; the backend is the authority, not this client.
func (c *Client) CreateBook(ctx context.Context, fields domain.BookFields, cover *CoverImage) (domain.Book, error) {
	return c.submitBook(ctx, http.MethodPost, "/api/books", fields, cover)
}

// UpdateBook submits changed fields for an existing book as a multipart payload
func (c *Client) UpdateBook(ctx context.Context, id string, fields domain.BookFields, cover *CoverImage) (domain.Book, error) {
	return c.submitBook(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), fields, cover)
}

// submitBook encodes the multipart body shared by create and update
func (c *Client) submitBook(ctx context.Context, method, path string, fields domain.BookFields, cover *CoverImage) (domain.Book, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	formFields := map[string]string{
		"title":           fields.Title,
		"author":          fields.Author,
		"description":     fields.Description,
		"price":           strconv.FormatFloat(fields.Price, 'f', -1, 64),
		"category":        fields.Category,
		"is_featured":     strconv.FormatBool(fields.IsFeatured),
		"cta_button_text": fields.CTAText,
	}
	for name, value := range formFields {
		if err := w.WriteField(name, value); err != nil {
			return domain.Book{}, fmt.Errorf("failed to encode form field %s: %w", name, err)
		}
	}

	if cover != nil {
		part, err := w.CreateFormFile("cover_image", cover.Filename)
		if err != nil {
			return domain.Book{}, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, cover.Reader); err != nil {
			return domain.Book{}, fmt.Errorf("failed to encode cover image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return domain.Book{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	body, err := c.do(ctx, method, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return domain.Book{}, err
	}

	var dto bookDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Book{}, fmt.Errorf("failed to parse book: %w", err)
	}

	return mapBook(dto), nil
}

// DeleteBook removes a book by id. A repeated delete surfaces whatever the
// backend returns; idempotency is not guaranteed at this layer.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
	return err
}
