package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrAuthFailed indicates the credentials or token were rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrForbidden indicates the account lacks the required privilege
	ErrForbidden = errors.New("admin access required")

	// ErrBookNotFound indicates the requested book does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")
)

// APIError carries the verbatim detail message from a backend error payload.
// Err, when set, is the matching sentinel so callers can test with errors.Is
// while still seeing the backend's own wording.
type APIError struct {
	Status int    // HTTP status code
	Detail string // Backend "detail" message, may be empty
	Err    error  // Matching sentinel, may be nil
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns a human-readable message for the error, preferring the
// backend detail and falling back to a generic message. Intended for
// user-visible notifications where an unexplained failure must still say
// something.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	switch {
	case errors.Is(err, ErrAuthFailed):
		return "Invalid email or password"
	case errors.Is(err, ErrForbidden):
		return "Admin access required"
	case errors.Is(err, ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, ErrServerOffline):
		return "Could not reach the catalog server"
	default:
		return "Something went wrong, please try again"
	}
}
