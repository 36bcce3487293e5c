package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bookverse/verso/internal/bookverse"
	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/store"
)

// Status is the authentication state of the client
type Status int

const (
	// StatusInitializing is the startup state while a persisted token is
	// being validated. Authorization-sensitive rendering is gated on it.
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusAnonymous
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "Initializing"
	case StatusAuthenticated:
		return "Authenticated"
	case StatusAnonymous:
		return "Anonymous"
	default:
		return "Unknown"
	}
}

// Store owns the authentication lifecycle: the persisted token, the current
// user record, and the status transitions between them. The current user is
// present exactly when the status is Authenticated; the token survives
// restarts, the user record does not.
//
// Transitions: Initializing resolves once to Authenticated or Anonymous;
// Authenticated falls back to Anonymous on logout or credential rejection;
// Anonymous becomes Authenticated on a successful login or register. Nothing
// else.
type Store struct {
	client *bookverse.Client
	state  *store.StateStore
	logger *slog.Logger

	mu          sync.RWMutex
	status      Status
	currentUser *domain.User
	initialized bool
}

// NewStore creates a session store in the Initializing state
func NewStore(client *bookverse.Client, state *store.StateStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		state:  state,
		logger: logger,
		status: StatusInitializing,
	}
}

// Status returns the current authentication status
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// CurrentUser returns the authenticated user record, or nil
func (s *Store) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// IsAdmin reports whether the current user may use catalog mutations
func (s *Store) IsAdmin() bool {
	u := s.CurrentUser()
	return u != nil && u.IsAdmin()
}

// Initialize resolves the startup state exactly once per process: it reads
// the persisted token, validates it against the backend's current-user
// endpoint, and lands on Authenticated or Anonymous. Any validation failure
// (expired token, network error) clears the persisted token and the outbound
// credential. Repeat calls are no-ops.
func (s *Store) Initialize(ctx context.Context) Status {
	s.mu.Lock()
	if s.initialized {
		status := s.status
		s.mu.Unlock()
		return status
	}
	s.initialized = true
	s.mu.Unlock()

	token := s.state.Token()
	if token == "" {
		s.logger.Debug("no persisted token, starting anonymous")
		s.setAnonymous()
		return StatusAnonymous
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Info("persisted token rejected", "error", err)
		s.clearCredentials()
		s.setAnonymous()
		return StatusAnonymous
	}

	s.setAuthenticated(user)
	s.logger.Info("session restored", "email", user.Email, "role", user.Role)
	return StatusAuthenticated
}

// Login authenticates with the backend and, on success, persists the returned
// token and transitions to Authenticated. On failure the state is unchanged
// and the returned error carries a message suitable for display (use
// domain.Message).
func (s *Store) Login(ctx context.Context, email, password string) error {
	user, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return err
	}
	s.adopt(user, token)
	s.logger.Info("logged in", "email", user.Email, "role", user.Role)
	return nil
}

// Register creates an account and logs it in, with the same contract as
// Login. The role is passed through; privilege elevation is the backend's
// decision, not this client's.
func (s *Store) Register(ctx context.Context, email, password, name string, role domain.Role) error {
	user, token, err := s.client.Register(ctx, email, password, name, role)
	if err != nil {
		s.logger.Info("registration failed", "email", email, "error", err)
		return err
	}
	s.adopt(user, token)
	s.logger.Info("registered", "email", user.Email, "role", user.Role)
	return nil
}

// Logout clears the persisted token, the outbound credential, and the current
// user. Synchronous and cannot fail: persistence errors are logged and the
// state still transitions to Anonymous.
func (s *Store) Logout() {
	s.clearCredentials()
	s.setAnonymous()
	s.logger.Info("logged out")
}

// Invalidate reverts to Anonymous after an authenticated request was rejected
// elsewhere in the program. Equivalent to Logout but named for its trigger.
func (s *Store) Invalidate() {
	s.clearCredentials()
	s.setAnonymous()
	s.logger.Info("session invalidated by credential rejection")
}

// adopt installs a fresh token and user after a successful login or register
func (s *Store) adopt(user domain.User, token string) {
	if err := s.state.SaveToken(token); err != nil {
		s.logger.Warn("failed to persist token", "error", err)
	}
	s.client.SetToken(token)
	s.setAuthenticated(user)
}

func (s *Store) clearCredentials() {
	if err := s.state.ClearToken(); err != nil {
		s.logger.Warn("failed to clear persisted token", "error", err)
	}
	s.client.ClearToken()
}

func (s *Store) setAuthenticated(user domain.User) {
	s.mu.Lock()
	s.status = StatusAuthenticated
	s.currentUser = &user
	s.mu.Unlock()
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.status = StatusAnonymous
	s.currentUser = nil
	s.mu.Unlock()
}
