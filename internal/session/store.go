// Package session coordinates the running client's authentication state and
// its durable cookie mirror. One Store instance exists per client; it is the
// only writer of its state and of the two auth cookies.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/freddy-le-go/mockauth/internal/logging"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// API is the credential backend the store delegates to. *mockapi.Service
// satisfies it; tests provide fakes.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.APIResponse[models.AuthData], error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.APIResponse[models.AuthData], error)
	ValidateToken(ctx context.Context, token string) (*models.APIResponse[models.TokenValidation], error)
	Logout(ctx context.Context) (*models.APIResponse[models.LogoutData], error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.APIResponse[models.UpdateProfileResponse], error)
}

// Store holds the authentication state for one running client.
//
// Lifecycle: anonymous → authenticating (login/register in flight) →
// authenticated → anonymous again on logout or failed restore. IsLoading is
// true for the duration of any in-flight operation and cleared on every exit
// path.
type Store struct {
	api    API
	jar    Jar
	logger logging.Logger

	// reload is invoked after logout cleanup, standing in for the full page
	// reload the browser client performed. May be nil.
	reload func()

	mu              sync.Mutex
	user            *models.User
	isAuthenticated bool
	rememberMe      bool
	token           string
	isLoading       bool
}

// NewStore wires a session store to its collaborators. reload may be nil.
func NewStore(api API, jar Jar, logger logging.Logger, reload func()) *Store {
	return &Store{api: api, jar: jar, logger: logger, reload: reload}
}

// User returns a copy of the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

func (s *Store) RememberMe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rememberMe
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

// Login authenticates and, on success, mirrors the session into cookies.
// On failure the prior state is left untouched and the error is returned
// unchanged for the UI to render.
func (s *Store) Login(ctx context.Context, userID, password string, rememberMe bool) (*models.APIResponse[models.AuthData], error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, models.LoginRequest{UserID: userID, Password: password})
	if err != nil {
		return nil, err
	}

	s.establish(ctx, resp.Data.User, resp.Data.Token, rememberMe)
	return resp, nil
}

// Register creates an account and treats success as an implicit login: the
// store becomes authenticated immediately, no separate login step.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest, rememberMe bool) (*models.APIResponse[models.AuthData], error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	s.establish(ctx, resp.Data.User, resp.Data.Token, rememberMe)
	return resp, nil
}

func (s *Store) establish(ctx context.Context, user models.User, token string, rememberMe bool) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.isAuthenticated = true
	s.rememberMe = rememberMe
	s.token = token
	s.mu.Unlock()

	s.writeCookies(ctx, user, token, rememberMe)
}

func (s *Store) writeCookies(ctx context.Context, user models.User, token string, rememberMe bool) {
	ttl := sessionExpiry
	if rememberMe {
		ttl = rememberMeExpiry
	}

	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error(ctx, "marshal user cookie", "error", err)
		return
	}
	if err := s.jar.Set(CookieUser, string(data), ttl); err != nil {
		s.logger.Warn(ctx, "write user cookie", "error", err)
	}
	if err := s.jar.Set(CookieToken, token, ttl); err != nil {
		s.logger.Warn(ctx, "write token cookie", "error", err)
	}
}

// Logout clears all session state and both cookies, regardless of whether
// the backend call succeeds. A backend failure is logged, never surfaced.
// The reload hook runs last so the caller ends on a clean slate.
func (s *Store) Logout(ctx context.Context) {
	s.setLoading(true)

	if _, err := s.api.Logout(ctx); err != nil {
		s.logger.Error(ctx, "logout error", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.isAuthenticated = false
	s.rememberMe = false
	s.token = ""
	s.isLoading = false
	s.mu.Unlock()

	if err := s.jar.Remove(CookieUser); err != nil {
		s.logger.Warn(ctx, "remove user cookie", "error", err)
	}
	if err := s.jar.Remove(CookieToken); err != nil {
		s.logger.Warn(ctx, "remove token cookie", "error", err)
	}

	if s.reload != nil {
		s.reload()
	}
}

// LoadFromCookie restores a previous session at startup. When both auth
// cookies are present, the token is re-validated against the backend; a
// stale or forged cookie triggers the full logout cleanup so the client can
// never come up half-authenticated.
func (s *Store) LoadFromCookie(ctx context.Context) {
	if _, ok := s.jar.Get(CookieUser); !ok {
		return
	}
	token, ok := s.jar.Get(CookieToken)
	if !ok {
		return
	}

	resp, err := s.api.ValidateToken(ctx, token)
	if err != nil {
		s.logger.Warn(ctx, "session restore failed, clearing cookies", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	u := resp.Data.User
	s.user = &u
	s.isAuthenticated = true
	s.token = token
	s.rememberMe = true
	s.mu.Unlock()

	s.logger.Info(ctx, "session restored", "user_id", resp.Data.User.UserID)
}

// UpdateUser applies a profile patch for the authenticated user, replaces
// the in-memory record with the backend's response, and rewrites the user
// cookie with the current remember-me-derived expiry. A no-op when nobody is
// signed in.
func (s *Store) UpdateUser(ctx context.Context, patch models.UpdateProfileRequest) (*models.APIResponse[models.UpdateProfileResponse], error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, nil
	}
	userID := s.user.UserID
	rememberMe := s.rememberMe
	s.mu.Unlock()

	resp, err := s.api.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	u := resp.Data.User
	s.user = &u
	s.mu.Unlock()

	ttl := sessionExpiry
	if rememberMe {
		ttl = rememberMeExpiry
	}
	data, err := json.Marshal(resp.Data.User)
	if err != nil {
		s.logger.Error(ctx, "marshal user cookie", "error", err)
		return resp, nil
	}
	if err := s.jar.Set(CookieUser, string(data), ttl); err != nil {
		s.logger.Warn(ctx, "write user cookie", "error", err)
	}

	return resp, nil
}
