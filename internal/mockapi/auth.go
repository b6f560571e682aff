package mockapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freddy-le-go/mockauth/internal/common"
	"github.com/freddy-le-go/mockauth/internal/kvstore"
	"github.com/freddy-le-go/mockauth/internal/logging"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// Simulated network latency per operation, matching the prototype backend.
const (
	loginDelay         = 1 * time.Second
	registerDelay      = 1500 * time.Millisecond
	validateDelay      = 500 * time.Millisecond
	logoutDelay        = 300 * time.Millisecond
	getProfileDelay    = 800 * time.Millisecond
	updateProfileDelay = 1200 * time.Millisecond
	uploadAvatarDelay  = 2 * time.Second
	deleteAvatarDelay  = 600 * time.Millisecond
	statsDelay         = 500 * time.Millisecond
)

// Service is the mock credential backend. Construct it with NewService and
// call Init once to seed default data.
type Service struct {
	kv     kvstore.Store
	logger logging.Logger
	secret []byte

	// Test seams. sleep pauses for the simulated latency and now supplies
	// timestamps.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewService builds a Service over the given blob store. secretKey signs the
// minted bearer tokens.
func NewService(kv kvstore.Store, logger logging.Logger, secretKey string) *Service {
	return &Service{
		kv:     kv,
		logger: logger,
		secret: []byte(secretKey),
		sleep:  sleepContext,
		now:    time.Now,
	}
}

// DisableLatency turns off the simulated network delay. Used by tests and by
// the CLI's fast mode.
func (s *Service) DisableLatency() {
	s.sleep = func(context.Context, time.Duration) error { return nil }
}

// sleepContext waits for d or until ctx is canceled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login verifies the handle and password and returns the account, its stored
// bearer token, and a nominal expiry. Unknown handles and wrong passwords
// fail identically with INVALID_CREDENTIALS so account existence does not
// leak.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.APIResponse[models.AuthData], error) {
	if err := s.sleep(ctx, loginDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, req.UserID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeInvalidCredentials)
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}
	cred, ok := creds[req.UserID]
	if !ok || !cred.Matches(req.Password) {
		return nil, common.NewAuthError(common.CodeInvalidCredentials)
	}

	tokens, err := s.loadTokens(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	expiresAt := now.Add(tokenValidity)

	token, ok := tokens[req.UserID]
	if !ok {
		// Accounts imported without a token get one minted on first login.
		token, err = mintToken(req.UserID, s.secret, now, expiresAt)
		if err != nil {
			return nil, common.ErrorInternal
		}
		tokens[req.UserID] = token
		if err := s.saveTokens(ctx, tokens); err != nil {
			return nil, err
		}
	}

	s.logger.Debug(ctx, "login ok", "user_id", req.UserID)
	return models.OK(models.AuthData{
		User:      *user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, "Login successful"), nil
}

// Register creates an account. The handle is claimed before the email is
// checked, so a request colliding on both reports USER_ID_EXISTS. A
// successful registration issues a bearer token immediately.
//
// The three collections are written one after another; two interleaved
// registrations can overwrite each other's write. The prototype had the same
// race and it is intentionally left unguarded here.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.APIResponse[models.AuthData], error) {
	if err := s.sleep(ctx, registerDelay); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if findUser(users, req.UserID) != nil {
		return nil, common.NewAuthError(common.CodeUserIDExists)
	}
	for i := range users {
		if users[i].Email == req.Email {
			return nil, common.NewAuthError(common.CodeEmailExists)
		}
	}

	now := s.now()
	timestamp := now.UTC().Format(time.RFC3339)
	user := models.User{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}

	expiresAt := now.Add(tokenValidity)
	token, err := mintToken(req.UserID, s.secret, now, expiresAt)
	if err != nil {
		return nil, common.ErrorInternal
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}
	tokens, err := s.loadTokens(ctx)
	if err != nil {
		return nil, err
	}

	creds[req.UserID] = HashPassword(req.Password)
	tokens[req.UserID] = token

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}
	if err := s.saveCredentials(ctx, creds); err != nil {
		return nil, err
	}
	if err := s.saveTokens(ctx, tokens); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", req.UserID)
	return models.OK(models.AuthData{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, "Registration successful"), nil
}

// ValidateToken resolves a bearer token back to its account by a linear
// reverse lookup over the token map. The token's exp claim is not checked.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.APIResponse[models.TokenValidation], error) {
	if err := s.sleep(ctx, validateDelay); err != nil {
		return nil, err
	}

	tokens, err := s.loadTokens(ctx)
	if err != nil {
		return nil, err
	}

	var userID string
	for id, t := range tokens {
		if t == token {
			userID = id
			break
		}
	}
	if userID == "" {
		return nil, common.NewAuthError(common.CodeInvalidToken)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, common.NewAuthError(common.CodeUserNotFound)
	}

	return models.OK(models.TokenValidation{User: *user}, "Token valid"), nil
}

// Logout is a stateless acknowledgement. Tokens stay valid; the caller is
// responsible for discarding its copy.
func (s *Service) Logout(ctx context.Context) (*models.APIResponse[models.LogoutData], error) {
	if err := s.sleep(ctx, logoutDelay); err != nil {
		return nil, err
	}
	return models.OK(models.LogoutData{Message: "Logged out successfully"}, "Logout successful"), nil
}
