package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddy-le-go/mockauth/internal/common"
	"github.com/freddy-le-go/mockauth/internal/logging"
	"github.com/freddy-le-go/mockauth/internal/models"
)

// ---- fake API ----

type fakeAPI struct {
	loginResp *models.APIResponse[models.AuthData]
	loginErr  error

	registerResp *models.APIResponse[models.AuthData]
	registerErr  error

	validateResp *models.APIResponse[models.TokenValidation]
	validateErr  error

	logoutErr    error
	logoutCalled bool

	updateResp *models.APIResponse[models.UpdateProfileResponse]
	updateErr  error

	// captured arguments
	gotLogin    models.LoginRequest
	gotToken    string
	gotUserID   string
	loadingSeen bool
	store       *Store
}

func (f *fakeAPI) Login(_ context.Context, req models.LoginRequest) (*models.APIResponse[models.AuthData], error) {
	f.gotLogin = req
	if f.store != nil {
		f.loadingSeen = f.store.IsLoading()
	}
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, _ models.RegisterRequest) (*models.APIResponse[models.AuthData], error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) ValidateToken(_ context.Context, token string) (*models.APIResponse[models.TokenValidation], error) {
	f.gotToken = token
	return f.validateResp, f.validateErr
}

func (f *fakeAPI) Logout(context.Context) (*models.APIResponse[models.LogoutData], error) {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	return models.OK(models.LogoutData{Message: "Logged out successfully"}, "Logout successful"), nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, userID string, _ models.UpdateProfileRequest) (*models.APIResponse[models.UpdateProfileResponse], error) {
	f.gotUserID = userID
	return f.updateResp, f.updateErr
}

var testUser = models.User{
	ID:        "u-1",
	UserID:    "alice",
	Email:     "a@x.com",
	FirstName: "Alice",
	LastName:  "A",
}

func authOK() *models.APIResponse[models.AuthData] {
	return models.OK(models.AuthData{
		User:      testUser,
		Token:     "tok-abc",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, "Login successful")
}

func newTestStore(api *fakeAPI) (*Store, *MemoryJar) {
	jar := NewMemoryJar()
	s := NewStore(api, jar, logging.Nop(), nil)
	api.store = s
	return s, jar
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{loginResp: authOK()}
	s, jar := newTestStore(api)

	resp, err := s.Login(context.Background(), "alice", "Secret123", false)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.Equal(t, models.LoginRequest{UserID: "alice", Password: "Secret123"}, api.gotLogin)
	assert.True(t, api.loadingSeen, "IsLoading should be true while the call is in flight")
	assert.False(t, s.IsLoading())

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.RememberMe())
	assert.Equal(t, "tok-abc", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().UserID)

	rawUser, ok := jar.Get(CookieUser)
	require.True(t, ok)
	var u models.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &u))
	assert.Equal(t, testUser, u)

	tok, ok := jar.Get(CookieToken)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", tok)
}

func TestLogin_CookieExpiryFollowsRememberMe(t *testing.T) {
	tests := []struct {
		name       string
		rememberMe bool
		aliveAt    time.Duration
		goneAt     time.Duration
	}{
		{"session cookie lives one day", false, 23 * time.Hour, 25 * time.Hour},
		{"remember-me cookie lives seven days", true, 6 * 24 * time.Hour, 8 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{loginResp: authOK()}
			s, jar := newTestStore(api)
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			jar.now = func() time.Time { return base }

			_, err := s.Login(context.Background(), "alice", "pw", tt.rememberMe)
			require.NoError(t, err)
			assert.Equal(t, tt.rememberMe, s.RememberMe())

			jar.now = func() time.Time { return base.Add(tt.aliveAt) }
			_, ok := jar.Get(CookieToken)
			assert.True(t, ok)

			jar.now = func() time.Time { return base.Add(tt.goneAt) }
			_, ok = jar.Get(CookieToken)
			assert.False(t, ok)
		})
	}
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	apiErr := common.NewAuthError(common.CodeInvalidCredentials)
	api := &fakeAPI{loginErr: apiErr}
	s, jar := newTestStore(api)

	_, err := s.Login(context.Background(), "ghost", "whatever", true)
	require.Error(t, err)
	// The error propagates unchanged.
	assert.Same(t, apiErr, err)
	assert.True(t, common.IsCode(err, common.CodeInvalidCredentials))

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
	_, ok := jar.Get(CookieToken)
	assert.False(t, ok)
}

func TestRegister_IsImplicitLogin(t *testing.T) {
	api := &fakeAPI{registerResp: authOK()}
	s, jar := newTestStore(api)

	resp, err := s.Register(context.Background(), models.RegisterRequest{
		UserID: "alice", Email: "a@x.com", Password: "Secret123",
	}, true)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.RememberMe())
	assert.Equal(t, "tok-abc", s.Token())

	_, ok := jar.Get(CookieUser)
	assert.True(t, ok)
}

func TestRegister_FailurePropagates(t *testing.T) {
	apiErr := common.NewAuthError(common.CodeUserIDExists)
	api := &fakeAPI{registerErr: apiErr}
	s, _ := newTestStore(api)

	_, err := s.Register(context.Background(), models.RegisterRequest{UserID: "alice"}, false)
	assert.Same(t, apiErr, err)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
}

func TestLogout_ClearsEverything(t *testing.T) {
	api := &fakeAPI{loginResp: authOK()}
	reloaded := false
	jar := NewMemoryJar()
	s := NewStore(api, jar, logging.Nop(), func() { reloaded = true })

	_, err := s.Login(context.Background(), "alice", "pw", true)
	require.NoError(t, err)

	s.Logout(context.Background())

	assert.True(t, api.logoutCalled)
	assert.True(t, reloaded)
	assert.Nil(t, s.User())
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.RememberMe())
	assert.Empty(t, s.Token())
	assert.False(t, s.IsLoading())

	_, ok := jar.Get(CookieUser)
	assert.False(t, ok)
	_, ok = jar.Get(CookieToken)
	assert.False(t, ok)
}

func TestLogout_ServiceFailureStillCleansUp(t *testing.T) {
	api := &fakeAPI{loginResp: authOK(), logoutErr: errors.New("backend down")}
	reloaded := false
	jar := NewMemoryJar()
	s := NewStore(api, jar, logging.Nop(), func() { reloaded = true })

	_, err := s.Login(context.Background(), "alice", "pw", false)
	require.NoError(t, err)

	s.Logout(context.Background())

	assert.True(t, reloaded)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
	_, ok := jar.Get(CookieToken)
	assert.False(t, ok)
}

func TestLoadFromCookie_RestoresSession(t *testing.T) {
	api := &fakeAPI{validateResp: models.OK(models.TokenValidation{User: testUser}, "Token valid")}
	s, jar := newTestStore(api)

	userJSON, _ := json.Marshal(testUser)
	require.NoError(t, jar.Set(CookieUser, string(userJSON), rememberMeExpiry))
	require.NoError(t, jar.Set(CookieToken, "tok-abc", rememberMeExpiry))

	s.LoadFromCookie(context.Background())

	assert.Equal(t, "tok-abc", api.gotToken)
	assert.True(t, s.IsAuthenticated())
	// Restored sessions always count as remembered.
	assert.True(t, s.RememberMe())
	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().UserID)
}

func TestLoadFromCookie_MissingCookiesIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s, jar := newTestStore(api)

	// Only one of the two cookies present.
	require.NoError(t, jar.Set(CookieToken, "tok", sessionExpiry))

	s.LoadFromCookie(context.Background())

	assert.Empty(t, api.gotToken, "backend must not be called")
	assert.False(t, s.IsAuthenticated())
}

func TestLoadFromCookie_StaleTokenTriggersFullCleanup(t *testing.T) {
	api := &fakeAPI{validateErr: common.NewAuthError(common.CodeInvalidToken)}
	reloaded := false
	jar := NewMemoryJar()
	s := NewStore(api, jar, logging.Nop(), func() { reloaded = true })

	require.NoError(t, jar.Set(CookieUser, `{"userId":"alice"}`, rememberMeExpiry))
	require.NoError(t, jar.Set(CookieToken, "forged", rememberMeExpiry))

	s.LoadFromCookie(context.Background())

	assert.True(t, api.logoutCalled)
	assert.True(t, reloaded)
	assert.False(t, s.IsAuthenticated())
	_, ok := jar.Get(CookieUser)
	assert.False(t, ok)
	_, ok = jar.Get(CookieToken)
	assert.False(t, ok)
}

func TestUpdateUser_NoopWhenAnonymous(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newTestStore(api)

	resp, err := s.UpdateUser(context.Background(), models.UpdateProfileRequest{})
	assert.Nil(t, resp)
	assert.NoError(t, err)
	assert.Empty(t, api.gotUserID, "backend must not be called")
}

func TestUpdateUser_ReplacesUserAndRewritesCookie(t *testing.T) {
	updated := testUser
	updated.Bio = "Gopher"
	api := &fakeAPI{
		loginResp:  authOK(),
		updateResp: models.OK(models.UpdateProfileResponse{User: updated}, "Profile updated successfully"),
	}
	s, jar := newTestStore(api)

	_, err := s.Login(context.Background(), "alice", "pw", true)
	require.NoError(t, err)

	bio := "Gopher"
	resp, err := s.UpdateUser(context.Background(), models.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "alice", api.gotUserID)
	assert.Equal(t, "Gopher", s.User().Bio)

	rawUser, ok := jar.Get(CookieUser)
	require.True(t, ok)
	var u models.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &u))
	assert.Equal(t, "Gopher", u.Bio)
}

func TestUpdateUser_FailurePropagates(t *testing.T) {
	apiErr := common.NewAuthError(common.CodeEmailExists)
	api := &fakeAPI{loginResp: authOK(), updateErr: apiErr}
	s, _ := newTestStore(api)

	_, err := s.Login(context.Background(), "alice", "pw", false)
	require.NoError(t, err)

	_, err = s.UpdateUser(context.Background(), models.UpdateProfileRequest{})
	assert.Same(t, apiErr, err)
	// State keeps the pre-update user.
	assert.Equal(t, "alice", s.User().UserID)
}
