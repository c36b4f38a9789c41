package service

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/credentials"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/output"
	"github.com/zfogg/creatorhub/cli/pkg/prompter"
)

func newAuth(f *fixture, input string) *AuthService {
	return NewAuthService(f.deps, prompter.New(strings.NewReader(input), &strings.Builder{}))
}

func TestAuthLogin(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("POST /api/v1/auth/login",
		`{"access_token":"tok","refresh_token":"ref","expires_in":3600,"user":{"id":"u1","username":"alice","profile_picture":"https://cdn/a.png"}}`)

	require.NoError(t, newAuth(f, "alice@example.com\nhunter2\n").Login())

	creds, err := credentials.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok", creds.AccessToken)
	assert.True(t, creds.IsValid())

	snap := f.session.Snapshot()
	assert.True(t, snap.LoggedIn)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, "https://cdn/a.png", snap.ProfileImageURL)
	assert.True(t, client.HasAuthToken())
	assert.Contains(t, f.output(), "Logged in as alice")
}

func TestAuthLoginEmptyEmail(t *testing.T) {
	f := newFixture(t, output.FormatText)

	err := newAuth(f, "\n").Login()
	require.Error(t, err)
	assert.False(t, f.session.LoggedIn())
}

func TestAuthLoginRejected(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handleStatus("POST /api/v1/auth/login", 401, `{"code":"invalid_credentials","message":"bad password"}`)

	err := newAuth(f, "alice@example.com\nwrong\n").Login()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad password")

	creds, _ := credentials.Load()
	assert.Nil(t, creds)
}

func TestAuthLogout(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("POST /api/v1/auth/logout", `{}`)
	require.NoError(t, credentials.Save(&credentials.Credentials{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour), Username: "alice"}))
	f.session.LogIn("alice", "")

	require.NoError(t, newAuth(f, "y\n").Logout())

	creds, _ := credentials.Load()
	assert.Nil(t, creds)
	assert.False(t, f.session.LoggedIn())
}

func TestAuthLogoutDeclined(t *testing.T) {
	f := newFixture(t, output.FormatText)
	require.NoError(t, credentials.Save(&credentials.Credentials{AccessToken: "tok", Username: "alice"}))

	require.NoError(t, newAuth(f, "n\n").Logout())

	creds, _ := credentials.Load()
	assert.NotNil(t, creds)
}

func TestAuthStatusLoggedOut(t *testing.T) {
	f := newFixture(t, output.FormatText)

	err := newAuth(f, "").Status()

	var cliErr *clierrors.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierrors.ErrorTypeUnauthorized, cliErr.Type)
	assert.Contains(t, cliErr.Suggestion, "auth login")
}

func TestAuthStatusRefreshesExpiredToken(t *testing.T) {
	f := newFixture(t, output.FormatText)
	var meCalls int32
	f.mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&meCalls, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"token_expired","message":"token expired"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"username":"alice","email":"a@example.com"}}`))
	})
	f.handle("POST /api/v1/auth/refresh", `{"access_token":"fresh","expires_in":3600}`)
	require.NoError(t, credentials.Save(&credentials.Credentials{AccessToken: "stale", RefreshToken: "ref", Username: "alice"}))
	f.session.LogIn("alice", "")

	require.NoError(t, newAuth(f, "").Status())
	assert.Contains(t, f.output(), "Email: a@example.com")
	assert.Equal(t, int32(2), atomic.LoadInt32(&meCalls))
	assert.True(t, client.HasAuthToken())
}

func TestAuthStatusSessionExpired(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handleStatus("GET /api/v1/auth/me", http.StatusUnauthorized, `{"code":"token_expired","message":"token expired"}`)
	f.handleStatus("POST /api/v1/auth/refresh", http.StatusUnauthorized, `{"code":"invalid_token","message":"refresh token revoked"}`)
	require.NoError(t, credentials.Save(&credentials.Credentials{AccessToken: "stale", RefreshToken: "revoked", Username: "alice"}))
	f.session.LogIn("alice", "")

	err := newAuth(f, "").Status()

	var cliErr *clierrors.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierrors.ErrorTypeSessionExpired, cliErr.Type)
}

func TestAuthStatus(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/auth/me", `{"user":{"username":"alice","email":"a@example.com","profile_picture":"https://cdn/new.png"}}`)
	f.session.LogIn("alice", "https://cdn/old.png")

	require.NoError(t, newAuth(f, "").Status())
	assert.Contains(t, f.output(), "Email: a@example.com")
	assert.Equal(t, "https://cdn/new.png", f.session.Snapshot().ProfileImageURL)
}
