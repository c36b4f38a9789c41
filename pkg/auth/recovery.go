package auth

import (
	"fmt"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/credentials"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/session"
)

// SessionRecovery restores a stored login and refreshes expired tokens
type SessionRecovery struct {
	maxRetries int
	retryDelay time.Duration
}

// NewSessionRecovery creates a new session recovery handler
func NewSessionRecovery() *SessionRecovery {
	return &SessionRecovery{
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// Restore loads stored credentials into the HTTP client and the session
// state, refreshing the access token first when it has expired. It reports
// whether a usable session was restored.
func (sr *SessionRecovery) Restore(state *session.State) (bool, error) {
	creds, err := credentials.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds == nil || creds.AccessToken == "" {
		return false, nil
	}

	if creds.IsExpired() {
		if creds, err = sr.RecoverSession(); err != nil {
			logger.Warn("Stored session could not be refreshed", "error", err)
			return false, nil
		}
	}

	client.SetAuthToken(creds.AccessToken)
	state.LogIn(creds.Username, creds.ProfilePicture)
	logger.Debug("Session restored", "username", creds.Username)
	return true, nil
}

// RecoverSession refreshes the access token with the stored refresh token
func (sr *SessionRecovery) RecoverSession() (*credentials.Credentials, error) {
	logger.Debug("Attempting to recover session")

	creds, err := credentials.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if creds == nil || creds.RefreshToken == "" {
		return nil, clierrors.SessionExpiredError()
	}

	for attempt := 1; attempt <= sr.maxRetries; attempt++ {
		logger.Debug("Refreshing token", "attempt", attempt)

		refreshResp, err := api.Refresh(creds.RefreshToken)
		if err == nil {
			creds.AccessToken = refreshResp.AccessToken
			creds.ExpiresAt = time.Now().Add(time.Duration(refreshResp.ExpiresIn) * time.Second)
			if err := credentials.Save(creds); err != nil {
				logger.Error("Failed to save updated credentials", "error", err)
			}
			client.SetAuthToken(creds.AccessToken)
			return creds, nil
		}

		// A rejected refresh token will not get better by retrying
		if api.IsUnauthorized(err) || api.IsForbidden(err) {
			expired := clierrors.SessionExpiredError()
			expired.Cause = err
			return nil, expired
		}
		if attempt < sr.maxRetries {
			time.Sleep(sr.retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to recover session after %d attempts - please log in again", sr.maxRetries)
}

// IsSessionError checks if an error is a session-related error
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	if api.IsUnauthorized(err) {
		return true
	}

	errMsg := err.Error()
	return errMsg == "401" ||
		errMsg == "unauthorized" ||
		errMsg == "session expired" ||
		errMsg == "token expired"
}

// HandleSessionError recovers from session errors and passes others through.
// A nil return means the caller may retry its request.
func (sr *SessionRecovery) HandleSessionError(err error) error {
	if !IsSessionError(err) {
		return err
	}

	logger.Debug("Handling session error with recovery")

	if _, recoveryErr := sr.RecoverSession(); recoveryErr != nil {
		logger.Error("Session recovery failed", "error", recoveryErr)
		return recoveryErr
	}

	return nil
}
