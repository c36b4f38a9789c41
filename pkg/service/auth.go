package service

import (
	"fmt"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/auth"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/credentials"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/output"
	"github.com/zfogg/creatorhub/cli/pkg/prompter"
)

type AuthService struct {
	Deps
	Prompt   *prompter.Prompter
	Recovery *auth.SessionRecovery
}

// NewAuthService creates a new auth service
func NewAuthService(deps Deps, prompt *prompter.Prompter) *AuthService {
	return &AuthService{Deps: deps, Prompt: prompt, Recovery: auth.NewSessionRecovery()}
}

// Login handles user login
func (s *AuthService) Login() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		s.Out.Warning("Already logged in as %s", creds.Username)
		confirm, err := s.Prompt.Confirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := s.Prompt.String("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := s.Prompt.Password("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	s.Out.Info("Authenticating...")
	end := s.busy()
	loginResp, err := api.Login(email, password)
	end()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	client.SetAuthToken(loginResp.AccessToken)

	creds = &credentials.Credentials{
		AccessToken:    loginResp.AccessToken,
		RefreshToken:   loginResp.RefreshToken,
		ExpiresAt:      time.Now().Add(time.Duration(loginResp.ExpiresIn) * time.Second),
		UserID:         loginResp.User.ID,
		Username:       loginResp.User.Username,
		Email:          loginResp.User.Email,
		ProfilePicture: loginResp.User.ProfilePicture,
	}
	if err := credentials.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	s.Session.LogIn(creds.Username, creds.ProfilePicture)

	s.Out.Success("✓ Logged in as %s", formatter.Bold.Sprint(loginResp.User.Username))
	return nil
}

// Logout revokes the session and deletes stored credentials
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		s.Out.Warning("Not logged in")
		return nil
	}

	confirm, err := s.Prompt.Confirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	// the server may already consider the token dead
	end := s.busy()
	if err := api.Logout(); err != nil {
		logger.Warn("Server logout failed", "error", err)
	}
	end()

	if err := credentials.Delete(); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	client.ClearAuthToken()
	s.Session.LogOut()

	s.Out.Success("✓ Logged out successfully")
	return nil
}

// Status prints the logged-in user
func (s *AuthService) Status() error {
	if !s.Session.LoggedIn() {
		return clierrors.UnauthorizedError()
	}

	end := s.busy()
	user, err := api.GetCurrentUser()
	if err != nil && auth.IsSessionError(err) {
		// an access token can expire between restore and this call
		if err = s.Recovery.HandleSessionError(err); err == nil {
			user, err = api.GetCurrentUser()
		}
	}
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}
	s.Session.SetProfileImageURL(user.ProfilePicture)

	return s.Out.Record("Logged in", []output.Field{
		{Key: "Username", Value: user.Username},
		{Key: "Email", Value: user.Email},
		{Key: "Display Name", Value: user.DisplayName},
		{Key: "Followers", Value: user.FollowerCount},
		{Key: "Following", Value: user.FollowingCount},
		{Key: "Posts", Value: user.PostCount},
	}, user)
}
