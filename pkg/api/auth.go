package api

import (
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// Login authenticates user with email and password
func Login(email, password string) (*LoginResponse, error) {
	logger.Debug("Attempting login", "email", email)

	resp, err := client.GetClient().
		R().
		SetBody(LoginRequest{Email: email, Password: password}).
		Post("/api/v1/auth/login")

	var loginResp LoginResponse
	if err := decode(resp, err, &loginResp); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "username", loginResp.User.Username)
	return &loginResp, nil
}

// Refresh refreshes the access token using refresh token
func Refresh(refreshToken string) (*RefreshResponse, error) {
	logger.Debug("Refreshing access token")

	resp, err := client.GetClient().
		R().
		SetBody(RefreshRequest{RefreshToken: refreshToken}).
		Post("/api/v1/auth/refresh")

	var refreshResp RefreshResponse
	if err := decode(resp, err, &refreshResp); err != nil {
		return nil, err
	}

	logger.Debug("Access token refreshed")
	return &refreshResp, nil
}

// GetCurrentUser gets the current authenticated user
func GetCurrentUser() (*User, error) {
	logger.Debug("Fetching current user")

	resp, err := client.GetClient().
		R().
		Get("/api/v1/auth/me")

	var profileResp ProfileResponse
	if err := decode(resp, err, &profileResp); err != nil {
		return nil, err
	}

	logger.Debug("Current user fetched", "username", profileResp.User.Username)
	return &profileResp.User, nil
}

// Logout revokes the current session on the server
func Logout() error {
	logger.Debug("Logging out")

	resp, err := client.GetClient().
		R().
		Post("/api/v1/auth/logout")

	return CheckResponse(resp, err)
}
