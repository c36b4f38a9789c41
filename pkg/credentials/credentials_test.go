package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/config"
)

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Now().Add(-1 * time.Minute), true, "recently expired"},
		{time.Now().Add(1 * time.Minute), false, "expiring soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			result := creds.IsExpired()
			if result != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		accessToken string
		expiresAt   time.Time
		expect      bool
		name        string
	}{
		{"valid_token", time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"", time.Now().Add(1 * time.Hour), false, "empty access token"},
		{"valid_token", time.Now().Add(-1 * time.Hour), false, "expired token"},
		{"", time.Now().Add(-1 * time.Hour), false, "empty and expired"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: tc.accessToken,
				ExpiresAt:   tc.expiresAt,
			}

			result := creds.IsValid()
			if result != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsExpirationBoundary validates expiration at exact boundary
func TestCredentialsExpirationBoundary(t *testing.T) {
	// Just past expiration (should be expired)
	now := time.Now()
	creds := &Credentials{
		AccessToken: "token",
		ExpiresAt:   now.Add(-1 * time.Millisecond),
	}

	if !creds.IsExpired() {
		t.Error("Token just past expiration should be expired")
	}

	// Just before expiration (should not be expired)
	creds.ExpiresAt = now.Add(1 * time.Second)
	if creds.IsExpired() {
		t.Error("Token just before expiration should not be expired")
	}
}

// TestCredentialsValidityChain validates that IsValid depends on both token and expiration
func TestCredentialsValidityChain(t *testing.T) {
	// Valid credentials
	creds := &Credentials{
		AccessToken: "valid_token",
		ExpiresAt:   time.Now().Add(1 * time.Hour),
	}

	if !creds.IsValid() {
		t.Error("Valid credentials should pass IsValid check")
	}

	// Remove token
	creds.AccessToken = ""
	if creds.IsValid() {
		t.Error("Empty token should fail IsValid check")
	}

	// Restore token but expire it
	creds.AccessToken = "valid_token"
	creds.ExpiresAt = time.Now().Add(-1 * time.Hour)
	if creds.IsValid() {
		t.Error("Expired token should fail IsValid check")
	}
}

// TestCredentialsZeroValues handles zero-valued credentials
func TestCredentialsZeroValues(t *testing.T) {
	creds := &Credentials{}

	if !creds.IsExpired() {
		t.Error("Zero-value credentials should be expired (ExpiresAt is zero)")
	}

	if creds.IsValid() {
		t.Error("Zero-value credentials should be invalid")
	}
}

// TestCredentialsExpirationTimezone validates expiration works across timezones
func TestCredentialsExpirationTimezone(t *testing.T) {
	// Create time with specific timezone
	futureTime := time.Now().Add(24 * time.Hour)
	creds := &Credentials{
		AccessToken: "token",
		ExpiresAt:   futureTime,
	}

	if creds.IsExpired() {
		t.Error("Future time should not be expired regardless of timezone")
	}

	pastTime := time.Now().Add(-24 * time.Hour)
	creds.ExpiresAt = pastTime
	if !creds.IsExpired() {
		t.Error("Past time should be expired regardless of timezone")
	}
}

// TestCredentialsImmutability validates credentials don't modify unexpectedly
func TestCredentialsImmutability(t *testing.T) {
	expiresAt := time.Now().Add(1 * time.Hour)
	creds := &Credentials{
		AccessToken: "token1",
		ExpiresAt:   expiresAt,
	}

	// Call IsExpired multiple times, should have same result
	firstResult := creds.IsExpired()
	secondResult := creds.IsExpired()

	if firstResult != secondResult {
		t.Error("IsExpired should return consistent results")
	}

	// Verify token wasn't modified
	if creds.AccessToken != "token1" {
		t.Error("AccessToken should not be modified by IsExpired")
	}
}

// TestCredentialsRefreshTokenHandling validates refresh token field
func TestCredentialsRefreshTokenHandling(t *testing.T) {
	testCases := []struct {
		refreshToken string
		name         string
	}{
		{"valid_refresh_token", "valid refresh token"},
		{"", "empty refresh token"},
		{"long_token_" + string(make([]byte, 100)), "long refresh token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				RefreshToken: tc.refreshToken,
			}

			if creds.RefreshToken != tc.refreshToken {
				t.Errorf("RefreshToken not set correctly")
			}
		})
	}
}

// TestCredentialsUserInfo validates user info fields
func TestCredentialsUserInfo(t *testing.T) {
	creds := &Credentials{
		UserID:   "user_123",
		Username: "john_doe",
		Email:    "john@example.com",
	}

	if creds.UserID != "user_123" {
		t.Error("UserID should be accessible")
	}

	if creds.Username != "john_doe" {
		t.Error("Username should be accessible")
	}

	if creds.Email != "john@example.com" {
		t.Error("Email should be accessible")
	}
}

// TestCredentialsExpiredValidation validates expiration in IsValid
func TestCredentialsExpiredValidation(t *testing.T) {
	creds := &Credentials{
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(-1 * time.Second),
	}

	if creds.IsValid() {
		t.Error("Expired credentials should not be valid")
	}

	if !creds.IsExpired() {
		t.Error("Expired credentials should be marked as expired")
	}
}

// TestCredentialsExpirationEdgeCases handles edge cases
func TestCredentialsExpirationEdgeCases(t *testing.T) {
	// Time in far future
	creds := &Credentials{
		AccessToken: "token",
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	}

	if creds.IsExpired() {
		t.Error("Token expiring in 100 years should not be expired")
	}

	// Time in very distant past
	creds.ExpiresAt = time.Now().AddDate(-100, 0, 0)
	if !creds.IsExpired() {
		t.Error("Token expired 100 years ago should be expired")
	}
}

// TestSaveLoadDelete validates the on-disk lifecycle
func TestSaveLoadDelete(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}

	if creds, err := Load(); err != nil || creds != nil {
		t.Fatalf("Load with no file = %v, %v; want nil, nil", creds, err)
	}

	want := &Credentials{
		AccessToken:    "access_123",
		RefreshToken:   "refresh_123",
		ExpiresAt:      time.Now().Add(time.Hour).Truncate(time.Second),
		Username:       "testuser",
		ProfilePicture: "https://cdn.example.com/p.png",
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("credentials mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.Username != want.Username || got.ProfilePicture != want.ProfilePicture {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := Delete(); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}
