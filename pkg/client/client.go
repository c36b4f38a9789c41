package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

const userAgent = "CreatorHub-CLI/0.1.0"

var httpClient *resty.Client
var authToken string

// Init initializes the HTTP client from config
func Init() {
	baseURL := config.GetString("api.base_url")
	Configure(baseURL, config.Seconds("api.timeout"))
}

// Configure builds the HTTP client for an explicit base URL and timeout
func Configure(baseURL string, timeout time.Duration) {
	httpClient = resty.New()

	httpClient.SetBaseURL(baseURL)
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	httpClient.SetHeader("User-Agent", userAgent)
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetJSONMarshaler(json.Marshal)
	httpClient.SetJSONUnmarshaler(json.Unmarshal)
	if authToken != "" {
		httpClient.SetAuthToken(authToken)
	}

	// Add request/response logging
	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"status", resp.StatusCode(),
			"url", resp.Request.URL,
			"elapsed_ms", resp.Time().Milliseconds())
		return nil
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the bearer token on the current and any future client
func SetAuthToken(token string) {
	authToken = token
	GetClient().SetAuthToken(token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	authToken = ""
	if httpClient == nil {
		return
	}
	// Rebuild the client to drop the auth header
	baseURL := httpClient.BaseURL
	timeout := httpClient.GetClient().Timeout
	Configure(baseURL, timeout)
}

// HasAuthToken reports whether requests carry a bearer token
func HasAuthToken() bool {
	return authToken != ""
}
