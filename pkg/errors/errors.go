package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeConflict  ErrorType = "conflict"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Mutation errors
	ErrorTypeBusy     ErrorType = "busy"
	ErrorTypeRejected ErrorType = "rejected"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *CLIError {
	err := NewCLIError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'creatorhub auth login'"
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *CLIError {
	err := NewCLIError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'creatorhub auth login' to refresh your session."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *CLIError {
	err := NewCLIError(ErrorTypeUnauthorized, "You need to be logged in to do that", nil)
	err.Suggestion = "Run 'creatorhub auth login' first."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "Contact support if you believe this is an error."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string) *CLIError {
	err := NewCLIError(ErrorTypeConflict, message, nil)
	err.Suggestion = "The resource changed on the server. Refresh and try again."
	return err
}

// MutationError turns a failed optimistic outcome into a user-facing error.
// It returns nil for successful outcomes.
func MutationError(what string, outcome optimistic.Outcome) *CLIError {
	switch outcome.Status {
	case optimistic.StatusOK:
		return nil
	case optimistic.StatusBusy:
		err := NewCLIError(ErrorTypeBusy, fmt.Sprintf("%s is already in progress", what), nil)
		err.Suggestion = "Wait for the previous request to finish."
		return err
	case optimistic.StatusNotFound:
		return NotFoundError(what, "not loaded")
	case optimistic.StatusTransportFailure:
		cliErr := CategorizeError(errors.New(outcome.ErrorMessage))
		cliErr.Message = fmt.Sprintf("%s failed: %s", what, cliErr.Message)
		return cliErr
	default:
		if outcome.ErrorCode == optimistic.CodeConflict {
			return ConflictError(fmt.Sprintf("%s failed: %s", what, outcome.ErrorMessage))
		}
		return NewCLIError(ErrorTypeRejected, fmt.Sprintf("%s failed: %s", what, outcome.ErrorMessage), nil)
	}
}

// statusCoder is implemented by API errors that carry an HTTP status
type statusCoder interface {
	HTTPStatus() int
}

func categorizeStatus(err error, code int) *CLIError {
	var cliErr *CLIError
	switch {
	case code == http.StatusUnauthorized:
		cliErr = UnauthorizedError()
	case code == http.StatusForbidden:
		cliErr = ForbiddenError()
	case code == http.StatusNotFound:
		cliErr = NotFoundError("Resource", "unknown")
	case code == http.StatusConflict:
		cliErr = ConflictError(err.Error())
	case code == http.StatusTooManyRequests:
		cliErr = RateLimitError(60)
	case code >= 500:
		cliErr = ServerError()
	default:
		return nil
	}
	cliErr.Cause = err
	cliErr.StatusCode = code
	return cliErr
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	// Check if it's already a CLIError
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var coded statusCoder
	if errors.As(err, &coded) {
		if cliErr := categorizeStatus(err, coded.HTTPStatus()); cliErr != nil {
			return cliErr
		}
	}

	// Categorize based on error message
	errMsg := err.Error()
	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline exceeded"):
		return TimeoutError()
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return AuthError("Invalid credentials")
	case strings.Contains(lower, "403") || strings.Contains(lower, "forbidden"):
		return ForbiddenError()
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found"):
		return NotFoundError("Resource", "unknown")
	case strings.Contains(lower, "409") || strings.Contains(lower, "conflict"):
		return ConflictError(errMsg)
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		return RateLimitError(60)
	case strings.Contains(lower, "500") || strings.Contains(lower, "server error"):
		return ServerError()
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	// Format the main error message
	sb.WriteString("❌ Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	// Add suggestion if available
	if cliErr.HasSuggestion() {
		sb.WriteString("\n💡 Suggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	// Add retry info for rate limiting
	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString(fmt.Sprintf("\n⏱️  Retry in: %d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
