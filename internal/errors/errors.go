// Package errors provides custom error types for the Gemini chat client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrGatewayFailure = errors.New("gateway failure")
	ErrMissingAPIKey  = errors.New("no API key configured")
	ErrEmptyResponse  = errors.New("no content in response")
	ErrEmptyPrompt    = errors.New("prompt cannot be empty")
)

// GatewayError represents any failure of the language model gateway:
// network errors, API errors and unusable responses alike.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("gateway error [%d]: %s", e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("gateway error: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("gateway error: %v", e.Err)
	default:
		return "gateway error"
	}
}

// Unwrap returns the underlying cause
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *GatewayError) Is(target error) bool {
	if target == ErrGatewayFailure {
		return true
	}
	_, ok := target.(*GatewayError)
	return ok
}

// NewGatewayError creates a new GatewayError
func NewGatewayError(statusCode int, message string, cause error) *GatewayError {
	return &GatewayError{
		StatusCode: statusCode,
		Message:    message,
		Err:        cause,
	}
}

// ConfigError represents a configuration file that could not be used
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// IsGatewayError reports whether err is (or wraps) a gateway failure
func IsGatewayError(err error) bool {
	return err != nil && errors.Is(err, ErrGatewayFailure)
}

// IsMissingAPIKey reports whether err is caused by an absent credential
func IsMissingAPIKey(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

// IsConfigError reports whether err is (or wraps) a ConfigError
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// GetHTTPStatus extracts the HTTP status code from a gateway error, or 0
func GetHTTPStatus(err error) int {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.StatusCode
	}
	return 0
}
