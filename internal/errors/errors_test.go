package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGatewayError(t *testing.T) {
	tests := []struct {
		name     string
		err      *GatewayError
		expected string
	}{
		{
			name:     "with status code",
			err:      NewGatewayError(429, "quota exceeded", nil),
			expected: "gateway error [429]: quota exceeded",
		},
		{
			name:     "message only",
			err:      NewGatewayError(0, "connection reset", nil),
			expected: "gateway error: connection reset",
		},
		{
			name:     "cause only",
			err:      NewGatewayError(0, "", ErrEmptyResponse),
			expected: "gateway error: no content in response",
		},
		{
			name:     "empty",
			err:      &GatewayError{},
			expected: "gateway error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Error() = %s, want %s", tt.err.Error(), tt.expected)
			}
		})
	}
}

func TestGatewayError_Is(t *testing.T) {
	err := NewGatewayError(500, "boom", nil)

	if !errors.Is(err, ErrGatewayFailure) {
		t.Error("GatewayError should match ErrGatewayFailure")
	}

	if !err.Is(NewGatewayError(0, "other", nil)) {
		t.Error("GatewayError should match another GatewayError")
	}

	if err.Is(errors.New("standard error")) {
		t.Error("GatewayError should not match a standard error")
	}
}

func TestGatewayError_Unwrap(t *testing.T) {
	err := NewGatewayError(0, "", ErrEmptyResponse)

	if !errors.Is(err, ErrEmptyResponse) {
		t.Error("GatewayError should unwrap to its cause")
	}
}

func TestIsGatewayError(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", NewGatewayError(503, "unavailable", nil))

	if !IsGatewayError(wrapped) {
		t.Error("wrapped GatewayError should be detected")
	}
	if IsGatewayError(nil) {
		t.Error("nil is not a gateway error")
	}
	if IsGatewayError(errors.New("plain")) {
		t.Error("plain error is not a gateway error")
	}
}

func TestGetHTTPStatus(t *testing.T) {
	if status := GetHTTPStatus(fmt.Errorf("x: %w", NewGatewayError(401, "denied", nil))); status != 401 {
		t.Errorf("GetHTTPStatus() = %d, want 401", status)
	}
	if status := GetHTTPStatus(errors.New("plain")); status != 0 {
		t.Errorf("GetHTTPStatus() = %d, want 0", status)
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad toml")
	err := NewConfigError("/tmp/config.toml", cause)

	expected := "config error in /tmp/config.toml: bad toml"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, cause) {
		t.Error("ConfigError should unwrap to its cause")
	}

	if !IsConfigError(fmt.Errorf("load: %w", err)) {
		t.Error("IsConfigError should detect wrapped ConfigError")
	}

	noPath := NewConfigError("", cause)
	if noPath.Error() != "config error: bad toml" {
		t.Errorf("Error() = %s", noPath.Error())
	}
}

func TestIsMissingAPIKey(t *testing.T) {
	if !IsMissingAPIKey(fmt.Errorf("gateway: %w", ErrMissingAPIKey)) {
		t.Error("wrapped ErrMissingAPIKey should be detected")
	}
	if IsMissingAPIKey(ErrEmptyResponse) {
		t.Error("ErrEmptyResponse is not ErrMissingAPIKey")
	}
}
