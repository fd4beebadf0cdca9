package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

func TestApplyAppearance(t *testing.T) {
	defer ApplyAppearance(models.AppearanceLight)

	ApplyAppearance(models.AppearanceDark)
	dark := colorText
	if ActiveAppearance() != models.AppearanceDark {
		t.Error("ActiveAppearance() should be dark")
	}

	ApplyAppearance(models.AppearanceLight)
	if colorText == dark {
		t.Error("text color should change with appearance")
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "missing key",
			err:      fmt.Errorf("startup: %w", apierrors.ErrMissingAPIKey),
			contains: []string{"GEMINI_API_KEY"},
		},
		{
			name:     "rate limited",
			err:      apierrors.NewGatewayError(429, "quota", nil),
			contains: []string{"HTTP Status: 429", "usage limit"},
		},
		{
			name:     "rejected key",
			err:      apierrors.NewGatewayError(403, "denied", nil),
			contains: []string{"rejected"},
		},
		{
			name:     "config",
			err:      apierrors.NewConfigError("/tmp/config.toml", errors.New("bad toml")),
			contains: []string{"config path"},
		},
		{
			name:     "plain",
			err:      errors.New("something broke"),
			contains: []string{"something broke"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.err)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("FormatError() = %q, missing %q", out, want)
				}
			}
		})
	}

	if FormatError(nil) != "" {
		t.Error("FormatError(nil) should be empty")
	}
}
