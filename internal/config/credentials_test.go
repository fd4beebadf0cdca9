package config

import (
	"os"
	"path/filepath"
	"testing"

	apierrors "github.com/diogo/geminichat/internal/errors"
)

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		legacy  string
		want    string
		wantErr bool
	}{
		{"primary", "key-1", "", "key-1", false},
		{"legacy", "", "key-2", "key-2", false},
		{"primary wins", "key-1", "key-2", "key-1", false},
		{"whitespace trimmed", "  key-3\n", "", "key-3", false},
		{"missing", "", "", "", true},
		{"blank", "   ", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.primary)
			t.Setenv(EnvAPIKeyLegacy, tt.legacy)

			got, err := APIKey()
			if (err != nil) != tt.wantErr {
				t.Fatalf("APIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !apierrors.IsMissingAPIKey(err) {
				t.Errorf("expected ErrMissingAPIKey, got %v", err)
			}
			if got != tt.want {
				t.Errorf("APIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GEMINI_API_KEY=from-dotenv\nGEMINICHAT_TEST_VAR=hello\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIKey, "")
	os.Unsetenv(EnvAPIKey)
	t.Setenv("GEMINICHAT_TEST_VAR", "already-set")

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() returned error: %v", err)
	}

	if got := os.Getenv(EnvAPIKey); got != "from-dotenv" {
		t.Errorf("GEMINI_API_KEY = %q, want from-dotenv", got)
	}
	if got := os.Getenv("GEMINICHAT_TEST_VAR"); got != "already-set" {
		t.Errorf("existing variables must not be overwritten, got %q", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should not be an error: %v", err)
	}
}
