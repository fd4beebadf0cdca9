package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/geminichat/internal/errors"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" in the
// working directory when none are given) into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	return godotenv.Load(existing...)
}

// APIKey returns the Gemini API key from the environment.
// The key is opaque; only its presence is checked.
func APIKey() (string, error) {
	for _, name := range []string{EnvAPIKey, EnvAPIKeyLegacy} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, nil
		}
	}
	return "", apierrors.ErrMissingAPIKey
}
