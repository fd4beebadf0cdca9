// Package models contains data types and constants shared by the chat client.
package models

import "strings"

// Model names accepted by the Gemini API
const (
	Model25Flash     = "gemini-2.5-flash"
	Model25FlashLite = "gemini-2.5-flash-lite"
	Model25Pro       = "gemini-2.5-pro"

	// DefaultModel is used when no model is configured
	DefaultModel = Model25Flash
)

// modelAliases maps short names to full model names
var modelAliases = map[string]string{
	"fast":  Model25Flash,
	"flash": Model25Flash,
	"lite":  Model25FlashLite,
	"pro":   Model25Pro,
}

// AllModels returns the well-known model names
func AllModels() []string {
	return []string{Model25Flash, Model25FlashLite, Model25Pro}
}

// ModelFromName resolves a short alias to a model name.
// Unknown names are returned unchanged so newer models keep working;
// an empty name resolves to DefaultModel.
func ModelFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultModel
	}
	if full, ok := modelAliases[strings.ToLower(name)]; ok {
		return full
	}
	return name
}
