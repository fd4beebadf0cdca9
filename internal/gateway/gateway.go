// Package gateway provides the language model gateway used by chat sessions.
//
// A Gateway turns one free-text prompt into one free-text reply. Calls are
// stateless: no conversation context is sent along with the prompt.
package gateway

import "context"

// Gateway generates a reply for a single prompt
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
