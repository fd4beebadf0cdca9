package gateway

import (
	"context"
	"sync"
)

// MockGateway is a mock implementation of Gateway for testing.
// It is safe to call from the goroutines bubbletea runs commands on.
type MockGateway struct {
	// Mock return values
	Response string
	Err      error

	// Responder, when set, takes precedence over Response/Err
	Responder func(prompt string) (string, error)

	// Release, when set, makes Generate wait until it is closed or the
	// context ends.
	Release chan struct{}

	mu      sync.Mutex
	calls   int
	prompts []string
}

// Ensure MockGateway implements Gateway
var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	release := m.Release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Responder != nil {
		return m.Responder(prompt)
	}
	return m.Response, m.Err
}

// Calls returns how many times Generate was invoked
func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt, or "" when never called
func (m *MockGateway) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Prompts returns every prompt received, in order
func (m *MockGateway) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
