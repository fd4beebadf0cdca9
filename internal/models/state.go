package models

import (
	"fmt"
	"strings"
)

// Appearance is the presentation mode of the chat interface
type Appearance int

const (
	AppearanceLight Appearance = iota
	AppearanceDark
)

func (a Appearance) String() string {
	if a == AppearanceDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite appearance
func (a Appearance) Toggle() Appearance {
	if a == AppearanceDark {
		return AppearanceLight
	}
	return AppearanceDark
}

// ParseAppearance parses "light" or "dark" (case-insensitive)
func ParseAppearance(s string) (Appearance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return AppearanceLight, nil
	case "dark":
		return AppearanceDark, nil
	default:
		return AppearanceLight, fmt.Errorf("invalid appearance %q (expected light or dark)", s)
	}
}

// Phase is the state of a conversation session with respect to the gateway
type Phase int

const (
	// PhaseIdle accepts new submissions
	PhaseIdle Phase = iota
	// PhaseAwaitingResponse has exactly one gateway call outstanding
	PhaseAwaitingResponse
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}
