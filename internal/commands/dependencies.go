package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/gateway"
	"github.com/diogo/geminichat/internal/session"
	"github.com/diogo/geminichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(sess *session.Session, gw gateway.Gateway, opts tui.ChatOptions) error
}

// GatewayFactory builds the language model gateway from the API key and
// the effective configuration.
type GatewayFactory func(ctx context.Context, apiKey string, cfg config.Config) (gateway.Gateway, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewGateway creates the Gemini gateway.
	NewGateway GatewayFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether stdin carries input instead of a terminal.
	StdinPiped func() bool

	// StdoutTTY reports whether stdout is a terminal.
	StdoutTTY func() bool

	// TerminalWidth returns the width of stdout.
	TerminalWidth func() int

	// Copy writes text to the system clipboard.
	Copy func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(sess *session.Session, gw gateway.Gateway, opts tui.ChatOptions) error {
	return tui.RunChat(sess, gw, opts)
}

// NewGeminiGateway is the production GatewayFactory.
func NewGeminiGateway(ctx context.Context, apiKey string, cfg config.Config) (gateway.Gateway, error) {
	opts := []gateway.Option{
		gateway.WithModel(cfg.Model),
		gateway.WithTemperature(cfg.Temperature),
		gateway.WithMaxOutputTokens(cfg.MaxOutputTokens),
		gateway.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, gateway.WithBaseURL(cfg.BaseURL))
	}

	gw, err := gateway.NewGeminiGateway(ctx, apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewGateway:    NewGeminiGateway,
		TUI:           &DefaultTUI{},
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		StdinPiped:    stdinPiped,
		StdoutTTY:     isStdoutTTY,
		TerminalWidth: getTerminalWidth,
		Copy:          clipboard.WriteAll,
	}
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
