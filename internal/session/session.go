// Package session implements the conversation session: the message log,
// the pending-input buffer and the Idle/AwaitingResponse state machine that
// gates calls to the language model gateway.
//
// A Session is owned by a single goroutine (the bubbletea update loop in the
// TUI). Gateway calls run elsewhere; their outcome is handed back to the
// owner and applied with Resolve.
package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/diogo/geminichat/internal/gateway"
	"github.com/diogo/geminichat/internal/models"
)

// FailureText is the bot message appended when the gateway fails
const FailureText = "Sorry, I couldn't respond. Please try again later."

// Reply is the outcome of one gateway call: either Text or Err is meaningful
type Reply struct {
	Text string
	Err  error
}

// OK reports whether the gateway call succeeded
func (r Reply) OK() bool {
	return r.Err == nil
}

// Session holds the state of one conversation
type Session struct {
	messages       []models.Message
	pendingInput   string
	phase          models.Phase
	appearance     models.Appearance
	historyVisible bool
	conversationID string
	logger         *slog.Logger
}

// Option is a function that configures the session
type Option func(*Session)

// WithAppearance sets the initial presentation mode
func WithAppearance(a models.Appearance) Option {
	return func(s *Session) {
		s.appearance = a
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates an empty, idle session
func New(opts ...Option) *Session {
	s := &Session{
		messages:       []models.Message{},
		phase:          models.PhaseIdle,
		appearance:     models.AppearanceLight,
		conversationID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Submit accepts user text. It is a no-op (ok=false) when the trimmed text
// is empty or a gateway call is already outstanding. Otherwise the user
// message is appended, the input buffer cleared and the session moves to
// AwaitingResponse; the returned prompt must be sent to the gateway and the
// outcome passed to Resolve.
func (s *Session) Submit(text string) (prompt string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if s.Busy() {
		s.log().Debug("submit_ignored_busy")
		return "", false
	}

	s.messages = append(s.messages, models.UserMessage(trimmed))
	s.pendingInput = ""
	s.phase = models.PhaseAwaitingResponse

	s.log().Info("message_submitted", "chars", len(trimmed), "messages", len(s.messages))
	return trimmed, true
}

// Resolve applies the outcome of the outstanding gateway call: a sanitized
// bot message on success or FailureText on error. The error is logged and
// never returned. The session returns to Idle. A Resolve without an
// outstanding call is ignored so no user message gets two replies.
func (s *Session) Resolve(r Reply) bool {
	if !s.Busy() {
		s.log().Warn("resolve_ignored_idle")
		return false
	}

	if r.OK() {
		s.messages = append(s.messages, models.BotMessage(SanitizeReply(r.Text)))
		s.log().Info("reply_received", "chars", len(r.Text), "messages", len(s.messages))
	} else {
		s.messages = append(s.messages, models.BotMessage(FailureText))
		s.log().Warn("reply_failed", "error", r.Err, "messages", len(s.messages))
	}
	s.phase = models.PhaseIdle
	return true
}

// ResetConversation clears the message log and the input buffer.
// It does not cancel an outstanding gateway call and does not leave
// AwaitingResponse: a reply arriving afterwards is appended to the new,
// empty log.
func (s *Session) ResetConversation() {
	previous := s.conversationID
	s.messages = []models.Message{}
	s.pendingInput = ""
	s.conversationID = uuid.NewString()

	s.logger.Info("conversation_reset",
		"previous_conversation_id", previous,
		"conversation_id", s.conversationID,
		"phase", s.phase.String(),
	)
}

// ToggleAppearance flips between light and dark presentation
func (s *Session) ToggleAppearance() {
	s.appearance = s.appearance.Toggle()
}

// SetAppearance sets the presentation mode
func (s *Session) SetAppearance(a models.Appearance) {
	s.appearance = a
}

// OpenHistory shows the history viewer
func (s *Session) OpenHistory() {
	s.historyVisible = true
}

// CloseHistory hides the history viewer
func (s *Session) CloseHistory() {
	s.historyVisible = false
}

// SetPendingInput replaces the input buffer. Allowed while busy.
func (s *Session) SetPendingInput(text string) {
	s.pendingInput = text
}

// Messages returns a copy of the message log
func (s *Session) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log
func (s *Session) Len() int {
	return len(s.messages)
}

// PendingInput returns the input buffer
func (s *Session) PendingInput() string {
	return s.pendingInput
}

// Phase returns the current state
func (s *Session) Phase() models.Phase {
	return s.phase
}

// Busy reports whether a gateway call is outstanding
func (s *Session) Busy() bool {
	return s.phase == models.PhaseAwaitingResponse
}

// Appearance returns the presentation mode
func (s *Session) Appearance() models.Appearance {
	return s.appearance
}

// HistoryVisible reports whether the history viewer is open
func (s *Session) HistoryVisible() bool {
	return s.historyVisible
}

// ConversationID identifies the current conversation in logs
func (s *Session) ConversationID() string {
	return s.conversationID
}

// LastReply returns the text of the most recent bot message
func (s *Session) LastReply() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == models.SenderBot {
			return s.messages[i].Text, true
		}
	}
	return "", false
}

func (s *Session) log() *slog.Logger {
	return s.logger.With("conversation_id", s.conversationID)
}

// SanitizeReply strips every literal '*' from gateway text
func SanitizeReply(text string) string {
	return strings.ReplaceAll(text, "*", "")
}

// Dispatch performs the single gateway call for a submitted prompt
func Dispatch(ctx context.Context, gw gateway.Gateway, prompt string) Reply {
	text, err := gw.Generate(ctx, prompt)
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Text: text}
}

// Send runs a full submission cycle synchronously: Submit, Dispatch and
// Resolve. It reports whether the text was accepted.
func (s *Session) Send(ctx context.Context, gw gateway.Gateway, text string) bool {
	prompt, ok := s.Submit(text)
	if !ok {
		return false
	}
	s.Resolve(Dispatch(ctx, gw, prompt))
	return true
}
