// Package history renders the in-memory conversation log for the
// read-only history viewer.
package history

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/diogo/geminichat/internal/models"
)

// Placeholder is the single line shown when the log is empty
const Placeholder = "No chat history available."

// Line formats one message as "You: <text>" or "Bot: <text>"
func Line(msg models.Message) string {
	return msg.Sender.Label() + ": " + msg.Text
}

// Lines returns one line per message in log order, or the placeholder
func Lines(messages []models.Message) []string {
	if len(messages) == 0 {
		return []string{Placeholder}
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, Line(msg))
	}
	return lines
}

// Text joins Lines with newlines
func Text(messages []models.Message) string {
	return strings.Join(Lines(messages), "\n")
}

// Viewer is a read-only view over the message log. Closing it only
// notifies the owner; the log is never modified.
type Viewer struct {
	Messages []models.Message
	OnClose  func()

	closed bool
}

// NewViewer creates a viewer over a snapshot of messages
func NewViewer(messages []models.Message, onClose func()) *Viewer {
	snapshot := make([]models.Message, len(messages))
	copy(snapshot, messages)
	return &Viewer{Messages: snapshot, OnClose: onClose}
}

// Lines returns the viewer's display lines
func (v *Viewer) Lines() []string {
	return Lines(v.Messages)
}

// Close invokes OnClose once; later calls do nothing
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.OnClose != nil {
		v.OnClose()
	}
}

// Closed reports whether Close has been called
func (v *Viewer) Closed() bool {
	return v.closed
}

// Truncate shortens line to at most width display cells, ending with "…"
// when cut. Wide runes (CJK, emoji) count as two cells.
func Truncate(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(line) <= width {
		return line
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(line, width, "…")
}

// Wrap breaks line into chunks of at most width display cells
func Wrap(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		out     []string
		current strings.Builder
		cells   int
	)
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if cells+w > width && cells > 0 {
			out = append(out, current.String())
			current.Reset()
			cells = 0
		}
		current.WriteRune(r)
		cells += w
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
