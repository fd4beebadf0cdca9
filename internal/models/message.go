package models

// Sender identifies who authored a chat message
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Label returns the display prefix used in transcripts
func (s Sender) Label() string {
	if s == SenderUser {
		return "You"
	}
	return "Bot"
}

// Message is a single entry in the conversation log.
// Messages are values and never modified after creation.
type Message struct {
	Text   string
	Sender Sender
}

// UserMessage creates a message authored by the user
func UserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser}
}

// BotMessage creates a message authored by the model
func BotMessage(text string) Message {
	return Message{Text: text, Sender: SenderBot}
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
