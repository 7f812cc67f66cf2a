package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. The conversation is owned by the
// caller's session; the service only ever reads a bounded suffix.
type Message struct {
	Role       Role      `json:"role"`
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LastMessages returns the trailing n messages of history without copying
// the underlying array.
func LastMessages(history []Message, n int) []Message {
	if n >= len(history) {
		return history
	}
	return history[len(history)-n:]
}
