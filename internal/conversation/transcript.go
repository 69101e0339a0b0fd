package conversation

import (
	"time"

	"speakup.app/intake/common/id"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. Messages are immutable once appended;
// the transcript is append-only and never reordered.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

func newMessage(text string, sender Sender, at time.Time) Message {
	return Message{
		ID:        id.New(),
		Text:      text,
		Sender:    sender,
		CreatedAt: at,
	}
}
