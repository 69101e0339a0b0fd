package dto

import (
	"time"

	"speakup.app/intake/internal/conversation"
)

type SendMessageRequest struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Step     string            `json:"step"`
	Category string            `json:"category,omitempty"`
	Messages []MessageResponse `json:"messages"`
}

func FromSnapshot(snap conversation.Snapshot) ConversationResponse {
	messages := make([]MessageResponse, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		messages = append(messages, MessageResponse{
			ID:        m.ID,
			Text:      m.Text,
			Sender:    string(m.Sender),
			CreatedAt: m.CreatedAt,
		})
	}
	return ConversationResponse{
		Step:     string(snap.Step),
		Category: snap.Draft.Category,
		Messages: messages,
	}
}
