// Package assistant answers free-form questions outside the scripted intake
// flow, forwarding the message and its history to the completion API.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"speakup.app/intake/common/llm"
)

const fallbackReply = "I'm sorry, I couldn't respond."

type Service struct {
	llm         llm.Client
	maxTokens   int
	temperature float64
}

func NewService(client llm.Client, maxTokens int, temperature float64) *Service {
	return &Service{
		llm:         client,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Reply appends the message to the history and returns the model's single
// reply. An empty upstream reply is replaced with a fixed apology.
func (s *Service) Reply(ctx context.Context, message string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	reply, err := s.llm.Complete(ctx, llm.CompleteRequest{
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: llm.Temp(s.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("assistant reply: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return fallbackReply, nil
	}
	return reply, nil
}
