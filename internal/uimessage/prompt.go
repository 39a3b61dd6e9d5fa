package uimessage

import (
	"errors"
	"strings"
)

var (
	ErrNoMessages    = errors.New("no messages provided")
	ErrNoUserMessage = errors.New("no valid user message found in messages array")
)

// ExtractPrompt returns the prompt text of the last user message, preferring
// text parts and falling back to the legacy content field.
func ExtractPrompt(messages []UIMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role != "user" {
			continue
		}
		for _, part := range msg.Parts {
			if part.Type == PartTypeText && part.Text != "" {
				return strings.TrimSpace(part.Text), nil
			}
		}
		if msg.Content != "" {
			return strings.TrimSpace(msg.Content), nil
		}
	}

	return "", ErrNoUserMessage
}
