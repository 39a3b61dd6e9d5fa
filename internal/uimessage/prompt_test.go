package uimessage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrompt_LastUserMessageWins(t *testing.T) {
	prompt, err := ExtractPrompt([]UIMessage{
		{Role: "user", Parts: []Part{textPart("first question")}},
		{Role: "assistant", Parts: []Part{textPart("an answer")}},
		{Role: "user", Parts: []Part{textPart("second question")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "second question", prompt)
}

func TestExtractPrompt_TextPartPreferredOverContent(t *testing.T) {
	prompt, err := ExtractPrompt([]UIMessage{
		{Role: "user", Content: "fallback", Parts: []Part{textPart("from parts")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from parts", prompt)
}

func TestExtractPrompt_ContentFallback(t *testing.T) {
	prompt, err := ExtractPrompt([]UIMessage{
		{Role: "user", Content: "  legacy content  "},
	})

	require.NoError(t, err)
	assert.Equal(t, "legacy content", prompt)
}

func TestExtractPrompt_NoMessages(t *testing.T) {
	_, err := ExtractPrompt(nil)
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestExtractPrompt_NoUserMessage(t *testing.T) {
	_, err := ExtractPrompt([]UIMessage{
		{Role: "assistant", Parts: []Part{textPart("hello")}},
	})
	assert.ErrorIs(t, err, ErrNoUserMessage)
}
