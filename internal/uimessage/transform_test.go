package uimessage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uibridge/uibridge/internal/protocol"
)

func TestConvert_SystemAndUserMapOneToOne(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: protocol.RoleSystem, Content: "be helpful"},
		{Role: protocol.RoleUser, Content: "hello"},
	})

	require.Len(t, out, 2)

	assert.Equal(t, "system", out[0].Role)
	require.Len(t, out[0].Parts, 1)
	assert.Equal(t, Part{Type: PartTypeText, Text: "be helpful"}, out[0].Parts[0])

	assert.Equal(t, "user", out[1].Role)
	require.Len(t, out[1].Parts, 1)
	assert.Equal(t, "hello", out[1].Parts[0].Text)
}

func TestConvert_AssistantRunMergesToolCallAndResult(t *testing.T) {
	out := Convert([]protocol.Message{
		{
			Role:    protocol.RoleAssistant,
			Content: "ok",
			ToolCalls: []protocol.ToolCall{
				{ID: "c1", Name: "lookup", Args: map[string]any{"q": "x"}},
			},
		},
		{Role: protocol.RoleTool, ToolCallID: "c1", Content: `{"r":1}`},
	})

	require.Len(t, out, 1)
	msg := out[0]
	assert.Equal(t, "assistant", msg.Role)
	require.Len(t, msg.Parts, 3)

	assert.Equal(t, PartTypeStepStart, msg.Parts[0].Type)
	assert.Equal(t, Part{Type: PartTypeText, Text: "ok"}, msg.Parts[1])

	tool := msg.Parts[2]
	assert.Equal(t, "tool-lookup", tool.Type)
	assert.Equal(t, "c1", tool.ToolCallID)
	assert.Equal(t, "lookup", tool.ToolName)
	assert.Equal(t, map[string]any{"q": "x"}, tool.Input)
	assert.Equal(t, map[string]any{"r": float64(1)}, tool.Output)
	assert.Equal(t, StateOutputAvailable, tool.State)
}

func TestConvert_ToolCallWithoutResultStaysInputOnly(t *testing.T) {
	out := Convert([]protocol.Message{
		{
			Role: protocol.RoleAssistant,
			ToolCalls: []protocol.ToolCall{
				{ID: "c1", Name: "lookup", Args: map[string]any{}},
			},
		},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 2)

	tool := out[0].Parts[1]
	assert.Equal(t, StateInputOnly, tool.State)
	assert.Nil(t, tool.Output)
}

func TestConvert_OrphanToolResultBecomesStandalonePart(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: protocol.RoleAssistant, Content: "x"},
		{Role: protocol.RoleTool, ToolCallID: "c9", Content: "done"},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 3)

	tool := out[0].Parts[2]
	assert.Equal(t, "tool-result", tool.Type)
	assert.Equal(t, "c9", tool.ToolCallID)
	assert.Nil(t, tool.Input)
	assert.Equal(t, "done", tool.Output)
	assert.Equal(t, StateOutputAvailable, tool.State)
}

func TestConvert_EmptyAssistantRunKeepsStructure(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: protocol.RoleAssistant, Content: ""},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 2)
	assert.Equal(t, PartTypeStepStart, out[0].Parts[0].Type)
	assert.Equal(t, Part{Type: PartTypeText, Text: ""}, out[0].Parts[1])
}

func TestConvert_InterleavedAndGroupedResultsAreEquivalent(t *testing.T) {
	msgs := func(order ...protocol.Message) []protocol.Message { return order }

	ai1 := protocol.Message{
		Role:      protocol.RoleAssistant,
		Content:   "first",
		ToolCalls: []protocol.ToolCall{{ID: "c1", Name: "alpha", Args: map[string]any{}}},
	}
	ai2 := protocol.Message{
		Role:      protocol.RoleAssistant,
		Content:   "second",
		ToolCalls: []protocol.ToolCall{{ID: "c2", Name: "beta", Args: map[string]any{}}},
	}
	res1 := protocol.Message{Role: protocol.RoleTool, ToolCallID: "c1", Content: "r1"}
	res2 := protocol.Message{Role: protocol.RoleTool, ToolCallID: "c2", Content: "r2"}

	interleaved := Convert(msgs(ai1, res1, ai2, res2))
	grouped := Convert(msgs(ai1, ai2, res1, res2))

	assert.Equal(t, interleaved, grouped)
}

func TestConvert_MultiTurnRunEmitsStepStartPerAssistantMessage(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: protocol.RoleAssistant, Content: "turn one"},
		{Role: protocol.RoleAssistant, Content: "turn two"},
	})

	require.Len(t, out, 1)

	var stepStarts int
	for _, part := range out[0].Parts {
		if part.Type == PartTypeStepStart {
			stepStarts++
		}
	}
	assert.Equal(t, 2, stepStarts)
}

func TestConvert_UserMessageWithImageBecomesFilePart(t *testing.T) {
	out := Convert([]protocol.Message{
		{
			Role: protocol.RoleUser,
			Content: []any{
				map[string]any{"type": "text", "text": "look at this"},
				map[string]any{"type": "image_url", "image_url": map[string]any{"url": "http://x/i.png"}},
			},
		},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 2)

	assert.Equal(t, Part{Type: PartTypeText, Text: "look at this"}, out[0].Parts[0])

	file := out[0].Parts[1]
	assert.Equal(t, PartTypeFile, file.Type)
	assert.Equal(t, "image/*", file.MediaType)
	assert.Equal(t, "http://x/i.png", file.URL)
}

func TestConvert_UserMessageWithUnknownContentFallsBackToEmptyText(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: protocol.RoleUser, Content: 42},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Parts, 1)
	assert.Equal(t, Part{Type: PartTypeText, Text: ""}, out[0].Parts[0])
}

func TestConvert_UnknownRoleSkipped(t *testing.T) {
	out := Convert([]protocol.Message{
		{Role: "observer", Content: "??"},
		{Role: protocol.RoleUser, Content: "hi"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "user", out[0].Role)
}

func TestConvert_EmptyInput(t *testing.T) {
	assert.Empty(t, Convert(nil))
}
