package uistream

import (
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/protocol"
)

// toolConverter converts one segment of completed tool results into terminal
// tool-output-available frames. Outputs are non-incremental: no start/delta
// phase is emitted.
type toolConverter struct {
	emit func(Frame)
}

func newToolConverter(emit func(Frame)) *toolConverter {
	return &toolConverter{emit: emit}
}

func (c *toolConverter) Feed(chunk protocol.Chunk) {
	result, ok := chunk.(protocol.ToolResultChunk)
	if !ok {
		logrus.Warnf("tool converter: skipping unsupported chunk type %T", chunk)
		return
	}

	items, isList := result.Content.([]any)
	if !isList {
		c.emitOutput(result.ToolCallID, protocol.ExtractOutput(result.Content))
		return
	}

	// Multi-part result: every item maps to its own frame. An item-level
	// tool_call_id wins over the message-level one. A missing id still
	// produces a frame so no result is lost.
	for _, item := range items {
		callID := result.ToolCallID
		if m, isMap := item.(map[string]any); isMap {
			if id, hasID := m["tool_call_id"].(string); hasID && id != "" {
				callID = id
			}
		}
		c.emitOutput(callID, item)
	}
}

func (c *toolConverter) emitOutput(toolCallID string, output any) {
	c.emit(ToolOutputAvailableFrame{
		Type:       FrameTypeToolOutputAvailable,
		ToolCallID: toolCallID,
		Output:     output,
	})
}
