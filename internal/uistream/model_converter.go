package uistream

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/protocol"
)

// turnTracker carries the step lifecycle across converter instances. Exactly
// one start-step/finish-step pair is emitted per turn; tool results and
// snapshots never touch it. The scheduler guarantees at most one model
// converter is live at a time, so no locking is needed.
type turnTracker struct {
	current string
	open    bool
}

// toolCallState accumulates the argument document of one streamed tool call.
// The buffer is append-only; it is parsed once, when the accumulator closes.
type toolCallState struct {
	id   string
	name string
	args strings.Builder
}

// modelConverter converts one segment of model chunks (text, reasoning and
// tool-call fragments) into lifecycle frames. A fresh instance is created per
// segment; turn state is shared through the tracker.
type modelConverter struct {
	emit    func(Frame)
	tracker *turnTracker

	textID      string
	reasoningID string
	calls       map[string]*toolCallState
	callOrder   []string
	indexToCall map[int]string
}

func newModelConverter(emit func(Frame), tracker *turnTracker) *modelConverter {
	return &modelConverter{
		emit:        emit,
		tracker:     tracker,
		calls:       make(map[string]*toolCallState),
		indexToCall: make(map[int]string),
	}
}

// Feed processes one model chunk. Unrecognized chunk kinds are logged and
// skipped; they never fail the stream.
func (c *modelConverter) Feed(chunk protocol.Chunk) {
	switch t := chunk.(type) {
	case protocol.TextChunk:
		c.trackTurn(t.TurnID)
		c.handleText(t.Text)
	case protocol.ReasoningChunk:
		c.trackTurn(t.TurnID)
		c.handleReasoning(t.Text)
	case protocol.ToolCallChunk:
		c.trackTurn(t.TurnID)
		c.handleToolCall(t)
	default:
		logrus.Warnf("model converter: skipping unsupported chunk type %T", chunk)
	}
}

// Close flushes the open content lifecycles at the end of the segment. The
// turn itself stays open; the scheduler closes it when the stream ends or a
// new turn begins.
func (c *modelConverter) Close() {
	c.flushContent()
}

// trackTurn compares the chunk's turn id against the tracked one and emits
// the step boundary frames on change. An empty id means the current turn; the
// very first chunk of a stream opens an implicit turn when it carries no id.
func (c *modelConverter) trackTurn(id string) {
	if !c.tracker.open {
		if id == "" {
			id = newID("turn_")
		}
		c.tracker.current = id
		c.tracker.open = true
		c.emit(newStartStepFrame())
		return
	}
	if id == "" || id == c.tracker.current {
		return
	}
	c.flushContent()
	c.emit(newFinishStepFrame())
	c.emit(newStartStepFrame())
	c.tracker.current = id
}

func (c *modelConverter) handleText(text string) {
	if text == "" {
		return
	}
	if c.textID == "" {
		c.textID = newID("text_")
		c.emit(newTextFrame(FrameTypeTextStart, c.textID, ""))
	}
	c.emit(newTextFrame(FrameTypeTextDelta, c.textID, text))
}

func (c *modelConverter) handleReasoning(text string) {
	if text == "" {
		return
	}
	if c.reasoningID == "" {
		c.reasoningID = newID("reasoning_")
		c.emit(newTextFrame(FrameTypeReasoningStart, c.reasoningID, ""))
	}
	c.emit(newTextFrame(FrameTypeReasoningDelta, c.reasoningID, text))
}

func (c *modelConverter) handleToolCall(t protocol.ToolCallChunk) {
	id := t.ID
	if id == "" {
		// Index is only a correlation hint, never an identity.
		if mapped, ok := c.indexToCall[t.Index]; ok {
			id = mapped
		} else {
			id = newID("call_")
		}
	}

	call, ok := c.calls[id]
	if !ok {
		call = &toolCallState{id: id, name: t.Name}
		c.calls[id] = call
		c.callOrder = append(c.callOrder, id)
		c.indexToCall[t.Index] = id
		c.emit(ToolInputStartFrame{
			Type:       FrameTypeToolInputStart,
			ToolCallID: id,
			ToolName:   call.name,
		})
	} else if t.Name != "" {
		// Name completed by a later fragment; no start is re-emitted.
		call.name = t.Name
	}

	if t.Args != "" {
		call.args.WriteString(t.Args)
		c.emit(ToolInputDeltaFrame{
			Type:           FrameTypeToolInputDelta,
			ToolCallID:     id,
			InputTextDelta: t.Args,
		})
	}
}

// flushContent closes every open lifecycle: reasoning, text, then one
// tool-input-available per accumulated tool call, in first-seen order.
func (c *modelConverter) flushContent() {
	if c.reasoningID != "" {
		c.emit(newTextFrame(FrameTypeReasoningEnd, c.reasoningID, ""))
		c.reasoningID = ""
	}
	if c.textID != "" {
		c.emit(newTextFrame(FrameTypeTextEnd, c.textID, ""))
		c.textID = ""
	}
	for _, id := range c.callOrder {
		call := c.calls[id]
		c.emit(ToolInputAvailableFrame{
			Type:       FrameTypeToolInputAvailable,
			ToolCallID: call.id,
			ToolName:   call.name,
			Input:      parseToolInput(call.args.String()),
		})
	}
	c.calls = make(map[string]*toolCallState)
	c.callOrder = nil
	c.indexToCall = make(map[int]string)
}

// parseToolInput parses the accumulated argument buffer. A parse failure is a
// recoverable degradation: the raw buffer is preserved under "raw".
func parseToolInput(buffer string) any {
	if buffer == "" {
		return map[string]any{}
	}
	var input any
	if err := json.Unmarshal([]byte(buffer), &input); err != nil {
		logrus.Debugf("model converter: tool arguments are not valid JSON: %v", err)
		return map[string]any{"raw": buffer}
	}
	return input
}

// newID generates a prefixed 24-hex-char identifier.
func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + hex[:24]
}
