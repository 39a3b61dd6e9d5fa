package uistream

// Frame type literals of the UI message stream protocol.
const (
	FrameTypeStart               = "start"
	FrameTypeStartStep           = "start-step"
	FrameTypeTextStart           = "text-start"
	FrameTypeTextDelta           = "text-delta"
	FrameTypeTextEnd             = "text-end"
	FrameTypeReasoningStart      = "reasoning-start"
	FrameTypeReasoningDelta      = "reasoning-delta"
	FrameTypeReasoningEnd        = "reasoning-end"
	FrameTypeToolInputStart      = "tool-input-start"
	FrameTypeToolInputDelta      = "tool-input-delta"
	FrameTypeToolInputAvailable  = "tool-input-available"
	FrameTypeToolOutputAvailable = "tool-output-available"
	FrameTypeCheckpoint          = "data-checkpoint"
	FrameTypeFinishStep          = "finish-step"
	FrameTypeFinish              = "finish"
	FrameTypeError               = "error"
)

// Frame is one fully-formed protocol message. Frames are immutable once
// emitted; each concrete type carries exactly the fields the wire permits.
type Frame interface {
	FrameType() string
}

// StartFrame opens the message stream.
type StartFrame struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId"`
}

func (f StartFrame) FrameType() string { return f.Type }

// StartStepFrame opens one generation turn.
type StartStepFrame struct {
	Type string `json:"type"`
}

func (f StartStepFrame) FrameType() string { return f.Type }

// FinishStepFrame closes one generation turn.
type FinishStepFrame struct {
	Type string `json:"type"`
}

func (f FinishStepFrame) FrameType() string { return f.Type }

// TextFrame covers text-start, text-delta and text-end; Delta is only set on
// deltas. Reasoning frames reuse the same shape with reasoning-* types.
type TextFrame struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Delta string `json:"delta,omitempty"`
}

func (f TextFrame) FrameType() string { return f.Type }

// ToolInputStartFrame announces a streamed tool invocation.
type ToolInputStartFrame struct {
	Type       string `json:"type"`
	ToolCallID string `json:"toolCallId"`
	ToolName   string `json:"toolName"`
}

func (f ToolInputStartFrame) FrameType() string { return f.Type }

// ToolInputDeltaFrame carries one verbatim fragment of the argument document.
type ToolInputDeltaFrame struct {
	Type           string `json:"type"`
	ToolCallID     string `json:"toolCallId"`
	InputTextDelta string `json:"inputTextDelta"`
}

func (f ToolInputDeltaFrame) FrameType() string { return f.Type }

// ToolInputAvailableFrame is the terminal frame of a tool invocation,
// carrying the fully parsed argument object.
type ToolInputAvailableFrame struct {
	Type       string `json:"type"`
	ToolCallID string `json:"toolCallId"`
	ToolName   string `json:"toolName"`
	Input      any    `json:"input"`
}

func (f ToolInputAvailableFrame) FrameType() string { return f.Type }

// ToolOutputAvailableFrame carries a completed tool execution result.
type ToolOutputAvailableFrame struct {
	Type       string `json:"type"`
	ToolCallID string `json:"toolCallId"`
	Output     any    `json:"output"`
}

func (f ToolOutputAvailableFrame) FrameType() string { return f.Type }

// CheckpointRef identifies an execution-state checkpoint and its parent.
// Parent is null when the checkpoint has none.
type CheckpointRef struct {
	ID     string  `json:"id"`
	Parent *string `json:"parent"`
}

// CheckpointFrame is a transient side-channel frame; it never affects the
// step lifecycle.
type CheckpointFrame struct {
	Type       string        `json:"type"`
	Transient  bool          `json:"transient"`
	Checkpoint CheckpointRef `json:"checkpoint"`
}

func (f CheckpointFrame) FrameType() string { return f.Type }

// FinishFrame terminates a successful stream.
type FinishFrame struct {
	Type string `json:"type"`
}

func (f FinishFrame) FrameType() string { return f.Type }

// ErrorFrame reports a terminal producer failure.
type ErrorFrame struct {
	Type      string `json:"type"`
	ErrorText string `json:"errorText"`
}

func (f ErrorFrame) FrameType() string { return f.Type }

func newStartFrame(messageID string) StartFrame {
	return StartFrame{Type: FrameTypeStart, MessageID: messageID}
}

func newStartStepFrame() StartStepFrame { return StartStepFrame{Type: FrameTypeStartStep} }

func newFinishStepFrame() FinishStepFrame { return FinishStepFrame{Type: FrameTypeFinishStep} }

func newTextFrame(frameType, id, delta string) TextFrame {
	return TextFrame{Type: frameType, ID: id, Delta: delta}
}

func newCheckpointFrame(id string, parent string) CheckpointFrame {
	ref := CheckpointRef{ID: id}
	if parent != "" {
		ref.Parent = &parent
	}
	return CheckpointFrame{Type: FrameTypeCheckpoint, Transient: true, Checkpoint: ref}
}
