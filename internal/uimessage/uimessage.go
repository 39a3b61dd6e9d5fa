package uimessage

// Part type literals used in UIMessage parts lists.
const (
	PartTypeText      = "text"
	PartTypeFile      = "file"
	PartTypeStepStart = "step-start"
)

// Tool part states.
const (
	StateInputOnly       = "input-only"
	StateOutputAvailable = "output-available"
)

// Part is one element of a UIMessage parts list: a text part, a file part, a
// step-start boundary marker, or a tool part carrying call input and result
// output.
type Part struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	MediaType  string `json:"mediaType,omitempty"`
	URL        string `json:"url,omitempty"`
	ToolCallID string `json:"toolCallId,omitempty"`
	ToolName   string `json:"toolName,omitempty"`
	Input      any    `json:"input,omitempty"`
	Output     any    `json:"output,omitempty"`
	State      string `json:"state,omitempty"`
}

// UIMessage is the materialized, frontend-facing message shape. Content is a
// fallback field only populated by clients; parts is authoritative.
type UIMessage struct {
	ID      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Parts   []Part `json:"parts"`
	Content string `json:"content,omitempty"`
}

func textPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

func stepStartPart() Part {
	return Part{Type: PartTypeStepStart}
}

// toolPartType builds the dynamic part type for a tool, falling back to the
// generic "tool-result" when the name is unknown.
func toolPartType(name string) string {
	if name == "" {
		return "tool-result"
	}
	return "tool-" + name
}
