package protocol

// SegmentKind classifies chunks for the segment scheduler. A maximal run of
// consecutive chunks with the same kind is processed by one converter instance.
type SegmentKind string

const (
	SegmentModel    SegmentKind = "model"
	SegmentTool     SegmentKind = "tool"
	SegmentSnapshot SegmentKind = "snapshot"
)

// Chunk is one item produced by the generation loop.
type Chunk interface {
	Segment() SegmentKind
}

// TextChunk carries a fragment of assistant text for one turn.
// An empty TurnID means the fragment belongs to the same turn as the
// previous chunk.
type TextChunk struct {
	TurnID string
	Text   string
}

func (TextChunk) Segment() SegmentKind { return SegmentModel }

// ReasoningChunk carries a fragment of model reasoning for one turn.
type ReasoningChunk struct {
	TurnID string
	Text   string
}

func (ReasoningChunk) Segment() SegmentKind { return SegmentModel }

// ToolCallChunk carries a fragment of a streamed tool invocation. The ID may
// be present only on the first fragment; Index correlates later fragments to
// the same call. Name may arrive empty and be back-filled later. Args is a
// fragment of the JSON argument document.
type ToolCallChunk struct {
	TurnID string
	ID     string
	Index  int
	Name   string
	Args   string
}

func (ToolCallChunk) Segment() SegmentKind { return SegmentModel }

// ToolResultChunk is a completed tool execution result. Content may be a
// string, a JSON-decoded value, or a list of content items.
type ToolResultChunk struct {
	ToolCallID string
	Name       string
	Content    any
}

func (ToolResultChunk) Segment() SegmentKind { return SegmentTool }

// SnapshotChunk is an opaque execution-state snapshot from the generation
// engine. ParentID is empty when the checkpoint has no parent.
type SnapshotChunk struct {
	CheckpointID string
	ParentID     string
}

func (SnapshotChunk) Segment() SegmentKind { return SegmentSnapshot }
