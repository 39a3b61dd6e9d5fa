package uistream

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/protocol"
)

const (
	// Chunks buffered per segment input; lets the next segment accumulate
	// while the previous one drains.
	segmentChunkBuffer = 16
	// Frames buffered per segment output and on the merged output channel.
	frameBuffer = 16
	// One actively-accumulating segment plus one actively-draining segment.
	maxLiveSegments = 2
)

// CheckpointConverter maps an execution-state snapshot to a custom frame.
type CheckpointConverter func(protocol.SnapshotChunk) Frame

// StreamConverter converts an ordered chunk stream into an ordered frame
// stream. Consecutive same-kind chunks form segments; each segment is handed
// to a fresh converter instance that may start emitting immediately, but
// frames are released strictly in segment order.
type StreamConverter struct {
	checkpoint CheckpointConverter
}

// Option configures a StreamConverter.
type Option func(*StreamConverter)

// WithCheckpointConverter overrides the default data-checkpoint mapping.
func WithCheckpointConverter(fn CheckpointConverter) Option {
	return func(sc *StreamConverter) {
		sc.checkpoint = fn
	}
}

func NewStreamConverter(opts ...Option) *StreamConverter {
	sc := &StreamConverter{}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// segment is one maximal run of same-kind chunks plus its private frame
// output. Frames from a segment are withheld until every earlier segment has
// emitted its final frame.
type segment struct {
	kind protocol.SegmentKind
	in   chan protocol.Chunk
	out  chan Frame
}

// Stream consumes src until exhaustion, error or context cancellation. The
// returned channel is closed after the last frame. On producer failure every
// open lifecycle is closed first, then a terminal error frame is emitted.
func (sc *StreamConverter) Stream(ctx context.Context, src protocol.ChunkStream) <-chan Frame {
	out := make(chan Frame, frameBuffer)
	go sc.run(ctx, src, out)
	return out
}

func (sc *StreamConverter) run(ctx context.Context, src protocol.ChunkStream, out chan<- Frame) {
	defer close(out)

	send := func(f Frame) {
		select {
		case out <- f:
		case <-ctx.Done():
		}
	}

	tracker := &turnTracker{}
	slots := make(chan struct{}, maxLiveSegments)
	segments := make(chan *segment, maxLiveSegments)
	released := make(chan struct{})

	// FIFO release: drain each segment's frames in creation order. After
	// cancellation segments are still drained (frames dropped) so converter
	// goroutines never block forever.
	go func() {
		defer close(released)
		for seg := range segments {
			for frame := range seg.out {
				send(frame)
			}
			<-slots
		}
	}()

	startSegment := func(kind protocol.SegmentKind) *segment {
		slots <- struct{}{}
		seg := &segment{
			kind: kind,
			in:   make(chan protocol.Chunk, segmentChunkBuffer),
			out:  make(chan Frame, frameBuffer),
		}
		go sc.runSegment(seg, tracker)
		segments <- seg
		return seg
	}

	var current *segment
	for src.Next() {
		if ctx.Err() != nil {
			break
		}
		chunk := src.Current()
		kind := chunk.Segment()
		if current == nil || current.kind != kind {
			if current != nil {
				close(current.in)
			}
			current = startSegment(kind)
		}
		select {
		case current.in <- chunk:
		case <-ctx.Done():
		}
	}
	if current != nil {
		close(current.in)
	}
	close(segments)
	<-released

	// The tracker is only mutated by model converters, all of which have
	// finished by now. A cancelled or failed stream must not leave a
	// dangling step either.
	if tracker.open {
		send(newFinishStepFrame())
		tracker.open = false
	}
	if err := src.Err(); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Errorf("stream converter: producer failed: %v", err)
		send(ErrorFrame{Type: FrameTypeError, ErrorText: err.Error()})
	}
}

// runSegment feeds every chunk of the segment to its converter instance and
// flushes it when the segment input closes.
func (sc *StreamConverter) runSegment(seg *segment, tracker *turnTracker) {
	defer close(seg.out)
	emit := func(f Frame) { seg.out <- f }

	switch seg.kind {
	case protocol.SegmentModel:
		conv := newModelConverter(emit, tracker)
		for chunk := range seg.in {
			conv.Feed(chunk)
		}
		conv.Close()
	case protocol.SegmentTool:
		conv := newToolConverter(emit)
		for chunk := range seg.in {
			conv.Feed(chunk)
		}
	case protocol.SegmentSnapshot:
		for chunk := range seg.in {
			snapshot, ok := chunk.(protocol.SnapshotChunk)
			if !ok {
				continue
			}
			emit(sc.checkpointFrame(snapshot))
		}
	}
}

func (sc *StreamConverter) checkpointFrame(snapshot protocol.SnapshotChunk) Frame {
	if sc.checkpoint != nil {
		return sc.checkpoint(snapshot)
	}
	id := snapshot.CheckpointID
	if id == "" {
		id = "unknown"
	}
	return newCheckpointFrame(id, snapshot.ParentID)
}
