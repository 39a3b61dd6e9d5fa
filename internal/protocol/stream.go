package protocol

import (
	"context"
	"sync"
)

// ChunkStream is the producer interface consumed by the stream converter.
// Chunks arrive in the order they should be reflected downstream; nothing
// else is assumed about producer timing.
type ChunkStream interface {
	// Next advances to the next chunk. It returns false when the stream is
	// exhausted or failed; check Err afterwards.
	Next() bool
	// Current returns the chunk Next advanced to.
	Current() Chunk
	// Err returns the terminal stream error, if any.
	Err() error
}

// SliceStream replays a fixed chunk sequence. Used by tests and by producers
// that already hold the full sequence.
type SliceStream struct {
	chunks []Chunk
	pos    int
}

func NewSliceStream(chunks ...Chunk) *SliceStream {
	return &SliceStream{chunks: chunks}
}

func (s *SliceStream) Next() bool {
	if s.pos >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() Chunk { return s.chunks[s.pos-1] }

func (s *SliceStream) Err() error { return nil }

// ChanStream adapts a producer goroutine to the ChunkStream interface.
// The producer calls Send for each chunk and Close (or CloseWithError)
// exactly once when done.
type ChanStream struct {
	ch      chan Chunk
	current Chunk

	mu  sync.Mutex
	err error
}

func NewChanStream(buffer int) *ChanStream {
	return &ChanStream{ch: make(chan Chunk, buffer)}
}

func (s *ChanStream) Send(c Chunk) { s.ch <- c }

// SendContext sends unless ctx is done first. It reports whether the chunk
// was delivered; producers should stop on false.
func (s *ChanStream) SendContext(ctx context.Context, c Chunk) bool {
	select {
	case s.ch <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *ChanStream) Close() { close(s.ch) }

func (s *ChanStream) CloseWithError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.ch)
}

func (s *ChanStream) Next() bool {
	c, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = c
	return true
}

func (s *ChanStream) Current() Chunk { return s.current }

func (s *ChanStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
