package agent

import (
	"context"

	"github.com/uibridge/uibridge/internal/protocol"
)

// TokenStream adapts a plain text-token producer to a chunk stream, so a
// producer that only yields strings can still drive the UI message protocol.
// The channel must be closed by the producer when exhausted.
func TokenStream(ctx context.Context, tokens <-chan string) protocol.ChunkStream {
	out := protocol.NewChanStream(16)
	go func() {
		defer out.Close()
		for {
			select {
			case token, ok := <-tokens:
				if !ok {
					return
				}
				if token == "" {
					continue
				}
				if !out.SendContext(ctx, protocol.TextChunk{Text: token}) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
