package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uibridge/uibridge/internal/protocol"
)

const echoWordDelay = 50 * time.Millisecond

// fallbackResponse is what the agent answers when no provider is configured.
func fallbackResponse(prompt string) string {
	if len(prompt) > 100 {
		prompt = prompt[:100]
	}
	return fmt.Sprintf(
		"[Fallback Mode] Echo: %s... (LLM not configured. Set UIBRIDGE_API_KEY to enable AI responses.)",
		prompt,
	)
}

// streamEcho emits the response word by word so the client still sees a
// stream in fallback mode.
func streamEcho(ctx context.Context, response string) protocol.ChunkStream {
	out := protocol.NewChanStream(16)
	go func() {
		defer out.Close()
		for _, word := range strings.Fields(response) {
			if !out.SendContext(ctx, protocol.TextChunk{Text: word + " "}) {
				return
			}
			select {
			case <-time.After(echoWordDelay):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
