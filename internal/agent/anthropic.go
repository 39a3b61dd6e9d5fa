package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/config"
	"github.com/uibridge/uibridge/internal/protocol"
)

const anthropicMaxTokens = 4096

func newAnthropicClient(cfg *config.Config) anthropic.Client {
	options := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		options = append(options, option.WithBaseURL(cfg.BaseURL))
	}
	return anthropic.NewClient(options...)
}

func anthropicParams(cfg *config.Config, prompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(cfg.Model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: cfg.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
}

// streamAnthropic maps a messages stream to generation chunks. The message id
// from message_start serves as the turn id; tool_use blocks are tracked by
// block index so later input_json_delta events resolve to the right call.
func streamAnthropic(ctx context.Context, cfg *config.Config, prompt string) protocol.ChunkStream {
	out := protocol.NewChanStream(16)

	go func() {
		client := newAnthropicClient(cfg)
		stream := client.Messages.NewStreaming(ctx, anthropicParams(cfg, prompt))
		defer func() {
			if err := stream.Close(); err != nil {
				logrus.Errorf("Error closing stream: %v", err)
			}
		}()

		send := func(c protocol.Chunk) bool {
			if !out.SendContext(ctx, c) {
				out.CloseWithError(ctx.Err())
				return false
			}
			return true
		}

		var turnID string
		type toolBlock struct {
			id   string
			name string
		}
		tools := make(map[int]toolBlock)

		for stream.Next() {
			event := stream.Current()

			switch event.Type {
			case "message_start":
				turnID = event.Message.ID

			case "content_block_start":
				if event.ContentBlock.Type != "tool_use" {
					continue
				}
				block := toolBlock{id: event.ContentBlock.ID, name: event.ContentBlock.Name}
				tools[int(event.Index)] = block
				chunk := protocol.ToolCallChunk{
					TurnID: turnID,
					ID:     block.id,
					Index:  int(event.Index),
					Name:   block.name,
				}
				if !send(chunk) {
					return
				}

			case "content_block_delta":
				switch event.Delta.Type {
				case "text_delta":
					if !send(protocol.TextChunk{TurnID: turnID, Text: event.Delta.Text}) {
						return
					}
				case "thinking_delta":
					if !send(protocol.ReasoningChunk{TurnID: turnID, Text: event.Delta.Thinking}) {
						return
					}
				case "input_json_delta":
					block, ok := tools[int(event.Index)]
					if !ok {
						continue
					}
					chunk := protocol.ToolCallChunk{
						TurnID: turnID,
						ID:     block.id,
						Index:  int(event.Index),
						Args:   event.Delta.PartialJSON,
					}
					if !send(chunk) {
						return
					}
				}
			}
		}

		if err := stream.Err(); err != nil {
			out.CloseWithError(fmt.Errorf("LLM service error: %w", err))
			return
		}
		out.Close()
	}()

	return out
}

func completeAnthropic(ctx context.Context, cfg *config.Config, prompt string) (string, error) {
	client := newAnthropicClient(cfg)
	resp, err := client.Messages.New(ctx, anthropicParams(cfg, prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
