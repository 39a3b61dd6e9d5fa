package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/config"
	"github.com/uibridge/uibridge/internal/protocol"
)

// newOpenAIClient builds an OpenAI SDK client for the configured provider.
// Dashscope and other OpenAI-compatible backends plug in through BaseURL.
func newOpenAIClient(cfg *config.Config) openai.Client {
	options := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		options = append(options, option.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(options...)
}

func openAIParams(cfg *config.Config, prompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(cfg.SystemPrompt),
			openai.UserMessage(prompt),
		},
	}
}

// streamOpenAI maps a chat-completions stream to generation chunks. The
// completion id serves as the turn id.
func streamOpenAI(ctx context.Context, cfg *config.Config, prompt string) protocol.ChunkStream {
	out := protocol.NewChanStream(16)

	go func() {
		client := newOpenAIClient(cfg)
		stream := client.Chat.Completions.NewStreaming(ctx, openAIParams(cfg, prompt))
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

		for stream.Next() {
			chatChunk := stream.Current()
			if len(chatChunk.Choices) == 0 {
				continue
			}
			delta := chatChunk.Choices[0].Delta

			// Dashscope and DeepSeek surface reasoning through an extra field.
			if field, ok := delta.JSON.ExtraFields["reasoning_content"]; ok && field.Valid() {
				var reasoning string
				if err := json.Unmarshal([]byte(field.Raw()), &reasoning); err == nil && reasoning != "" {
					if !send(protocol.ReasoningChunk{TurnID: chatChunk.ID, Text: reasoning}) {
						return
					}
				}
			}

			if delta.Content != "" {
				if !send(protocol.TextChunk{TurnID: chatChunk.ID, Text: delta.Content}) {
					return
				}
			}

			for _, tc := range delta.ToolCalls {
				chunk := protocol.ToolCallChunk{
					TurnID: chatChunk.ID,
					ID:     tc.ID,
					Index:  int(tc.Index),
					Name:   tc.Function.Name,
					Args:   tc.Function.Arguments,
				}
				if !send(chunk) {
					return
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

func completeOpenAI(ctx context.Context, cfg *config.Config, prompt string) (string, error) {
	client := newOpenAIClient(cfg)
	resp, err := client.Chat.Completions.New(ctx, openAIParams(cfg, prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
