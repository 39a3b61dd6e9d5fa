package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/config"
	"github.com/uibridge/uibridge/internal/protocol"
)

// Agent produces generation chunk streams for prompts. With provider
// credentials configured it talks to the configured model; without them it
// runs in fallback echo mode so the converter pipeline stays exercisable.
type Agent struct {
	mu  sync.RWMutex
	cfg *config.Config
}

func New(cfg *config.Config) *Agent {
	if !cfg.IsLLMConfigured() {
		logrus.Warn("No LLM provider configured, running in fallback echo mode")
	}
	return &Agent{cfg: cfg}
}

// SetConfig swaps the active configuration. Streams already in flight keep
// the config they started with.
func (a *Agent) SetConfig(cfg *config.Config) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
}

func (a *Agent) config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Ready reports whether the agent can serve requests. Fallback mode counts
// as ready.
func (a *Agent) Ready() bool { return true }

// Stream returns the chunk stream for a prompt. Producer failures surface
// through the stream's Err, never as a second return value.
func (a *Agent) Stream(ctx context.Context, prompt string) protocol.ChunkStream {
	cfg := a.config()
	if !cfg.IsLLMConfigured() {
		return streamEcho(ctx, fallbackResponse(prompt))
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		return streamAnthropic(ctx, cfg, prompt)
	default:
		return streamOpenAI(ctx, cfg, prompt)
	}
}

// Complete returns the full response text for a prompt without streaming.
func (a *Agent) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := a.config()
	if !cfg.IsLLMConfigured() {
		return fallbackResponse(prompt), nil
	}

	var (
		text string
		err  error
	)
	switch cfg.Provider {
	case config.ProviderAnthropic:
		text, err = completeAnthropic(ctx, cfg, prompt)
	default:
		text, err = completeOpenAI(ctx, cfg, prompt)
	}
	if err != nil {
		return "", fmt.Errorf("LLM service error: %w", err)
	}
	return text, nil
}
