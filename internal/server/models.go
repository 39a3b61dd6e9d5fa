package server

import (
	"github.com/uibridge/uibridge/internal/protocol"
	"github.com/uibridge/uibridge/internal/uimessage"
)

// PromptRequest is the body of the agent endpoints. Either a bare prompt or a
// UIMessage history; when both are present the explicit prompt wins.
type PromptRequest struct {
	Prompt   string                `json:"prompt"`
	Messages []uimessage.UIMessage `json:"messages"`
}

// HistoryRequest is the body of the history conversion endpoint.
type HistoryRequest struct {
	Messages []protocol.Message `json:"messages"`
}

// AgentResponse is the non-streaming answer payload.
type AgentResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse is the error payload for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse reports service status.
type HealthResponse struct {
	Status        string `json:"status"`
	LLMConfigured bool   `json:"llm_configured"`
}
