package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/uimessage"
	"github.com/uibridge/uibridge/internal/uistream"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "uibridge",
		"version": s.version,
		"endpoints": gin.H{
			"agent":   "POST /agent",
			"stream":  "POST /agent/stream",
			"history": "POST /history",
			"health":  "GET /health",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	if !s.agent.Ready() {
		status = "unavailable"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:        status,
		LLMConfigured: s.config.IsLLMConfigured(),
	})
}

// resolvePrompt returns the prompt from the request body, falling back to the
// last user message of a posted UIMessage history.
func resolvePrompt(req *PromptRequest) (string, error) {
	if req.Prompt != "" {
		return req.Prompt, nil
	}
	return uimessage.ExtractPrompt(req.Messages)
}

func (s *Server) handleAgent(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	prompt, err := resolvePrompt(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	answer, err := s.agent.Complete(c.Request.Context(), prompt)
	if err != nil {
		logrus.Errorf("Agent request failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "LLM service temporarily unavailable. Please try again later.",
			Code:  "LLM_UNAVAILABLE",
		})
		return
	}

	c.JSON(http.StatusOK, AgentResponse{Answer: answer})
}

func (s *Server) handleAgentStream(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Panic in streaming handler: %v", r)
			if c.Writer != nil && !c.Writer.Written() {
				c.Writer.WriteHeader(http.StatusInternalServerError)
			}
		}
	}()

	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	prompt, err := resolvePrompt(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	uistream.SetStreamHeaders(c)

	src := s.agent.Stream(c.Request.Context(), prompt)
	frames := s.converter.Stream(c.Request.Context(), src)
	if err := uistream.WriteStream(c, frames); err != nil {
		logrus.Errorf("Stream write failed: %v", err)
	}
}

func (s *Server) handleHistory(c *gin.Context) {
	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	c.JSON(http.StatusOK, uimessage.Convert(req.Messages))
}
