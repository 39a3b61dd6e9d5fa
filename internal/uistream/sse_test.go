package uistream

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetStreamHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetStreamHeaders(c)

	header := c.Writer.Header()
	assert.Equal(t, "text/event-stream", header.Get("Content-Type"))
	assert.Equal(t, "no-cache", header.Get("Cache-Control"))
	assert.Equal(t, "keep-alive", header.Get("Connection"))
	assert.Equal(t, "v1", header.Get("x-vercel-ai-ui-message-stream"))
}

func TestWriteStream(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	frames := make(chan Frame, 4)
	frames <- newStartStepFrame()
	frames <- newTextFrame(FrameTypeTextDelta, "text_1", "hi")
	frames <- newFinishStepFrame()
	close(frames)

	require.NoError(t, WriteStream(c, frames))

	body := w.Body.String()
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	require.GreaterOrEqual(t, len(lines), 6)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "data: "), "line %q lacks data prefix", line)
	}

	// Envelope: start first, then the converted frames, then finish and the
	// terminator.
	assert.Contains(t, lines[0], `"type":"start"`)
	assert.Contains(t, lines[0], `"messageId":"msg_`)
	assert.Contains(t, lines[1], `"type":"start-step"`)
	assert.Contains(t, lines[2], `"type":"text-delta"`)
	assert.Contains(t, lines[2], `"delta":"hi"`)
	assert.Contains(t, lines[len(lines)-2], `"type":"finish"`)
	assert.Equal(t, "data: [DONE]", lines[len(lines)-1])
}

func TestWriteStream_EmptyFrameChannel(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	frames := make(chan Frame)
	close(frames)

	require.NoError(t, WriteStream(c, frames))

	body := w.Body.String()
	assert.Contains(t, body, `"type":"start"`)
	assert.Contains(t, body, `"type":"finish"`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}
