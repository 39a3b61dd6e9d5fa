package uistream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// doneMarker terminates the SSE stream.
const doneMarker = "[DONE]"

// SetStreamHeaders sets the response headers expected by UI message stream
// consumers.
func SetStreamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")
	c.Header("x-vercel-ai-ui-message-stream", "v1")
}

// WriteStream writes the message envelope and every converted frame as SSE
// data lines, ending with the [DONE] marker. Each frame is flushed as soon as
// it is written.
func WriteStream(c *gin.Context, frames <-chan Frame) error {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported by this connection")
	}

	writeFrame(c, flusher, newStartFrame(newID("msg_")))
	for frame := range frames {
		writeFrame(c, flusher, frame)
	}
	writeFrame(c, flusher, FinishFrame{Type: FrameTypeFinish})

	fmt.Fprintf(c.Writer, "data: %s\n\n", doneMarker)
	flusher.Flush()
	return nil
}

func writeFrame(c *gin.Context, flusher http.Flusher, frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		logrus.Errorf("failed to marshal %s frame: %v", frame.FrameType(), err)
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
	flusher.Flush()
}
