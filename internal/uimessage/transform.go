package uimessage

import (
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/protocol"
)

// Convert folds a flat, ordered message list into UIMessage values. System
// and user messages map 1:1; a maximal run of assistant and tool messages is
// folded into a single assistant UIMessage with step-start markers, text
// parts and merged tool parts. The walk is synchronous, single-pass and
// deterministic.
func Convert(messages []protocol.Message) []UIMessage {
	out := make([]UIMessage, 0, len(messages))

	for i := 0; i < len(messages); {
		msg := messages[i]

		switch msg.Role {
		case protocol.RoleSystem:
			out = append(out, UIMessage{
				Role:  string(protocol.RoleSystem),
				Parts: []Part{textPart(protocol.ExtractText(msg.Content))},
			})
			i++

		case protocol.RoleUser:
			out = append(out, convertUserMessage(msg))
			i++

		case protocol.RoleAssistant, protocol.RoleTool:
			j := i
			for j < len(messages) &&
				(messages[j].Role == protocol.RoleAssistant || messages[j].Role == protocol.RoleTool) {
				j++
			}
			out = append(out, convertAssistantRun(messages[i:j]))
			i = j

		default:
			logrus.Warnf("history merge: skipping message with unknown role %q", msg.Role)
			i++
		}
	}

	return out
}

// convertUserMessage maps a user message to a UIMessage, expanding
// multi-modal content items into text and file parts.
func convertUserMessage(msg protocol.Message) UIMessage {
	var parts []Part

	switch content := msg.Content.(type) {
	case string:
		parts = append(parts, textPart(content))
	case []any:
		for _, item := range content {
			switch v := item.(type) {
			case string:
				parts = append(parts, textPart(v))
			case map[string]any:
				switch v["type"] {
				case "text":
					text, _ := v["text"].(string)
					parts = append(parts, textPart(text))
				case "image_url":
					parts = append(parts, Part{
						Type:      PartTypeFile,
						MediaType: "image/*",
						URL:       imageURL(v["image_url"]),
					})
				}
			}
		}
	}

	if len(parts) == 0 {
		parts = append(parts, textPart(""))
	}
	return UIMessage{Role: string(protocol.RoleUser), Parts: parts}
}

// imageURL accepts both the nested {"url": ...} shape and a bare string.
func imageURL(v any) string {
	switch u := v.(type) {
	case map[string]any:
		url, _ := u["url"].(string)
		return url
	case string:
		return u
	default:
		return ""
	}
}

// convertAssistantRun folds consecutive assistant and tool messages into one
// assistant UIMessage. Every assistant message contributes a step-start
// marker; tool results back-fill the output of the matching tool part or, if
// no call precedes them in the run, become standalone output-only parts.
func convertAssistantRun(run []protocol.Message) UIMessage {
	var parts []Part
	// tool call id -> index into parts, for output back-fill
	callParts := make(map[string]int)

	for _, msg := range run {
		switch msg.Role {
		case protocol.RoleAssistant:
			parts = append(parts, stepStartPart())
			if text := protocol.ExtractText(msg.Content); text != "" {
				parts = append(parts, textPart(text))
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, Part{
					Type:       toolPartType(call.Name),
					ToolCallID: call.ID,
					ToolName:   call.Name,
					Input:      call.Args,
					State:      StateInputOnly,
				})
				callParts[call.ID] = len(parts) - 1
			}

		case protocol.RoleTool:
			output := protocol.ExtractOutput(msg.Content)
			if idx, ok := callParts[msg.ToolCallID]; ok {
				parts[idx].Output = output
				parts[idx].State = StateOutputAvailable
				continue
			}
			// Orphaned result: preserved rather than dropped.
			parts = append(parts, Part{
				Type:       toolPartType(msg.Name),
				ToolCallID: msg.ToolCallID,
				ToolName:   msg.Name,
				Output:     output,
				State:      StateOutputAvailable,
			})
		}
	}

	if !hasContentPart(parts) {
		parts = append(parts, textPart(""))
	}
	return UIMessage{Role: string(protocol.RoleAssistant), Parts: parts}
}

func hasContentPart(parts []Part) bool {
	for _, p := range parts {
		if p.Type != PartTypeStepStart {
			return true
		}
	}
	return false
}
