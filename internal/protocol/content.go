package protocol

import (
	"github.com/tidwall/gjson"
)

// ExtractText flattens a loosely-typed content value to plain text.
// Supported shapes: string, {"text": ...} map, and a list mixing strings and
// text maps. Anything else yields "".
func ExtractText(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
		return ""
	case []any:
		var out string
		for _, item := range v {
			out += ExtractText(item)
		}
		return out
	default:
		return ""
	}
}

// ExtractOutput normalizes a tool-result content value for the wire. A string
// that holds a valid JSON document decodes to its value; any other string
// passes through raw; structured values pass through unchanged.
func ExtractOutput(content any) any {
	s, ok := content.(string)
	if !ok {
		return content
	}
	if !gjson.Valid(s) {
		return s
	}
	return gjson.Parse(s).Value()
}
