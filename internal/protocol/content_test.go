package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{"plain string", "hello", "hello"},
		{"text map", map[string]any{"text": "mapped"}, "mapped"},
		{"map without text", map[string]any{"other": 1}, ""},
		{
			"mixed list",
			[]any{"a", map[string]any{"text": "b"}, map[string]any{"other": 1}},
			"ab",
		},
		{"nil", nil, ""},
		{"number", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.content))
		})
	}
}

func TestExtractOutput(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    any
	}{
		{"json object string", `{"r":1}`, map[string]any{"r": float64(1)}},
		{"json array string", `[1,2]`, []any{float64(1), float64(2)}},
		{"json string literal", `"quoted"`, "quoted"},
		{"json null literal", `null`, nil},
		{"plain string", "not json", "not json"},
		{"truncated json", `{"r":`, `{"r":`},
		{"structured value", map[string]any{"k": "v"}, map[string]any{"k": "v"}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractOutput(tt.content))
		})
	}
}
