package assistants

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/bububa/ljson"
	"github.com/effective-security/xlog"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llmutils"
)

// toolCallRe matches tool invocations embedded in the model's free text.
// The opening bracket is optional since models occasionally drop it.
var toolCallRe = regexp.MustCompile(`(?s)<?tool_call>(.*?)</tool_call>`)

// ToolCallRequest is a tool invocation parsed out of model text.
type ToolCallRequest struct {
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ExtractToolCalls parses tool invocations out of the model's response text.
// Malformed payloads are logged and skipped rather than failing the query.
func ExtractToolCalls(ctx context.Context, text string) []ToolCallRequest {
	matches := toolCallRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	calls := make([]ToolCallRequest, 0, len(matches))
	for _, match := range matches {
		var req ToolCallRequest
		err := ljson.Unmarshal(llmutils.CleanJSON([]byte(match[1])), &req)
		if err != nil || req.Name == "" {
			logger.ContextKV(ctx, xlog.DEBUG,
				"reason", "malformed_tool_call",
				"payload", match[1],
			)
			continue
		}
		calls = append(calls, req)
	}
	return calls
}

// RemoveToolCalls strips tool invocation blocks from the model text, leaving
// the surrounding prose.
func RemoveToolCalls(text string) string {
	return toolCallRe.ReplaceAllString(text, "")
}
