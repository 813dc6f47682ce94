package tools

import (
	"context"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/matheushmfr/gemini-mcp-client/mcpclient"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llmutils"
)

// ToolCaller invokes a named tool with decoded arguments.
// It is implemented by mcpclient.Client.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// McpTool adapts a tool discovered on an MCP server to the ITool interface.
// Call routes the invocation through the MCP session.
type McpTool struct {
	info   mcpclient.ToolInfo
	caller ToolCaller
}

var _ ITool = (*McpTool)(nil)

// NewMcpTool creates an ITool backed by the MCP session.
func NewMcpTool(caller ToolCaller, info mcpclient.ToolInfo) *McpTool {
	return &McpTool{
		info:   info,
		caller: caller,
	}
}

// FromMCP wraps each discovered MCP tool as an ITool.
func FromMCP(caller ToolCaller, infos ...mcpclient.ToolInfo) []ITool {
	list := make([]ITool, 0, len(infos))
	for _, info := range infos {
		list = append(list, NewMcpTool(caller, info))
	}
	return list
}

// Name returns the name of the Tool.
func (t *McpTool) Name() string {
	return t.info.Name
}

// Description returns the description of the tool, to be used in the prompt.
func (t *McpTool) Description() string {
	return t.info.Description
}

// Parameters returns the JSON schema of the tool arguments.
func (t *McpTool) Parameters() map[string]any {
	return t.info.InputSchema
}

// Call executes the tool. The input is the argument object as JSON text,
// exactly as produced by the model; it is decoded leniently since models
// occasionally emit slightly malformed JSON.
func (t *McpTool) Call(ctx context.Context, input string) (string, error) {
	var args map[string]any
	if input != "" {
		if err := ljson.Unmarshal(llmutils.CleanJSON([]byte(input)), &args); err != nil {
			return "", errors.Wrapf(err, "tool %q: failed to unmarshal input", t.info.Name)
		}
	}
	return t.caller.CallTool(ctx, t.info.Name, args)
}
