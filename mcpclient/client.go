// Package mcpclient maintains a session to an MCP server over the official
// MCP Go SDK. The server is typically a local script spawned over stdio.
package mcpclient

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "mcpclient")

// ToolInfo describes a tool exposed by the MCP server.
type ToolInfo struct {
	// Name is the tool name, unique per server.
	Name string
	// Description is the human-readable tool description.
	Description string
	// InputSchema is the wire-format JSON schema of the tool arguments.
	InputSchema map[string]any
}

// Client holds an initialized MCP session.
type Client struct {
	session *mcp.ClientSession
}

// Connect establishes an MCP session and performs the initialize handshake.
func Connect(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	transport := cfg.Transport
	if transport == nil {
		if cfg.ServerScript == "" {
			return nil, errors.New("either a server script or a transport is required")
		}
		cmd, err := CommandForScript(cfg.ServerScript)
		if err != nil {
			return nil, err
		}
		transport = &mcp.CommandTransport{Command: cmd}
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MCP server")
	}

	return &Client{session: session}, nil
}

// ListTools returns the tools exposed by the server.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	res, err := c.session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tools")
	}

	infos := make([]ToolInfo, 0, len(res.Tools))
	for _, tool := range res.Tools {
		info := ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.InputSchema != nil {
			// The SDK exposes the schema as a typed value; round-trip through
			// JSON to get the wire-format map the converters work on.
			bs, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, errors.Wrapf(err, "tool %q: invalid input schema", tool.Name)
			}
			if err := json.Unmarshal(bs, &info.InputSchema); err != nil {
				return nil, errors.Wrapf(err, "tool %q: invalid input schema", tool.Name)
			}
		}
		infos = append(infos, info)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "listed_tools",
		"count", len(infos),
	)
	return infos, nil
}

// CallTool invokes a named tool and returns the result content flattened to
// text. Results the server marks as errors are returned as Go errors.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to call tool %q", name)
	}

	text := flattenContent(res.Content)
	if res.IsError {
		return "", errors.Newf("tool %q failed: %s", name, text)
	}
	return text, nil
}

// Close shuts the session down, terminating the server subprocess for stdio
// transports.
func (c *Client) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	return c.session.Close()
}

func flattenContent(content []mcp.Content) string {
	var buf strings.Builder
	for _, block := range content {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		switch b := block.(type) {
		case *mcp.TextContent:
			buf.WriteString(b.Text)
		default:
			// Non-text blocks are preserved as JSON rather than dropped.
			bs, err := json.Marshal(block)
			if err != nil {
				continue
			}
			buf.Write(bs)
		}
	}
	return buf.String()
}
