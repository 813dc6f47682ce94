package mcpclient

import (
	"os/exec"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options is a set of options for the MCP client.
type Options struct {
	// Name and Version identify this client in the MCP handshake.
	Name    string
	Version string
	// ServerScript is the path to a .py or .js MCP server script to spawn
	// over stdio.
	ServerScript string
	// Transport overrides the stdio transport, mainly for tests.
	Transport mcp.Transport
}

// DefaultOptions returns the default client options.
func DefaultOptions() Options {
	return Options{
		Name:    "gemini-mcp-client",
		Version: "1.0.0",
	}
}

// Option configures the MCP client.
type Option func(*Options)

// WithServerScript sets the path of the MCP server script to spawn.
func WithServerScript(path string) Option {
	return func(opts *Options) {
		opts.ServerScript = path
	}
}

// WithTransport sets an explicit transport instead of spawning a script.
func WithTransport(t mcp.Transport) Option {
	return func(opts *Options) {
		opts.Transport = t
	}
}

// WithImplementation sets the client name and version used in the handshake.
func WithImplementation(name, version string) Option {
	return func(opts *Options) {
		opts.Name = name
		opts.Version = version
	}
}

// CommandForScript builds the interpreter command for a server script.
// Python scripts are launched with `python`, JavaScript ones with `node`.
func CommandForScript(path string) (*exec.Cmd, error) {
	switch filepath.Ext(path) {
	case ".py":
		return exec.Command("python", path), nil
	case ".js":
		return exec.Command("node", path), nil
	default:
		return nil, errors.Newf("server script must be a .py or .js file, got %q", path)
	}
}
