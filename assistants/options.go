package assistants

import (
	"github.com/matheushmfr/gemini-mcp-client/store"
	"github.com/matheushmfr/gemini-mcp-client/tools"
)

const (
	// DefaultMaxToolCalls limits the number of tool invocations per query.
	DefaultMaxToolCalls = 10
	// DefaultMaxRetries limits retries on empty model responses.
	DefaultMaxRetries = 3
	// DefaultMaxNotFound limits consecutive calls to unknown tools.
	DefaultMaxNotFound = 3
)

// Config is the assistant configuration.
type Config struct {
	// Name of the assistant, used in logs and errors.
	Name string
	// SystemPrompt overrides the default system instruction.
	SystemPrompt string
	// MaxToolCalls limits the number of tool invocations per query.
	MaxToolCalls int
	// Store receives the chat history, when set.
	Store store.MessageStore
	// Callback receives tool lifecycle notifications, when set.
	Callback tools.Callback
}

// Option configures an assistant.
type Option func(*Config)

// NewConfig creates a Config from options.
func NewConfig(options ...Option) *Config {
	cfg := &Config{
		Name:         "MCP Assistant",
		MaxToolCalls: DefaultMaxToolCalls,
	}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithName sets the name of the assistant.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithSystemPrompt overrides the default system instruction.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) {
		c.SystemPrompt = prompt
	}
}

// WithMaxToolCalls limits the number of tool invocations per query.
func WithMaxToolCalls(n int) Option {
	return func(c *Config) {
		c.MaxToolCalls = n
	}
}

// WithStore sets the message store receiving the chat history.
func WithStore(s store.MessageStore) Option {
	return func(c *Config) {
		c.Store = s
	}
}

// WithCallback sets the tool lifecycle callback.
func WithCallback(cb tools.Callback) Option {
	return func(c *Config) {
		c.Callback = cb
	}
}
