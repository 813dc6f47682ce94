package llms

import (
	"context"
)

// Model is an interface chat models implement.
type Model interface {
	// GetName returns the default model name.
	GetName() string
	// GenerateContent asks the model to generate content from a sequence of
	// messages. It's the most general interface for LLMs that support
	// chat-like interactions with tool calling.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}
