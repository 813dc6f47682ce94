// Package store persists chat message history. The chat ID is carried in the
// context via chatmodel.ChatContext.
package store

import (
	"context"

	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
)

// MessageStore keeps the message history of chat sessions.
type MessageStore interface {
	// Messages returns the history of the chat identified by the context.
	Messages(ctx context.Context) []llms.Message
	// Add appends messages to the history of the chat identified by the context.
	Add(ctx context.Context, msgs ...llms.Message) error
	// Reset removes the history of the chat identified by the context.
	Reset(ctx context.Context) error
}
