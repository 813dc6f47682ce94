// Package assistants implements the query relay loop between the user, the
// Gemini model, and the tools discovered on the MCP server.
//
// Two interchangeable assistants are provided. PromptedAssistant describes
// the tools inside the prompt and parses tool invocations out of the model's
// free text. NativeAssistant passes the tools as function declarations and
// consumes the structured tool calls the model returns.
package assistants

import (
	"context"

	"github.com/effective-security/xlog"
)

//go:generate mockgen -destination=../mocks/mockllms/llm_mock.gen.go -package mockllms github.com/matheushmfr/gemini-mcp-client/pkg/llms Model

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "assistants")

// IAssistant processes user queries against the model and the available tools.
type IAssistant interface {
	// Name returns the name of the assistant.
	Name() string
	// ProcessQuery sends the query to the model, relays any requested tool
	// invocations, and returns the final text to show the user.
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// NativeSystemPrompt instructs the model when tools are supplied as native
// function declarations.
const NativeSystemPrompt = `You are a helpful assistant with access to various tools. When a user's query requires the use of a tool,
use the appropriate tool to address their needs. Do not suggest using a tool when it's not necessary and
answer queries not related to tools naturally.`
