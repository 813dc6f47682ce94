package assistants

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"github.com/matheushmfr/gemini-mcp-client/tools"
)

// promptedPreamble opens the prompt describing the available tools and the
// invocation convention.
const promptedPreamble = `You are a helpful assistant with access to these tools:

%s

Choose the appropriate tool based on the user's question. If no tool is needed, reply directly.

IMPORTANT: When you need to use a tool, you must ONLY respond with the exact format below, nothing else:
<tool_call>
{"name": "tool-name", "input": {"param": "value"}}
</tool_call>

User question: %s`

// followUpPrompt feeds a tool result back to the model for the final answer.
const followUpPrompt = `You previously used the tool %s to answer the query: %s
The tool returned this result: %s
Please provide a helpful response based on this information.`

// PromptedAssistant relays queries to the model with the tool catalog embedded
// in the prompt and parses tool invocations out of the model's free text.
type PromptedAssistant struct {
	llm         llms.Model
	tools       []tools.ITool
	toolsByName map[string]tools.ITool
	cfg         *Config
}

// NewPromptedAssistant creates an assistant using prompt-embedded tools.
func NewPromptedAssistant(llm llms.Model, toolList []tools.ITool, options ...Option) (*PromptedAssistant, error) {
	if llm == nil {
		return nil, errors.New("llm model is required")
	}

	byName := make(map[string]tools.ITool, len(toolList))
	for _, tool := range toolList {
		if _, ok := byName[tool.Name()]; ok {
			return nil, errors.Newf("duplicate tool name: %s", tool.Name())
		}
		byName[tool.Name()] = tool
	}

	return &PromptedAssistant{
		llm:         llm,
		tools:       toolList,
		toolsByName: byName,
		cfg:         NewConfig(options...),
	}, nil
}

// Name returns the name of the assistant.
func (a *PromptedAssistant) Name() string {
	return a.cfg.Name
}

// ProcessQuery sends the query with the tool catalog embedded in the prompt,
// executes any tool invocations found in the response, and asks the model for
// a final answer based on each tool result. Tool failures are reported in the
// output rather than failing the query.
func (a *PromptedAssistant) ProcessQuery(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(promptedPreamble, a.describeTools(), query)

	resp, err := a.generate(ctx, llms.MessageFromTextParts(llms.RoleHuman, prompt))
	if err != nil {
		return "", errors.WithMessage(err, "failed to generate response")
	}

	text := resp.Choices[0].Content
	calls := ExtractToolCalls(ctx, text)
	if len(calls) == 0 {
		a.record(ctx, query, text)
		return text, nil
	}

	var out []string
	if prose := strings.TrimSpace(RemoveToolCalls(text)); prose != "" {
		out = append(out, prose)
	}

	executed := 0
	for _, call := range calls {
		if executed >= a.cfg.MaxToolCalls {
			return "", errors.Newf("exceeded maximum of %d tool calls", a.cfg.MaxToolCalls)
		}
		executed++

		input := string(call.Input)
		tool, ok := a.toolsByName[call.Name]
		if !ok {
			logger.ContextKV(ctx, xlog.ERROR, "tool", call.Name, "err", "not found")
			out = append(out, fmt.Sprintf("Error executing tool %s: tool not found", call.Name))
			continue
		}

		out = append(out, fmt.Sprintf("[Calling tool %s with args %s]", call.Name, input))
		if a.cfg.Callback != nil {
			a.cfg.Callback.OnToolStart(ctx, tool, input)
		}

		result, err := tool.Call(ctx, input)
		if err != nil {
			if a.cfg.Callback != nil {
				a.cfg.Callback.OnToolError(ctx, tool, input, err)
			}
			logger.ContextKV(ctx, xlog.ERROR, "tool", call.Name, "err", err.Error())
			out = append(out, fmt.Sprintf("Error executing tool %s: %v", call.Name, err))
			continue
		}
		if a.cfg.Callback != nil {
			a.cfg.Callback.OnToolEnd(ctx, tool, input, result)
		}

		followUp := fmt.Sprintf(followUpPrompt, call.Name, query, result)
		resp, err := a.generate(ctx, llms.MessageFromTextParts(llms.RoleHuman, followUp))
		if err != nil {
			return "", errors.WithMessagef(err, "failed to generate response for tool %s", call.Name)
		}
		out = append(out, resp.Choices[0].Content)
	}

	final := strings.Join(out, "\n")
	a.record(ctx, query, final)
	return final, nil
}

// generate calls the model, retrying when the response carries no choices.
func (a *PromptedAssistant) generate(ctx context.Context, msg llms.Message) (*llms.ContentResponse, error) {
	for attempt := 0; attempt < DefaultMaxRetries; attempt++ {
		resp, err := a.llm.GenerateContent(ctx, []llms.Message{msg})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) > 0 {
			return resp, nil
		}
		logger.ContextKV(ctx, xlog.DEBUG, "reason", "empty_response", "attempt", attempt+1)
	}
	return nil, errors.New("model returned an empty response")
}

// describeTools renders the catalog the way the prompt expects it.
func (a *PromptedAssistant) describeTools() string {
	return tools.GetDescriptions(a.tools...)
}

func (a *PromptedAssistant) record(ctx context.Context, query, response string) {
	if a.cfg.Store == nil {
		return
	}
	err := a.cfg.Store.Add(ctx,
		llms.MessageFromTextParts(llms.RoleHuman, query),
		llms.MessageFromTextParts(llms.RoleAI, response),
	)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "store_add", "err", err.Error())
	}
}
