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

// NativeAssistant relays queries to the model with the tools passed as native
// function declarations and executes the structured tool calls the model
// returns. It keeps the conversation history across queries so that follow-up
// questions can refer to earlier tool results.
type NativeAssistant struct {
	llm         llms.Model
	tools       []tools.ITool
	toolsByName map[string]tools.ITool
	llmTools    []llms.Tool
	cfg         *Config

	history []llms.Message
}

// NewNativeAssistant creates an assistant using native function calling.
func NewNativeAssistant(llm llms.Model, toolList []tools.ITool, options ...Option) (*NativeAssistant, error) {
	if llm == nil {
		return nil, errors.New("llm model is required")
	}

	byName := make(map[string]tools.ITool, len(toolList))
	llmTools := make([]llms.Tool, 0, len(toolList))
	for _, tool := range toolList {
		if _, ok := byName[tool.Name()]; ok {
			return nil, errors.Newf("duplicate tool name: %s", tool.Name())
		}
		byName[tool.Name()] = tool
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}

	return &NativeAssistant{
		llm:         llm,
		tools:       toolList,
		toolsByName: byName,
		llmTools:    llmTools,
		cfg:         NewConfig(options...),
	}, nil
}

// Name returns the name of the assistant.
func (a *NativeAssistant) Name() string {
	return a.cfg.Name
}

// ProcessQuery runs the function calling loop: the model is called with the
// conversation so far, requested tool calls are executed and their results
// fed back, until the model answers with text. Tool failures are fed back to
// the model so it can recover or report them.
func (a *NativeAssistant) ProcessQuery(ctx context.Context, query string) (string, error) {
	systemPrompt := a.cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = NativeSystemPrompt
	}

	msgs := make([]llms.Message, 0, len(a.history)+2)
	msgs = append(msgs, llms.MessageFromTextParts(llms.RoleSystem, systemPrompt))
	msgs = append(msgs, a.history...)
	msgs = append(msgs, llms.MessageFromTextParts(llms.RoleHuman, query))

	var (
		out         []string
		finalText   string
		executed    int
		notFoundRun int
	)

	for {
		resp, err := a.generate(ctx, msgs)
		if err != nil {
			return "", errors.WithMessage(err, "failed to generate response")
		}

		choice := resp.Choices[0]
		if len(choice.ToolCalls) == 0 {
			finalText = choice.Content
			if finalText != "" {
				out = append(out, finalText)
			}
			break
		}

		if text := strings.TrimSpace(choice.Content); text != "" {
			out = append(out, text)
		}

		// Gemini does not assign call IDs; generate them up front so the
		// response echoes the ID recorded on the call.
		calls := make([]llms.ToolCall, len(choice.ToolCalls))
		copy(calls, choice.ToolCalls)
		for i := range calls {
			if calls[i].ID == "" {
				calls[i].ID = fmt.Sprintf("%s_%d", calls[i].FunctionCall.Name, executed+i)
			}
			msgs = append(msgs, llms.MessageFromToolCalls(llms.RoleAI, calls[i]))
		}

		for _, tc := range calls {
			if executed >= a.cfg.MaxToolCalls {
				return "", errors.Newf("exceeded maximum of %d tool calls", a.cfg.MaxToolCalls)
			}
			executed++

			name := tc.FunctionCall.Name
			input := tc.FunctionCall.Arguments

			tool, ok := a.toolsByName[name]
			if !ok {
				notFoundRun++
				if notFoundRun > DefaultMaxNotFound {
					return "", errors.Newf("model kept requesting unknown tools, last: %s", name)
				}
				logger.ContextKV(ctx, xlog.ERROR, "tool", name, "err", "not found")
				msgs = append(msgs, llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
					ToolCallID: tc.ID,
					Name:       name,
					Content:    fmt.Sprintf("tool %s not found", name),
				}))
				continue
			}
			notFoundRun = 0

			if a.cfg.Callback != nil {
				a.cfg.Callback.OnToolStart(ctx, tool, input)
			}

			result, err := tool.Call(ctx, input)
			if err != nil {
				if a.cfg.Callback != nil {
					a.cfg.Callback.OnToolError(ctx, tool, input, err)
				}
				logger.ContextKV(ctx, xlog.ERROR, "tool", name, "err", err.Error())
				out = append(out, fmt.Sprintf("Error executing tool %s: %v", name, err))
				result = fmt.Sprintf("error: %v", err)
			} else {
				if a.cfg.Callback != nil {
					a.cfg.Callback.OnToolEnd(ctx, tool, input, result)
				}
				out = append(out, fmt.Sprintf("[Calling tool %s with args %s]", name, input))
			}

			msgs = append(msgs, llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
				ToolCallID: tc.ID,
				Name:       name,
				Content:    result,
			}))
		}
	}

	// Carry the full exchange, minus the system instruction, into the next
	// query.
	a.history = append([]llms.Message{}, msgs[1:]...)
	if finalText != "" {
		a.history = append(a.history, llms.MessageFromTextParts(llms.RoleAI, finalText))
	}
	final := strings.Join(out, "\n")
	a.record(ctx, query, final)
	return final, nil
}

// ResetHistory drops the conversation carried across queries.
func (a *NativeAssistant) ResetHistory() {
	a.history = nil
}

// generate calls the model with the tools attached, retrying when the
// response carries no choices.
func (a *NativeAssistant) generate(ctx context.Context, msgs []llms.Message) (*llms.ContentResponse, error) {
	for attempt := 0; attempt < DefaultMaxRetries; attempt++ {
		resp, err := a.llm.GenerateContent(ctx, msgs, llms.WithTools(a.llmTools))
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

func (a *NativeAssistant) record(ctx context.Context, query, response string) {
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
