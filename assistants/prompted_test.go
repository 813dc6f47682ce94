package assistants_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/matheushmfr/gemini-mcp-client/assistants"
	"github.com/matheushmfr/gemini-mcp-client/chatmodel"
	"github.com/matheushmfr/gemini-mcp-client/mocks/mockllms"
	"github.com/matheushmfr/gemini-mcp-client/mocks/mocktools"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"github.com/matheushmfr/gemini-mcp-client/store"
	"github.com/matheushmfr/gemini-mcp-client/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: text},
		},
	}
}

func newWeatherTool(ctrl *gomock.Controller) *mocktools.MockITool {
	tool := mocktools.NewMockITool(ctrl)
	tool.EXPECT().Name().Return("get_weather").AnyTimes()
	tool.EXPECT().Description().Return("Returns the current weather for a city.").AnyTimes()
	tool.EXPECT().Parameters().Return(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
		},
	}).AnyTimes()
	return tool
}

func Test_PromptedAssistant_DirectAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	tool := newWeatherTool(ctrl)

	llmMock := mockllms.NewMockModel(ctrl)
	llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llms.Message, _ ...llms.CallOption) (*llms.ContentResponse, error) {
			require.Len(t, messages, 1)
			prompt := messages[0].GetText()
			// The prompt carries the tool catalog and the query.
			assert.Contains(t, prompt, "get_weather")
			assert.Contains(t, prompt, "<tool_call>")
			assert.Contains(t, prompt, "User question: What is the capital of France?")
			return textResponse("The capital of France is Paris."), nil
		})

	assistant, err := assistants.NewPromptedAssistant(llmMock, []tools.ITool{tool})
	require.NoError(t, err)

	res, err := assistant.ProcessQuery(ctx, "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "The capital of France is Paris.", res)
}

func Test_PromptedAssistant_ToolCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat1"))

	tool := newWeatherTool(ctrl)
	tool.EXPECT().Call(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input string) (string, error) {
			assert.JSONEq(t, `{"city":"Austin"}`, input)
			return "72F and sunny", nil
		})

	llmMock := mockllms.NewMockModel(ctrl)
	first := llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(textResponse(`<tool_call>{"name": "get_weather", "input": {"city": "Austin"}}</tool_call>`), nil)
	llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llms.Message, _ ...llms.CallOption) (*llms.ContentResponse, error) {
			prompt := messages[0].GetText()
			assert.Contains(t, prompt, "You previously used the tool get_weather")
			assert.Contains(t, prompt, "72F and sunny")
			return textResponse("It is 72F and sunny in Austin."), nil
		}).After(first)

	history := store.NewMemoryStore()
	assistant, err := assistants.NewPromptedAssistant(llmMock, []tools.ITool{tool},
		assistants.WithStore(history))
	require.NoError(t, err)

	res, err := assistant.ProcessQuery(ctx, "Weather in Austin?")
	require.NoError(t, err)
	assert.Contains(t, res, "[Calling tool get_weather with args ")
	assert.Contains(t, res, "It is 72F and sunny in Austin.")

	msgs := history.Messages(ctx)
	require.Len(t, msgs, 2)
	assert.Equal(t, llms.RoleHuman, msgs[0].Role)
	assert.Equal(t, "Weather in Austin?", msgs[0].GetText())
	assert.Equal(t, llms.RoleAI, msgs[1].Role)
}

func Test_PromptedAssistant_UnknownTool(t *testing.T) {
	ctrl := gomock.NewController(t)

	tool := newWeatherTool(ctrl)

	llmMock := mockllms.NewMockModel(ctrl)
	llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(textResponse(`<tool_call>{"name": "get_stock_price", "input": {}}</tool_call>`), nil)

	assistant, err := assistants.NewPromptedAssistant(llmMock, []tools.ITool{tool})
	require.NoError(t, err)

	res, err := assistant.ProcessQuery(context.Background(), "Price of ACME?")
	require.NoError(t, err)
	assert.Contains(t, res, "Error executing tool get_stock_price: tool not found")
}

func Test_PromptedAssistant_ToolError(t *testing.T) {
	ctrl := gomock.NewController(t)

	tool := newWeatherTool(ctrl)
	tool.EXPECT().Call(gomock.Any(), gomock.Any()).
		Return("", errors.New("server unavailable"))

	llmMock := mockllms.NewMockModel(ctrl)
	llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(textResponse(`<tool_call>{"name": "get_weather", "input": {"city": "Austin"}}</tool_call>`), nil)

	assistant, err := assistants.NewPromptedAssistant(llmMock, []tools.ITool{tool})
	require.NoError(t, err)

	// The tool failure is reported in the output, the query does not fail.
	res, err := assistant.ProcessQuery(context.Background(), "Weather in Austin?")
	require.NoError(t, err)
	assert.Contains(t, res, "Error executing tool get_weather: server unavailable")
}

func Test_PromptedAssistant_EmptyResponseRetry(t *testing.T) {
	ctrl := gomock.NewController(t)

	tool := newWeatherTool(ctrl)

	llmMock := mockllms.NewMockModel(ctrl)
	llmMock.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(&llms.ContentResponse{}, nil).
		Times(assistants.DefaultMaxRetries)

	assistant, err := assistants.NewPromptedAssistant(llmMock, []tools.ITool{tool})
	require.NoError(t, err)

	_, err = assistant.ProcessQuery(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func Test_PromptedAssistant_RequiresModel(t *testing.T) {
	_, err := assistants.NewPromptedAssistant(nil, nil)
	assert.EqualError(t, err, "llm model is required")
}
