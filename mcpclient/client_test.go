package mcpclient_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/matheushmfr/gemini-mcp-client/mcpclient"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weatherArgs struct {
	City string `json:"city" jsonschema:"the city to report the weather for"`
}

func startTestServer(t *testing.T) *mcpclient.Client {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "weather", Version: "1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather",
		Description: "Returns the current weather for a city.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, args weatherArgs) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("72F and sunny in %s", args.City)},
			},
		}, nil, nil
	})
	mcp.AddTool(server, &mcp.Tool{
		Name:        "always_fails",
		Description: "Fails every time.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "out of service"},
			},
		}, nil, nil
	})

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client, err := mcpclient.Connect(ctx, mcpclient.WithTransport(clientTransport))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})
	return client
}

func Test_Client_ListTools(t *testing.T) {
	client := startTestServer(t)

	infos, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)

	byName := map[string]mcpclient.ToolInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}

	weather, ok := byName["get_weather"]
	require.True(t, ok)
	assert.Equal(t, "Returns the current weather for a city.", weather.Description)
	require.NotNil(t, weather.InputSchema)
	props, ok := weather.InputSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "city")
}

func Test_Client_CallTool(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	res, err := client.CallTool(ctx, "get_weather", map[string]any{"city": "Austin"})
	require.NoError(t, err)
	assert.Equal(t, "72F and sunny in Austin", res)
}

func Test_Client_CallTool_ServerError(t *testing.T) {
	client := startTestServer(t)

	_, err := client.CallTool(context.Background(), "always_fails", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tool "always_fails" failed: out of service`)
}

func Test_Connect_RequiresTarget(t *testing.T) {
	_, err := mcpclient.Connect(context.Background())
	assert.EqualError(t, err, "either a server script or a transport is required")
}

func Test_CommandForScript(t *testing.T) {
	cmd, err := mcpclient.CommandForScript("server.py")
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "python")

	cmd, err = mcpclient.CommandForScript("server.js")
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "node")

	_, err = mcpclient.CommandForScript("server.sh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server script must be a .py or .js file")
}
