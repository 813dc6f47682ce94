package chatmodel_test

import (
	"context"
	"testing"

	"github.com/matheushmfr/gemini-mcp-client/chatmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ChatContext(t *testing.T) {
	chatCtx := chatmodel.NewChatContext("chat1")
	assert.Equal(t, "chat1", chatCtx.GetChatID())

	_, ok := chatCtx.GetMetadata("key")
	assert.False(t, ok)

	chatCtx.SetMetadata("key", "value")
	val, ok := chatCtx.GetMetadata("key")
	require.True(t, ok)
	assert.Equal(t, "value", val)
}

func Test_ChatContext_GeneratedID(t *testing.T) {
	c1 := chatmodel.NewChatContext("")
	c2 := chatmodel.NewChatContext("")
	assert.NotEmpty(t, c1.GetChatID())
	assert.NotEqual(t, c1.GetChatID(), c2.GetChatID())
}

func Test_ContextPlumbing(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, chatmodel.GetChatContext(ctx))
	assert.Empty(t, chatmodel.GetChatID(ctx))

	chatCtx := chatmodel.NewChatContext("chat1")
	ctx = chatmodel.WithChatContext(ctx, chatCtx)
	assert.Equal(t, chatCtx, chatmodel.GetChatContext(ctx))
	assert.Equal(t, "chat1", chatmodel.GetChatID(ctx))
}
