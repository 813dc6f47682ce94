package store

import (
	"context"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/matheushmfr/gemini-mcp-client/chatmodel"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"github.com/redis/go-redis/v9"
)

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "store")

// The redis store implements the MessageStore interface using Redis as the
// backend, so chat history survives client restarts. Messages are kept in a
// Redis list per chat:
// - `/<prefix>/chatstore/messages/<chatID>`

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a MessageStore backed by the given Redis client.
func NewRedisStore(client *redis.Client, prefix string) MessageStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) getRedisMessagesKey(chatID string) string {
	return path.Join(m.prefix, "chatstore", "messages", chatID)
}

func (m *redisStore) Messages(ctx context.Context) []llms.Message {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return nil
	}

	key := m.getRedisMessagesKey(chatID)
	data, err := m.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "LRange", "key", key, "err", err.Error())
		return nil
	}

	var messages []llms.Message
	for _, item := range data {
		msg, err := llms.UnmarshalMessage([]byte(item))
		if err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal_message", "err", err.Error())
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

func (m *redisStore) Add(ctx context.Context, msgs ...llms.Message) error {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return errors.New("no chat ID in context")
	}

	key := m.getRedisMessagesKey(chatID)
	for _, msg := range msgs {
		data, err := llms.MarshalMessage(msg)
		if err != nil {
			return err
		}
		if err := m.client.RPush(ctx, key, string(data)).Err(); err != nil {
			return errors.Wrap(err, "failed to store message")
		}
	}
	return nil
}

func (m *redisStore) Reset(ctx context.Context) error {
	chatID := chatmodel.GetChatID(ctx)
	if chatID == "" {
		return errors.New("no chat ID in context")
	}

	if err := m.client.Del(ctx, m.getRedisMessagesKey(chatID)).Err(); err != nil {
		return errors.Wrap(err, "failed to reset chat history")
	}
	return nil
}
