// Package llmfactory builds the model and the history store from config.
package llmfactory

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms/gemini"
	"github.com/matheushmfr/gemini-mcp-client/store"
	"github.com/redis/go-redis/v9"
)

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "llmfactory")

// Factory builds models and history stores from the loaded config.
type Factory interface {
	Model(ctx context.Context) (llms.Model, error)
	Store(ctx context.Context) (store.MessageStore, error)
}

// Load reads the config file and returns a factory over it.
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	lock  sync.Mutex
	model llms.Model
}

// New creates a factory over the given config.
func New(cfg *Config) Factory {
	return &factory{
		cfg: cfg,
	}
}

// Model returns the Gemini model built from config, with GOOGLE_CLOUD_PROJECT,
// GOOGLE_CLOUD_LOCATION and GOOGLE_API_KEY as environment fallbacks. The model
// is created once and reused.
func (f *factory) Model(ctx context.Context) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.model != nil {
		return f.model, nil
	}

	cfg := f.cfg.Gemini
	opts := []gemini.Option{
		gemini.WithCloudProject(values.StringsCoalesce(cfg.CloudProject, os.Getenv("GOOGLE_CLOUD_PROJECT"))),
		gemini.WithCloudLocation(values.StringsCoalesce(cfg.CloudLocation, os.Getenv("GOOGLE_CLOUD_LOCATION"))),
	}
	if cfg.APIKey != "" {
		opts = append(opts, gemini.WithAPIKey(cfg.APIKey))
	}
	if cfg.Model != "" {
		opts = append(opts, gemini.WithDefaultModel(cfg.Model))
	}
	if cfg.Temperature != nil {
		opts = append(opts, gemini.WithDefaultTemperature(*cfg.Temperature))
	}
	if cfg.TopP != nil {
		opts = append(opts, gemini.WithDefaultTopP(*cfg.TopP))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, gemini.WithDefaultMaxTokens(cfg.MaxTokens))
	}

	model, err := gemini.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "created_llm",
		"model", model.GetName(),
	)

	f.model = model
	return model, nil
}

// Store returns the history store selected by config.
func (f *factory) Store(ctx context.Context) (store.MessageStore, error) {
	switch backend := strings.ToLower(f.cfg.History.Backend); backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		rc := f.cfg.History.Redis
		if rc.Addr == "" {
			return nil, errors.New("history: redis backend requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.WithMessagef(err, "history: failed to connect to redis at %s", rc.Addr)
		}
		return store.NewRedisStore(client, rc.Prefix), nil
	default:
		return nil, errors.Newf("history: unsupported backend: %s", backend)
	}
}
