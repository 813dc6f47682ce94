package llmfactory

import (
	"github.com/effective-security/x/configloader"
)

// Config describes the model provider and the chat history backend.
type Config struct {
	Gemini  GeminiConfig  `json:"gemini" yaml:"gemini"`
	History HistoryConfig `json:"history,omitempty" yaml:"history,omitempty"`
}

// GeminiConfig specifies the Gemini provider options. When CloudProject and
// CloudLocation are set the Vertex AI backend is used, otherwise the Gemini
// API with APIKey.
type GeminiConfig struct {
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
	CloudProject  string `json:"cloud_project,omitempty" yaml:"cloud_project,omitempty"`
	CloudLocation string `json:"cloud_location,omitempty" yaml:"cloud_location,omitempty"`
	APIKey        string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// HistoryConfig specifies where the chat history is kept.
type HistoryConfig struct {
	// Backend is "memory" or "redis". Empty means memory.
	Backend string      `json:"backend,omitempty" yaml:"backend,omitempty"`
	Redis   RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// RedisConfig specifies the Redis connection for the history backend.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// LoadConfig from file. Environment variables in the file are expanded.
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
