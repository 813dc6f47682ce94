// Package gemini implements the Gemini chat model over the google.golang.org/genai SDK.
// The Vertex AI backend is used when a cloud project and location are
// configured, the Gemini API backend otherwise.
package gemini

import (
	"context"

	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"google.golang.org/genai"
)

// Gemini is a type that represents a Gemini API client.
type Gemini struct {
	client *genai.Client
	opts   Options
}

var _ llms.Model = (*Gemini)(nil)

// New creates a new Gemini client.
func New(ctx context.Context, opts ...Option) (*Gemini, error) {
	clientOptions := DefaultOptions()
	for _, opt := range opts {
		opt(&clientOptions)
	}
	clientOptions.EnsureAuthPresent()

	backend := genai.BackendGeminiAPI
	if clientOptions.CloudProject != "" && clientOptions.CloudLocation != "" {
		backend = genai.BackendVertexAI
	}

	cfg := &genai.ClientConfig{
		Project:    clientOptions.CloudProject,
		Location:   clientOptions.CloudLocation,
		APIKey:     clientOptions.APIKey,
		HTTPClient: clientOptions.HTTPClient,
		Backend:    backend,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Gemini{
		client: client,
		opts:   clientOptions,
	}, nil
}
