package gemini

import (
	"net/http"
	"os"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash-001"

// Options is a set of options for the Gemini client.
type Options struct {
	CloudProject          string
	CloudLocation         string
	APIKey                string
	DefaultModel          string
	DefaultCandidateCount int
	DefaultMaxTokens      int
	DefaultTemperature    float64
	DefaultTopP           float64
	DefaultTopK           int
	HTTPClient            *http.Client
}

// DefaultOptions returns the default client options.
func DefaultOptions() Options {
	return Options{
		DefaultModel:          DefaultModel,
		DefaultCandidateCount: 1,
		DefaultMaxTokens:      8192,
		DefaultTemperature:    0,
		DefaultTopP:           0.95,
	}
}

// EnsureAuthPresent attempts to ensure that the client has authentication
// information. If it does not, it will attempt to use the GOOGLE_API_KEY
// environment variable.
func (o *Options) EnsureAuthPresent() {
	if o.APIKey == "" && o.CloudProject == "" {
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			WithAPIKey(key)(o)
		}
	}
}

// Option configures the Gemini client.
type Option func(*Options)

// WithAPIKey passes the API KEY (token) to the client.
func WithAPIKey(apiKey string) Option {
	return func(opts *Options) {
		opts.APIKey = apiKey
	}
}

// WithCloudProject passes the GCP cloud project name to the client. This
// selects the Vertex AI backend together with WithCloudLocation.
func WithCloudProject(p string) Option {
	return func(opts *Options) {
		opts.CloudProject = p
	}
}

// WithCloudLocation passes the GCP cloud location (region) name to the client.
func WithCloudLocation(l string) Option {
	return func(opts *Options) {
		opts.CloudLocation = l
	}
}

// WithHTTPClient passes a custom HTTP client to make requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = httpClient
	}
}

// WithDefaultModel passes a default content model name to the client. This
// model name is used if not explicitly provided in specific client invocations.
func WithDefaultModel(defaultModel string) Option {
	return func(opts *Options) {
		opts.DefaultModel = defaultModel
	}
}

// WithDefaultCandidateCount sets the candidate count for the model.
func WithDefaultCandidateCount(defaultCandidateCount int) Option {
	return func(opts *Options) {
		opts.DefaultCandidateCount = defaultCandidateCount
	}
}

// WithDefaultMaxTokens sets the max output tokens for the model.
func WithDefaultMaxTokens(maxTokens int) Option {
	return func(opts *Options) {
		opts.DefaultMaxTokens = maxTokens
	}
}

// WithDefaultTemperature sets the default sampling temperature.
func WithDefaultTemperature(temperature float64) Option {
	return func(opts *Options) {
		opts.DefaultTemperature = temperature
	}
}

// WithDefaultTopP sets the default top-p sampling parameter.
func WithDefaultTopP(topP float64) Option {
	return func(opts *Options) {
		opts.DefaultTopP = topP
	}
}

// WithDefaultTopK sets the default top-k sampling parameter.
func WithDefaultTopK(topK int) Option {
	return func(opts *Options) {
		opts.DefaultTopK = topK
	}
}
