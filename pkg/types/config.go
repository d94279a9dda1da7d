package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "report-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIProvider selects the generation backend.
type AIProvider string

const (
	ProviderAnthropic AIProvider = "anthropic"
	ProviderOpenAI    AIProvider = "openai"
)

// AIConfig holds settings for the generation service.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: anthropic or openai.
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint, for OpenAI-compatible gateways.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SourcesConfig holds settings for the document loader.
type SourcesConfig struct {
	// Dir is the directory of source documents (PDF, Markdown, plain text).
	Dir string `json:"dir" yaml:"dir"`
}

// DraftConfig holds settings for the drafting pipeline.
type DraftConfig struct {
	AIConfig `yaml:",inline"`

	// OutputDir is the directory where finished reports are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// HTML additionally renders the report to an HTML file.
	HTML bool `json:"html" yaml:"html"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Dir is the directory containing the history database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Sources SourcesConfig `json:"sources" yaml:"sources"`
	Draft   DraftConfig   `json:"draft" yaml:"draft"`
	History HistoryConfig `json:"history" yaml:"history"`
}
