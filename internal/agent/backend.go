// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/report-engine/pkg/types"
)

// NewBackend constructs the Completer selected by cfg.Provider. The
// anthropic provider is the default when none is configured.
func NewBackend(cfg types.AIConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", providerOrDefault(cfg.Provider))
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("no model configured")
	}

	switch providerOrDefault(cfg.Provider) {
	case types.ProviderAnthropic:
		client := http.DefaultClient
		if cfg.Timeout > 0 {
			client = &http.Client{Timeout: cfg.Timeout}
		}
		return &AnthropicBackend{APIKey: cfg.APIKey, Model: cfg.Model, Client: client}, nil
	case types.ProviderOpenAI:
		return &OpenAIBackend{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func providerOrDefault(p types.AIProvider) types.AIProvider {
	if p == "" {
		return types.ProviderAnthropic
	}
	return p
}
