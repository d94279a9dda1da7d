package agent

import "github.com/pdiddy/report-engine/pkg/types"

// testAIConfig builds an AIConfig for backend construction tests.
func testAIConfig(provider types.AIProvider, apiKey, model string) types.AIConfig {
	return types.AIConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}
