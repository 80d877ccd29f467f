package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/config"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func providerNames() []string {
	providers := buildProviders()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}

func TestBuildProvidersOrder(t *testing.T) {
	cfg = &config.Config{}
	cfg.Brave.Key = "bsk"
	cfg.Tavily.Key = "tvly"
	cfg.GoogleCSE.Key = "gk"
	cfg.GoogleCSE.CX = "cx"

	// Failover order is fixed: a DDG bot-challenge hands off to Brave first.
	assert.Equal(t, []string{"duckduckgo", "brave", "tavily", "google"}, providerNames())
}

func TestBuildProvidersCredentialGating(t *testing.T) {
	cfg = &config.Config{}
	assert.Equal(t, []string{"duckduckgo"}, providerNames())

	cfg.Tavily.Key = "tvly"
	assert.Equal(t, []string{"duckduckgo", "tavily"}, providerNames())

	// Google CSE needs both the key and the engine ID.
	cfg.GoogleCSE.Key = "gk"
	assert.Equal(t, []string{"duckduckgo", "tavily"}, providerNames())
	cfg.GoogleCSE.CX = "cx"
	assert.Equal(t, []string{"duckduckgo", "tavily", "google"}, providerNames())
}
