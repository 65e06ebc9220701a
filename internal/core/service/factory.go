package service

import (
	"openshelf/internal/adapters/catalog"
	"openshelf/internal/adapters/util"
	"openshelf/internal/config"
	"openshelf/internal/core/domain/ports"
)

// CreateCatalog builds the client for the configured (writable) catalog.
func CreateCatalog(cfg *config.Config) ports.Catalog {
	return newClient(cfg, cfg.BaseURL)
}

// CreateSourceCatalog builds the client imports read from. Falls back to
// the main catalog when no separate source is configured.
func CreateSourceCatalog(cfg *config.Config) ports.Catalog {
	base := cfg.SourceBaseURL
	if base == "" {
		base = cfg.BaseURL
	}
	return newClient(cfg, base)
}

func newClient(cfg *config.Config, baseURL string) *catalog.Client {
	client := catalog.NewClient(baseURL, cfg.LogLevel)
	policy := util.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.MaxAttempts
	client.SetRetryPolicy(policy)
	return client
}
