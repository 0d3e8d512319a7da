package cli

import (
	"fmt"

	"github.com/redtime-cli/redtime/internal/catalog"
	"github.com/redtime-cli/redtime/internal/config"
	"github.com/redtime-cli/redtime/internal/redmine"
)

// newCatalogSource builds the Redmine-backed catalog source, wrapped in the
// TTL file cache.
func newCatalogSource(configPath, cachePath string) (*catalog.Cached, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []redmine.Option
	switch {
	case cfg.APIKey != "":
		key, err := cfg.APIKeyPlain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode api_key: %w", err)
		}
		opts = append(opts, redmine.WithAPIKey(key))
	case cfg.Username != "":
		password, err := cfg.PasswordPlain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode password: %w", err)
		}
		opts = append(opts, redmine.WithBasicAuth(cfg.Username, password))
	}

	client := redmine.New(cfg.APIURL, opts...)
	return catalog.NewCached(client, cachePath), nil
}
