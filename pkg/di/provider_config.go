package di

import "github.com/goliatone/gitscm/pkg/config"

// provideConfigWithDefaults returns the built-in defaults. Precedence between
// flags, environment and file is resolved by pkg/config before the container
// is built; the DI layer only fills in what callers did not supply.
func provideConfigWithDefaults() (*config.Config, error) {
	cfg := config.Default()
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
