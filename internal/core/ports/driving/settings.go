package driving

import "github.com/custodia-labs/slumber-cli/internal/core/domain"

// ConfigService manages the run configuration.
type ConfigService interface {
	// Get returns the effective configuration, defaults filled in.
	Get() (*domain.RunConfig, error)

	// Save persists a configuration.
	Save(cfg *domain.RunConfig) error

	// GetDefaults returns the default configuration.
	GetDefaults() domain.RunConfig

	// Path returns where the configuration is stored.
	Path() string
}
