package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for run configuration storage.
const (
	keyDataRoot        = "data.root"
	keyDataExclude     = "data.exclude"
	keyJournalKeywords = "journal.keywords"
	keyDensityWindow   = "analysis.density_window"
	keyTimelinePadding = "analysis.timeline_padding_minutes"
)

// ConfigService reads and writes the run configuration.
type ConfigService struct {
	configStore driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// Get returns the stored configuration with defaults for anything unset.
// Unrecognised values fall back to defaults.
func (s *ConfigService) Get() (*domain.RunConfig, error) {
	cfg := domain.DefaultRunConfig()

	if root := s.configStore.GetString(keyDataRoot); root != "" {
		cfg.Root = root
	}
	if exclude := s.configStore.GetStringSlice(keyDataExclude); exclude != nil {
		cfg.Exclude = exclude
	}
	if keywords := s.configStore.GetStringSlice(keyJournalKeywords); keywords != nil {
		cfg.Keywords = keywords
	}
	if policy := domain.WindowPolicy(s.configStore.GetString(keyDensityWindow)); policy.IsValid() {
		cfg.DensityWindow = policy
	}
	if _, ok := s.configStore.Get(keyTimelinePadding); ok {
		if minutes := s.configStore.GetInt(keyTimelinePadding); minutes >= 0 {
			cfg.TimelinePadding = time.Duration(minutes) * time.Minute
		}
	}

	return &cfg, nil
}

// Save persists a configuration.
func (s *ConfigService) Save(cfg *domain.RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyDataRoot, cfg.Root); err != nil {
		return fmt.Errorf("save data root: %w", err)
	}
	if err := s.configStore.Set(keyDataExclude, nonNil(cfg.Exclude)); err != nil {
		return fmt.Errorf("save exclusions: %w", err)
	}
	if err := s.configStore.Set(keyJournalKeywords, nonNil(cfg.Keywords)); err != nil {
		return fmt.Errorf("save keywords: %w", err)
	}
	if err := s.configStore.Set(keyDensityWindow, cfg.DensityWindow.String()); err != nil {
		return fmt.Errorf("save density window: %w", err)
	}
	if err := s.configStore.Set(keyTimelinePadding, int64(cfg.TimelinePadding/time.Minute)); err != nil {
		return fmt.Errorf("save timeline padding: %w", err)
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("write config %s: %w", s.configStore.Path(), err)
	}
	return nil
}

// GetDefaults returns the default configuration.
func (s *ConfigService) GetDefaults() domain.RunConfig {
	return domain.DefaultRunConfig()
}

// Path returns where the configuration is stored.
func (s *ConfigService) Path() string {
	return s.configStore.Path()
}

// nonNil keeps empty lists as empty arrays in TOML rather than dropping them.
func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
