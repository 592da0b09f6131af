package analyses

import (
	"fmt"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// Names of the built-in analyses.
const (
	NameJournal       = "journal"
	NameEventDensity  = "event-density"
	NameSleepOffset   = "sleep-offset"
	NameWakeOffset    = "wake-offset"
	NameEventLatency  = "event-latency"
	NameSensorLatency = "sensor-latency"
	NameEventTimeline = "event-timeline"
)

// RegisterDefaults registers all built-in analyses.
func RegisterDefaults(r *Registry) {
	r.Register(NameJournal, func(cfg domain.RunConfig) (driven.Analysis, error) {
		return NewJournal(cfg.Keywords), nil
	})
	r.Register(NameEventDensity, func(cfg domain.RunConfig) (driven.Analysis, error) {
		if !cfg.DensityWindow.IsValid() {
			return nil, fmt.Errorf("%w: density window %q", domain.ErrInvalidInput, cfg.DensityWindow)
		}
		return NewEventDensity(cfg.DensityWindow), nil
	})
	r.Register(NameSleepOffset, func(domain.RunConfig) (driven.Analysis, error) {
		return NewSleepOffset(), nil
	})
	r.Register(NameWakeOffset, func(domain.RunConfig) (driven.Analysis, error) {
		return NewWakeOffset(), nil
	})
	r.Register(NameEventLatency, func(domain.RunConfig) (driven.Analysis, error) {
		return NewEventLatency(), nil
	})
	r.Register(NameSensorLatency, func(domain.RunConfig) (driven.Analysis, error) {
		return NewSensorLatency(), nil
	})
	r.Register(NameEventTimeline, func(cfg domain.RunConfig) (driven.Analysis, error) {
		if cfg.TimelinePadding < 0 {
			return nil, fmt.Errorf("%w: negative timeline padding", domain.ErrInvalidInput)
		}
		return NewEventTimeline(cfg.TimelinePadding), nil
	})
}

// Defaults builds every built-in analysis for a configuration.
func Defaults(cfg domain.RunConfig) ([]driven.Analysis, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildAll(cfg)
}
