package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// WindowPolicy selects which instant opens a night's sleep window.
type WindowPolicy string

// Available window policies.
const (
	// WindowFromBed opens the window at bed time, ignoring latency.
	WindowFromBed WindowPolicy = "bed"

	// WindowFromOnset opens the window at bed time plus sleep onset latency.
	WindowFromOnset WindowPolicy = "onset"
)

// IsValid returns true if the policy is recognised.
func (p WindowPolicy) IsValid() bool {
	return p == WindowFromBed || p == WindowFromOnset
}

// String returns the string representation.
func (p WindowPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p WindowPolicy) Description() string {
	switch p {
	case WindowFromBed:
		return "Bed time"
	case WindowFromOnset:
		return "Bed time + onset latency"
	default:
		return unknownDescription
	}
}

// RunConfig is the explicit configuration of one analysis run.
type RunConfig struct {
	// Root is the directory holding one sub-directory per night.
	Root string

	// Exclude lists night directory names to skip before any file is read.
	Exclude []string

	// Keywords are tallied case-insensitively against each journal.
	Keywords []string

	// DensityWindow opens the event-density window.
	DensityWindow WindowPolicy

	// TimelinePadding widens the event-timeline window on both sides.
	TimelinePadding time.Duration
}

// DefaultRunConfig returns the default run configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Root:            "sleep_data",
		Keywords:        []string{"melatonin", "unisom"},
		DensityWindow:   WindowFromBed,
		TimelinePadding: time.Hour,
	}
}

// IsExcluded reports whether a night is on the exclusion list.
func (c RunConfig) IsExcluded(night string) bool {
	for _, d := range c.Exclude {
		if strings.TrimSpace(d) == night {
			return true
		}
	}
	return false
}

// Validate checks the configuration for errors.
func (c RunConfig) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("%w: data root is required", ErrInvalidInput)
	}
	if !c.DensityWindow.IsValid() {
		return fmt.Errorf("%w: unknown density window %q", ErrInvalidInput, c.DensityWindow)
	}
	if c.TimelinePadding < 0 {
		return fmt.Errorf("%w: timeline padding must not be negative", ErrInvalidInput)
	}
	for _, d := range c.Exclude {
		if _, err := ParseNightDate(strings.TrimSpace(d)); err != nil {
			return fmt.Errorf("%w: exclude entry: %w", ErrInvalidInput, err)
		}
	}
	return nil
}
