package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// Ensure NightArchive implements the interface.
var _ driven.NightArchive = (*NightArchive)(nil)

// Night is the in-memory content of one night directory.
// Only artifacts listed in Present exist; the rest are treated as missing files.
type Night struct {
	Present    domain.ArtifactSet
	Boundaries []time.Time
	Journal    string
	Events     []domain.DiscreteEvent
	Samples    []domain.SensorSample

	// Failures makes reading an artifact return the given error.
	Failures map[domain.Artifact]error
}

// NightArchive is an in-memory implementation of driven.NightArchive.
type NightArchive struct {
	mu     sync.RWMutex
	nights map[string]Night
	reads  map[string]int
}

// NewNightArchive creates an empty in-memory archive.
func NewNightArchive() *NightArchive {
	return &NightArchive{
		nights: make(map[string]Night),
		reads:  make(map[string]int),
	}
}

// Put adds or replaces an entry. The name need not be a valid night.
func (a *NightArchive) Put(name string, night Night) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nights[name] = night
}

// Reads returns how many artifact lookups touched an entry.
func (a *NightArchive) Reads(name string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reads[name]
}

// Root returns a marker in place of a directory.
func (a *NightArchive) Root() string {
	return ":memory:"
}

// Entries lists every entry name in sorted order.
func (a *NightArchive) Entries(_ context.Context) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.nights))
	for name := range a.nights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Has reports whether an entry holds an artifact.
func (a *NightArchive) Has(_ context.Context, name string, artifact domain.Artifact) (bool, error) {
	night, ok := a.touch(name)
	if !ok {
		return false, nil
	}
	return night.Present.Has(artifact), nil
}

// Boundaries returns the ground truth timestamps.
func (a *NightArchive) Boundaries(_ context.Context, name string) ([]time.Time, error) {
	night, err := a.read(name, domain.ArtifactGroundTruth)
	if err != nil {
		return nil, err
	}
	return append([]time.Time(nil), night.Boundaries...), nil
}

// Journal returns the journal text.
func (a *NightArchive) Journal(_ context.Context, name string) (string, error) {
	night, err := a.read(name, domain.ArtifactJournal)
	if err != nil {
		return "", err
	}
	return night.Journal, nil
}

// Events returns a copy of the event log.
func (a *NightArchive) Events(_ context.Context, name string) ([]domain.DiscreteEvent, error) {
	night, err := a.read(name, domain.ArtifactEventLog)
	if err != nil {
		return nil, err
	}
	return append([]domain.DiscreteEvent(nil), night.Events...), nil
}

// Samples returns a copy of the sensor log.
func (a *NightArchive) Samples(_ context.Context, name string) ([]domain.SensorSample, error) {
	night, err := a.read(name, domain.ArtifactSensorLog)
	if err != nil {
		return nil, err
	}
	return append([]domain.SensorSample(nil), night.Samples...), nil
}

func (a *NightArchive) touch(name string) (Night, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads[name]++
	night, ok := a.nights[name]
	return night, ok
}

func (a *NightArchive) read(name string, artifact domain.Artifact) (Night, error) {
	night, ok := a.touch(name)
	if !ok || !night.Present.Has(artifact) {
		return Night{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, name, artifact.FileName())
	}
	if err := night.Failures[artifact]; err != nil {
		return Night{}, err
	}
	return night, nil
}
