package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// NightArchive gives read-only access to the per-night files deposited by the
// ingestion receiver. Files may be appended to while they are read; a row that
// cannot be parsed is reported as an error, never silently dropped.
type NightArchive interface {
	// Root returns a description of where the archive lives.
	Root() string

	// Entries lists candidate night names. Entries that do not look like
	// nights may be included; the loader filters them.
	Entries(ctx context.Context) ([]string, error)

	// Has reports whether a night has the given artifact.
	Has(ctx context.Context, night string, artifact domain.Artifact) (bool, error)

	// Boundaries returns the ground truth timestamps in file order.
	// Errors wrap domain.ErrUnparseableTimestamp for bad rows.
	Boundaries(ctx context.Context, night string) ([]time.Time, error)

	// Journal returns the journal text.
	Journal(ctx context.Context, night string) (string, error)

	// Events returns the discrete event log in file order.
	Events(ctx context.Context, night string) ([]domain.DiscreteEvent, error)

	// Samples returns the sensor log in file order.
	// Errors wrap domain.ErrUnparseableValue for bad numeric fields.
	Samples(ctx context.Context, night string) ([]domain.SensorSample, error)
}
