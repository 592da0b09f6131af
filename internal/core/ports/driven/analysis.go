package driven

import (
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// Analysis derives per-night metrics and summarises them across the batch.
// The analysis service feeds it every usable night, then asks for a report.
type Analysis interface {
	// Name returns the analysis identifier used on the command line.
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Requires returns the artifacts a night must have to be observed.
	Requires() domain.ArtifactSet

	// Observe derives one night's values and records them.
	// A value the night cannot support is simply not recorded.
	Observe(night *domain.NightRecord, rec MetricRecorder)

	// Summarize computes cross-night results from what was recorded.
	Summarize(series SeriesReader, report *domain.AnalysisReport) error
}

// MetricRecorder accumulates per-night values for one analysis.
type MetricRecorder interface {
	// Record stores a night's value of a metric. A second value for the
	// same night and metric replaces the first.
	Record(metric string, night time.Time, value float64)

	// Mention counts one night towards a keyword's mentioned or
	// not-mentioned bucket.
	Mention(keyword string, mentioned bool)
}

// SeriesReader exposes accumulated values in date order.
type SeriesReader interface {
	// Metrics lists recorded metric names in sorted order.
	Metrics() []string

	// Series returns a metric's points sorted by date.
	Series(metric string) domain.Series

	// Pair joins two metrics on the nights present in both.
	Pair(x, y string) domain.SeriesPair

	// Keywords returns keyword tallies in first-mentioned order.
	Keywords() []domain.KeywordTally
}
