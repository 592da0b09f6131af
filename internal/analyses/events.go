package analyses

import (
	"time"

	"github.com/custodia-labs/slumber-cli/internal/alignment"
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// EventDensity counts events inside each night's sleep window.
type EventDensity struct {
	info
	policy domain.WindowPolicy
}

// NewEventDensity creates the event density analysis.
// The policy decides whether the window opens at bed time or at sleep onset.
func NewEventDensity(policy domain.WindowPolicy) *EventDensity {
	return &EventDensity{
		info: info{
			name:        NameEventDensity,
			description: "Events per night between sleep (" + policy.Description() + ") and wake",
			requires:    withLog(domain.ArtifactEventLog),
		},
		policy: policy,
	}
}

// Observe records the number of events in the window.
// Nights with an empty event log have no count.
func (d *EventDensity) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	if len(night.Events) == 0 {
		return
	}
	w, ok := alignment.SleepWindow(night, d.policy)
	if !ok {
		return
	}
	rec.Record(domain.MetricEvents, night.Date, float64(alignment.CountEvents(night.Events, w)))
}

// Summarize reports the event count series and its mean.
func (d *EventDensity) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	report.Series = append(report.Series, summarize(series, domain.MetricEvents))
	return nil
}

// EventLatency relates how restless a night was to how long sleep took to come.
type EventLatency struct {
	info
}

// NewEventLatency creates the event/latency correlation analysis.
func NewEventLatency() *EventLatency {
	return &EventLatency{info: info{
		name:        NameEventLatency,
		description: "Correlation of events between bed and wake with onset latency",
		requires:    withLog(domain.ArtifactEventLog),
	}}
}

// Observe records the bed-to-wake event count and the latency as a pair.
func (e *EventLatency) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	if !night.LatencyMinutes.Valid || len(night.Events) == 0 {
		return
	}
	w := alignment.Window{Start: alignment.TrueSleepAtBed(night), End: night.WakeTime}
	rec.Record(domain.MetricEvents, night.Date, float64(alignment.CountEvents(night.Events, w)))
	rec.Record(domain.MetricLatency, night.Date, night.LatencyMinutes.Float64)
}

// Summarize reports both series and their correlation.
func (e *EventLatency) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	report.Series = append(report.Series,
		summarize(series, domain.MetricEvents),
		summarize(series, domain.MetricLatency))

	c, err := correlate(series, domain.MetricEvents, domain.MetricLatency)
	if err != nil {
		return err
	}
	report.Correlations = append(report.Correlations, c)
	return nil
}

// EventTimeline counts each kind of event around the night.
type EventTimeline struct {
	info
	padding time.Duration
}

// NewEventTimeline creates the per-label event analysis.
// The window runs from bed time minus padding to wake time plus padding.
func NewEventTimeline(padding time.Duration) *EventTimeline {
	return &EventTimeline{
		info: info{
			name:        NameEventTimeline,
			description: "Events per label from bed to wake, padded by " + padding.String(),
			requires:    withLog(domain.ArtifactEventLog),
		},
		padding: padding,
	}
}

// Observe records a count for every label seen in the padded window.
// A label absent from a night has no point for that night.
func (e *EventTimeline) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	w := alignment.Window{Start: night.BedTime, End: night.WakeTime}.Pad(e.padding)

	counts := make(map[string]int)
	for _, ev := range alignment.EventsBetween(night.Events, w) {
		counts[ev.Label]++
	}
	for label, n := range counts {
		rec.Record(domain.TimelineMetric(label), night.Date, float64(n))
	}
}

// Summarize reports one series per label, in label order.
func (e *EventTimeline) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	for _, metric := range series.Metrics() {
		report.Series = append(report.Series, summarize(series, metric))
	}
	return nil
}
