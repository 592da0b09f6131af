package analyses

import (
	"time"

	"github.com/custodia-labs/slumber-cli/internal/alignment"
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// Offset measures how far the nearest device event lies from a
// self-reported boundary.
type Offset struct {
	info
	metric    string
	reference func(*domain.NightRecord) (time.Time, bool)
}

// NewSleepOffset compares the nearest event with bed time plus latency.
func NewSleepOffset() *Offset {
	return &Offset{
		info: info{
			name:        NameSleepOffset,
			description: "Minutes between reported sleep onset and the nearest event",
			requires:    withLog(domain.ArtifactEventLog),
		},
		metric:    domain.MetricSleepOffset,
		reference: alignment.TrueSleepWithLatency,
	}
}

// NewWakeOffset compares the nearest event with wake time.
func NewWakeOffset() *Offset {
	return &Offset{
		info: info{
			name:        NameWakeOffset,
			description: "Minutes between reported wake time and the nearest event",
			requires:    withLog(domain.ArtifactEventLog),
		},
		metric: domain.MetricWakeOffset,
		reference: func(n *domain.NightRecord) (time.Time, bool) {
			return n.WakeTime, true
		},
	}
}

// Observe records the absolute offset in minutes.
func (o *Offset) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	ref, ok := o.reference(night)
	if !ok {
		return
	}
	ev, ok := alignment.NearestEvent(night.Events, ref)
	if !ok {
		return
	}
	rec.Record(o.metric, night.Date, alignment.OffsetMinutes(ev.Timestamp, ref))
}

// Summarize reports the offset series and its mean.
func (o *Offset) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	report.Series = append(report.Series, summarize(series, o.metric))
	return nil
}
