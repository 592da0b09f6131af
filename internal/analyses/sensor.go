package analyses

import (
	"github.com/custodia-labs/slumber-cli/internal/alignment"
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// SensorLatency relates the room's conditions while falling asleep to latency.
type SensorLatency struct {
	info
}

// NewSensorLatency creates the sensor/latency correlation analysis.
func NewSensorLatency() *SensorLatency {
	return &SensorLatency{info: info{
		name:        NameSensorLatency,
		description: "Correlation of room conditions from bed to sleep onset with latency",
		requires:    withLog(domain.ArtifactSensorLog),
	}}
}

// Observe records each channel's average over [bed, bed + latency].
// A channel with no usable reading that night is not recorded.
func (s *SensorLatency) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	w, ok := alignment.OnsetWindow(night)
	if !ok {
		return
	}
	averages, ok := alignment.AverageSensors(night.Samples, w)
	if !ok {
		return
	}
	for _, ch := range domain.Channels() {
		if v, ok := averages[ch]; ok {
			rec.Record(domain.SensorMetric(ch), night.Date, v)
		}
	}
	rec.Record(domain.MetricLatency, night.Date, night.LatencyMinutes.Float64)
}

// Summarize reports every channel series and its correlation with latency.
func (s *SensorLatency) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	report.Series = append(report.Series, summarize(series, domain.MetricLatency))
	for _, ch := range domain.Channels() {
		metric := domain.SensorMetric(ch)
		report.Series = append(report.Series, summarize(series, metric))

		c, err := correlate(series, metric, domain.MetricLatency)
		if err != nil {
			return err
		}
		report.Correlations = append(report.Correlations, c)
	}
	return nil
}
