package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slumber-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/slumber-cli/internal/analyses"
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

func newAnalysisService(t *testing.T, archive *memory.NightArchive, cfg domain.RunConfig) *AnalysisService {
	t.Helper()
	all, err := analyses.Defaults(cfg)
	require.NoError(t, err)
	svc := NewAnalysisService(archive, cfg, all...)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalysisService_Available(t *testing.T) {
	svc := newAnalysisService(t, memory.NewNightArchive(), domain.DefaultRunConfig())

	infos := svc.Available()

	require.Len(t, infos, 7)
	assert.Equal(t, analyses.NameJournal, infos[0].Name)
	assert.Equal(t, journalOnly, infos[0].Requires)
	assert.NotEmpty(t, infos[0].Description)
}

func TestAnalysisService_Run_EndToEnd(t *testing.T) {
	archive := memory.NewNightArchive()
	archive.Put("2025-06-01", memory.Night{
		Present:    withEvents,
		Boundaries: []time.Time{at(1, 23, 0), at(1, 31, 0)},
		Journal:    "Sleep Onset Latency: 45\nSleep Quality: 6\nTook melatonin.",
		Events:     []domain.DiscreteEvent{{Timestamp: at(1, 23, 30), Label: "movement"}},
	})

	svc := newAnalysisService(t, archive, domain.DefaultRunConfig())
	report, err := svc.Run(context.Background(),
		analyses.NameJournal, analyses.NameEventDensity, analyses.NameSleepOffset, analyses.NameSensorLatency)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, ":memory:", report.Root)
	require.Len(t, report.Analyses, 4)

	journal, ok := report.Find(analyses.NameJournal)
	require.True(t, ok)
	assert.Equal(t, 1, journal.Nights)
	assert.Equal(t, 1, journal.Categories.Count(domain.LatencyMildInsomnia))
	assert.Equal(t, 1, journal.Keywords[0].Mentioned)

	density, _ := report.Find(analyses.NameEventDensity)
	events, _ := density.FindSeries(domain.MetricEvents)
	assert.Equal(t, []float64{1}, events.Values())

	// True sleep at 23:45; the only event is at 23:30.
	offset, _ := report.Find(analyses.NameSleepOffset)
	sleep, _ := offset.FindSeries(domain.MetricSleepOffset)
	assert.Equal(t, []float64{15}, sleep.Values())

	// No sensor log: the night is skipped for the sensor analysis only.
	sensor, _ := report.Find(analyses.NameSensorLatency)
	assert.Zero(t, sensor.Nights)
	require.Len(t, sensor.Skipped, 1)
	assert.Equal(t, domain.SkipMissingArtifact, sensor.Skipped[0].Reason)
	assert.Empty(t, density.Skipped)
}

func TestAnalysisService_Run_PreservesRequestOrder(t *testing.T) {
	svc := newAnalysisService(t, memory.NewNightArchive(), domain.DefaultRunConfig())

	report, err := svc.Run(context.Background(),
		analyses.NameSensorLatency, analyses.NameJournal, analyses.NameWakeOffset, analyses.NameJournal)
	require.NoError(t, err)

	var names []string
	for _, a := range report.Analyses {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{analyses.NameSensorLatency, analyses.NameJournal, analyses.NameWakeOffset}, names)
}

func TestAnalysisService_Run_AllByDefault(t *testing.T) {
	svc := newAnalysisService(t, memory.NewNightArchive(), domain.DefaultRunConfig())

	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Analyses, 7)
	assert.Equal(t, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestAnalysisService_Run_UnknownAnalysis(t *testing.T) {
	svc := newAnalysisService(t, memory.NewNightArchive(), domain.DefaultRunConfig())

	_, err := svc.Run(context.Background(), analyses.NameJournal, "histogram")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalysisService_Run_SharesOnePassPerArtifactSet(t *testing.T) {
	archive := memory.NewNightArchive()
	archive.Put("2025-06-01", fullNight(1, "Sleep Onset Latency: 20",
		domain.DiscreteEvent{Timestamp: at(1, 24, 0), Label: "sound"}))
	svc := newAnalysisService(t, archive, domain.DefaultRunConfig())

	_, err := svc.Run(context.Background(),
		analyses.NameEventDensity, analyses.NameSleepOffset, analyses.NameWakeOffset)
	require.NoError(t, err)

	// One Has per required artifact plus one read each, for a single pass.
	assert.Equal(t, 6, archive.Reads("2025-06-01"))
}

func TestAnalysisService_Run_MalformedNightDoesNotAbort(t *testing.T) {
	archive := memory.NewNightArchive()
	archive.Put("2025-06-01", fullNight(1, "Sleep Onset Latency: 20"))
	bad := fullNight(2, "Sleep Onset Latency: 20")
	bad.Failures = map[domain.Artifact]error{domain.ArtifactEventLog: domain.ErrUnparseableTimestamp}
	archive.Put("2025-06-02", bad)
	archive.Put("2025-06-03", fullNight(3, "Sleep Onset Latency: 50"))

	svc := newAnalysisService(t, archive, domain.DefaultRunConfig())
	report, err := svc.Run(context.Background(), analyses.NameJournal, analyses.NameEventLatency)
	require.NoError(t, err)

	journal, _ := report.Find(analyses.NameJournal)
	assert.Equal(t, 3, journal.Nights, "journal needs no event log")

	el, _ := report.Find(analyses.NameEventLatency)
	assert.Equal(t, 2, el.Nights)
	require.Len(t, el.Skipped, 1)
	assert.Equal(t, domain.SkipParseFailure, el.Skipped[0].Reason)
}

func TestAnalysisService_Run_SummarizeError(t *testing.T) {
	svc := NewAnalysisService(memory.NewNightArchive(), domain.DefaultRunConfig(), brokenAnalysis{})

	_, err := svc.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrLengthMismatch)
	assert.Contains(t, err.Error(), "analysis broken")
}

type brokenAnalysis struct{}

func (brokenAnalysis) Name() string { return "broken" }
func (brokenAnalysis) Description() string { return "always fails" }
func (brokenAnalysis) Requires() domain.ArtifactSet { return journalOnly }
func (brokenAnalysis) Observe(*domain.NightRecord, driven.MetricRecorder) {}
func (brokenAnalysis) Summarize(driven.SeriesReader, *domain.AnalysisReport) error {
	return domain.ErrLengthMismatch
}
