package analyses

import (
	"strings"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
	"github.com/custodia-labs/slumber-cli/internal/journal"
	"github.com/custodia-labs/slumber-cli/internal/stats"
)

// Journal summarises the self-reported values in each night's journal.
// It needs only the journal, so nights without device data still count.
type Journal struct {
	info
	keywords []string
}

// NewJournal creates the journal analysis. Blank keywords are dropped.
func NewJournal(keywords []string) *Journal {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	return &Journal{
		info: info{
			name:        NameJournal,
			description: "Latency categories, sleep quality and keyword mentions from journals",
			requires:    domain.NewArtifactSet(domain.ArtifactJournal),
		},
		keywords: kept,
	}
}

// Observe records latency, quality and keyword mentions.
func (j *Journal) Observe(night *domain.NightRecord, rec driven.MetricRecorder) {
	if night.LatencyMinutes.Valid {
		rec.Record(domain.MetricLatency, night.Date, night.LatencyMinutes.Float64)
	}
	if night.Quality.Valid {
		rec.Record(domain.MetricQuality, night.Date, night.Quality.Float64)
	}
	for _, k := range j.keywords {
		rec.Mention(k, journal.Mentions(night.Journal, k))
	}
}

// Summarize reports both series, the latency categories and keyword tallies.
func (j *Journal) Summarize(series driven.SeriesReader, report *domain.AnalysisReport) error {
	latency := summarize(series, domain.MetricLatency)
	report.Series = append(report.Series, latency, summarize(series, domain.MetricQuality))
	report.Categories = stats.TallyCategories(latency.Values())
	report.Keywords = series.Keywords()
	return nil
}
