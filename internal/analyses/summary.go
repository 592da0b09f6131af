package analyses

import (
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
	"github.com/custodia-labs/slumber-cli/internal/stats"
)

// info carries the identity every analysis reports.
type info struct {
	name        string
	description string
	requires    domain.ArtifactSet
}

func (i info) Name() string                 { return i.name }
func (i info) Description() string          { return i.description }
func (i info) Requires() domain.ArtifactSet { return i.requires }

// withLog is ground truth and journal plus one log.
func withLog(log domain.Artifact) domain.ArtifactSet {
	return domain.NewArtifactSet(domain.ArtifactGroundTruth, domain.ArtifactJournal, log)
}

func summarize(series driven.SeriesReader, metric string) domain.SeriesSummary {
	s := series.Series(metric)
	return domain.SeriesSummary{Series: s, Mean: stats.Mean(s.Values())}
}

func correlate(series driven.SeriesReader, x, y string) (domain.Correlation, error) {
	return stats.PearsonPair(series.Pair(x, y))
}
