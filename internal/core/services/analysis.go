package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driving"
	"github.com/custodia-labs/slumber-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs analyses over a night archive.
// Analyses that need the same artifacts share one pass over the archive;
// each analysis still gets its own Aggregator, so series are paired only
// across the nights that analysis observed.
type AnalysisService struct {
	loader   *NightLoader
	root     string
	analyses []driven.Analysis
	now      func() time.Time
}

// NewAnalysisService creates an analysis service.
// Analyses run in the order given.
func NewAnalysisService(archive driven.NightArchive, cfg domain.RunConfig, analyses ...driven.Analysis) *AnalysisService {
	return &AnalysisService{
		loader:   NewNightLoader(archive, cfg),
		root:     archive.Root(),
		analyses: analyses,
		now:      time.Now,
	}
}

// Available describes the registered analyses.
func (s *AnalysisService) Available() []driving.AnalysisInfo {
	infos := make([]driving.AnalysisInfo, 0, len(s.analyses))
	for _, a := range s.analyses {
		infos = append(infos, driving.AnalysisInfo{
			Name:        a.Name(),
			Description: a.Description(),
			Requires:    a.Requires(),
		})
	}
	return infos
}

// Run executes the named analyses, or all of them when names is empty.
func (s *AnalysisService) Run(ctx context.Context, names ...string) (*domain.Report, error) {
	selected, err := s.selectAnalyses(names)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		RunID:       uuid.New().String(),
		Root:        s.root,
		GeneratedAt: s.now(),
		Analyses:    make([]domain.AnalysisReport, len(selected)),
	}

	// One archive pass per distinct artifact set.
	groups := make(map[domain.ArtifactSet][]int)
	var order []domain.ArtifactSet
	for i, a := range selected {
		needs := a.Requires()
		if _, ok := groups[needs]; !ok {
			order = append(order, needs)
		}
		groups[needs] = append(groups[needs], i)
	}

	for _, needs := range order {
		logger.Section("Loading nights: " + needs.String())

		nights, skips, err := s.loader.LoadAll(ctx, needs)
		if err != nil {
			return nil, err
		}

		for _, i := range groups[needs] {
			a := selected[i]
			ar, err := s.runOne(a, nights, skips)
			if err != nil {
				return nil, fmt.Errorf("analysis %s: %w", a.Name(), err)
			}
			report.Analyses[i] = *ar
		}
	}

	return report, nil
}

func (s *AnalysisService) runOne(a driven.Analysis, nights []*domain.NightRecord, skips []domain.Skip) (*domain.AnalysisReport, error) {
	logger.Info("Running %s over %d nights", a.Name(), len(nights))

	agg := NewAggregator()
	for _, night := range nights {
		a.Observe(night, agg)
	}

	ar := &domain.AnalysisReport{
		Name:        a.Name(),
		Description: a.Description(),
		Requires:    a.Requires().String(),
		Nights:      len(nights),
		Skipped:     append([]domain.Skip(nil), skips...),
	}
	if err := a.Summarize(agg, ar); err != nil {
		return nil, err
	}
	return ar, nil
}

func (s *AnalysisService) selectAnalyses(names []string) ([]driven.Analysis, error) {
	if len(names) == 0 {
		return s.analyses, nil
	}

	byName := make(map[string]driven.Analysis, len(s.analyses))
	for _, a := range s.analyses {
		byName[a.Name()] = a
	}

	selected := make([]driven.Analysis, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: analysis %q", domain.ErrNotFound, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, a)
	}
	return selected, nil
}
