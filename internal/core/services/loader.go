package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
	"github.com/custodia-labs/slumber-cli/internal/journal"
	"github.com/custodia-labs/slumber-cli/internal/logger"
)

// NightLoader turns a night's artifacts into a NightRecord.
// A night that cannot be loaded produces a Skip; loading never aborts a batch.
type NightLoader struct {
	archive driven.NightArchive
	cfg     domain.RunConfig
}

// NewNightLoader creates a loader over an archive.
// Nights listed in cfg.Exclude are skipped before any file is touched.
func NewNightLoader(archive driven.NightArchive, cfg domain.RunConfig) *NightLoader {
	return &NightLoader{
		archive: archive,
		cfg:     cfg,
	}
}

// Load reads one night, requiring every artifact in needs.
// It returns the record, or a Skip explaining why there is none. A nil
// record with a nil Skip means the entry is not a night and is ignored.
func (l *NightLoader) Load(ctx context.Context, entry string, needs domain.ArtifactSet) (*domain.NightRecord, *domain.Skip) {
	if l.cfg.IsExcluded(entry) {
		return nil, &domain.Skip{Night: entry, Reason: domain.SkipExcluded, Err: domain.ErrExcluded}
	}
	if !domain.IsNightName(entry) {
		return nil, nil
	}

	date, err := domain.ParseNightDate(entry)
	if err != nil {
		return nil, &domain.Skip{Night: entry, Reason: domain.SkipMalformedDate, Err: err}
	}

	for _, a := range needs.List() {
		ok, err := l.archive.Has(ctx, entry, a)
		if err != nil {
			return nil, parseSkip(entry, fmt.Errorf("check %s: %w", a, err))
		}
		if !ok {
			return nil, &domain.Skip{
				Night:  entry,
				Reason: domain.SkipMissingArtifact,
				Err:    fmt.Errorf("%w: %s", domain.ErrMissingArtifact, a.FileName()),
			}
		}
	}

	night := &domain.NightRecord{Date: date, Loaded: needs}

	if needs.Has(domain.ArtifactGroundTruth) {
		if skip := l.loadBoundaries(ctx, entry, night); skip != nil {
			return nil, skip
		}
	}

	if needs.Has(domain.ArtifactJournal) {
		text, err := l.archive.Journal(ctx, entry)
		if err != nil {
			return nil, parseSkip(entry, fmt.Errorf("read journal: %w", err))
		}
		extracted := journal.Extract(text)
		night.Journal = text
		night.LatencyMinutes = extracted.LatencyMinutes
		night.Quality = extracted.Quality
	}

	if needs.Has(domain.ArtifactEventLog) {
		events, err := l.archive.Events(ctx, entry)
		if err != nil {
			return nil, parseSkip(entry, fmt.Errorf("read event log: %w", err))
		}
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Timestamp.Before(events[j].Timestamp)
		})
		night.Events = events
	}

	if needs.Has(domain.ArtifactSensorLog) {
		samples, err := l.archive.Samples(ctx, entry)
		if err != nil {
			return nil, parseSkip(entry, fmt.Errorf("read sensor log: %w", err))
		}
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Timestamp.Before(samples[j].Timestamp)
		})
		night.Samples = samples
	}

	return night, nil
}

// loadBoundaries sets bed and wake time from the first two ground truth rows.
func (l *NightLoader) loadBoundaries(ctx context.Context, entry string, night *domain.NightRecord) *domain.Skip {
	boundaries, err := l.archive.Boundaries(ctx, entry)
	if err != nil {
		return parseSkip(entry, fmt.Errorf("read ground truth: %w", err))
	}
	if len(boundaries) < 2 {
		return &domain.Skip{
			Night:  entry,
			Reason: domain.SkipTooFewBoundaries,
			Err:    fmt.Errorf("%w: %d row(s)", domain.ErrTooFewBoundaries, len(boundaries)),
		}
	}

	night.BedTime = boundaries[0]
	night.WakeTime = boundaries[1]
	if night.WakeTime.Before(night.BedTime) {
		return &domain.Skip{
			Night:  entry,
			Reason: domain.SkipInvertedBoundaries,
			Err: fmt.Errorf("%w: bed %s, wake %s", domain.ErrInvertedBoundaries,
				night.BedTime.Format("2006-01-02 15:04:05"), night.WakeTime.Format("2006-01-02 15:04:05")),
		}
	}
	return nil
}

// LoadAll loads every night in the archive, in date order.
// Only failing to list the archive is an error; every per-night problem
// becomes a Skip and the batch continues.
func (l *NightLoader) LoadAll(ctx context.Context, needs domain.ArtifactSet) ([]*domain.NightRecord, []domain.Skip, error) {
	entries, err := l.archive.Entries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list nights in %s: %w", l.archive.Root(), err)
	}
	sort.Strings(entries)

	var (
		nights []*domain.NightRecord
		skips  []domain.Skip
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		night, skip := l.Load(ctx, entry, needs)
		switch {
		case skip != nil:
			logSkip(skip)
			skips = append(skips, *skip)
		case night != nil:
			nights = append(nights, night)
		}
	}

	logger.Debug("Loaded %d nights (%d skipped) requiring %s", len(nights), len(skips), needs)
	return nights, skips, nil
}

func parseSkip(entry string, err error) *domain.Skip {
	return &domain.Skip{Night: entry, Reason: domain.SkipParseFailure, Err: err}
}

// logSkip reports structural skips at debug level and damaged data as a warning.
func logSkip(skip *domain.Skip) {
	fields := []zap.Field{
		zap.String("night", skip.Night),
		zap.String("reason", skip.Reason.String()),
	}
	if skip.Err != nil && !errors.Is(skip.Err, domain.ErrExcluded) {
		fields = append(fields, zap.Error(skip.Err))
	}

	if skip.Reason.IsStructural() {
		logger.L().Debug("night skipped", fields...)
		return
	}
	logger.L().Warn("night skipped", fields...)
}
