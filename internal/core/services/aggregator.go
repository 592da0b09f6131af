package services

import (
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// Ensure Aggregator implements the interfaces.
var (
	_ driven.MetricRecorder = (*Aggregator)(nil)
	_ driven.SeriesReader   = (*Aggregator)(nil)
)

// Aggregator collects per-night values for one analysis run.
// It has a single writer and is not safe for concurrent use.
type Aggregator struct {
	values   map[string]map[time.Time]float64
	keywords []domain.KeywordTally
	index    map[string]int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		values: make(map[string]map[time.Time]float64),
		index:  make(map[string]int),
	}
}

// Record stores a night's value of a metric, replacing any earlier value.
// NaN and infinite values are not stored; the night is simply absent from
// the series.
func (a *Aggregator) Record(metric string, night time.Time, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	byDate, ok := a.values[metric]
	if !ok {
		byDate = make(map[time.Time]float64)
		a.values[metric] = byDate
	}
	byDate[night] = value
}

// Mention counts one night towards a keyword bucket.
func (a *Aggregator) Mention(keyword string, mentioned bool) {
	i, ok := a.index[keyword]
	if !ok {
		i = len(a.keywords)
		a.index[keyword] = i
		a.keywords = append(a.keywords, domain.KeywordTally{Keyword: keyword})
	}
	if mentioned {
		a.keywords[i].Mentioned++
	} else {
		a.keywords[i].NotMentioned++
	}
}

// Metrics lists recorded metric names in sorted order.
func (a *Aggregator) Metrics() []string {
	names := make([]string, 0, len(a.values))
	for name := range a.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series returns a metric's points sorted ascending by date.
// An unknown metric yields an empty series.
func (a *Aggregator) Series(metric string) domain.Series {
	byDate := a.values[metric]
	points := make([]domain.Point, 0, len(byDate))
	for date, v := range byDate {
		points = append(points, domain.Point{Date: date, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return domain.Series{Metric: metric, Points: points}
}

// Pair joins two metrics on the nights recorded for both, in date order.
func (a *Aggregator) Pair(x, y string) domain.SeriesPair {
	pair := domain.SeriesPair{XMetric: x, YMetric: y}
	ys := a.values[y]
	for _, p := range a.Series(x).Points {
		yv, ok := ys[p.Date]
		if !ok {
			continue
		}
		pair.Dates = append(pair.Dates, p.Date)
		pair.X = append(pair.X, p.Value)
		pair.Y = append(pair.Y, yv)
	}
	return pair
}

// Keywords returns keyword tallies in the order keywords were first seen.
func (a *Aggregator) Keywords() []domain.KeywordTally {
	out := make([]domain.KeywordTally, len(a.keywords))
	copy(out, a.keywords)
	return out
}
