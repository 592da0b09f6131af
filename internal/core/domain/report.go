package domain

import (
	"encoding/json"
	"time"
)

// MarshalJSON writes a missing value as null.
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// MarshalJSON writes the cause as a string.
func (s Skip) MarshalJSON() ([]byte, error) {
	cause := ""
	if s.Err != nil {
		cause = s.Err.Error()
	}
	return json.Marshal(struct {
		Night  string     `json:"night"`
		Reason SkipReason `json:"reason"`
		Cause  string     `json:"cause,omitempty"`
	}{s.Night, s.Reason, cause})
}

// Correlation is a Pearson coefficient between two metrics paired by night.
type Correlation struct {
	X string `json:"x"`
	Y string `json:"y"`

	// N is the number of paired nights.
	N int `json:"n"`

	// Calculated is false when the coefficient is undefined for the data,
	// for example with fewer than two pairs or a constant series.
	Calculated bool `json:"calculated"`

	// Reason explains why Calculated is false.
	Reason string `json:"reason,omitempty"`

	// R is the correlation coefficient in [-1, 1].
	R float64 `json:"r"`

	// P is the two-sided p-value against zero correlation.
	P float64 `json:"p"`
}

// SeriesSummary is a series with its mean.
type SeriesSummary struct {
	Series
	Mean NullFloat64 `json:"mean"`
}

// AnalysisReport is the outcome of one analysis over the whole batch.
type AnalysisReport struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Requires lists the artifacts a night needed to be included.
	Requires string `json:"requires"`

	// Nights is the number of nights loaded for this analysis.
	Nights int `json:"nights"`

	Series       []SeriesSummary `json:"series,omitempty"`
	Categories   CategoryTally   `json:"categories,omitempty"`
	Keywords     []KeywordTally  `json:"keywords,omitempty"`
	Correlations []Correlation   `json:"correlations,omitempty"`

	// Skipped lists the nights left out, except entries that are not nights at all.
	Skipped []Skip `json:"skipped,omitempty"`
}

// FindSeries returns the summary for a metric.
func (r *AnalysisReport) FindSeries(metric string) (SeriesSummary, bool) {
	for _, s := range r.Series {
		if s.Metric == metric {
			return s, true
		}
	}
	return SeriesSummary{}, false
}

// Report is the outcome of an analysis run.
type Report struct {
	RunID       string           `json:"run_id"`
	Root        string           `json:"root"`
	GeneratedAt time.Time        `json:"generated_at"`
	Analyses    []AnalysisReport `json:"analyses"`
}

// Find returns the report of a named analysis.
func (r *Report) Find(name string) (*AnalysisReport, bool) {
	for i := range r.Analyses {
		if r.Analyses[i].Name == name {
			return &r.Analyses[i], true
		}
	}
	return nil, false
}
