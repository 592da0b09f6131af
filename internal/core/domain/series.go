package domain

import (
	"encoding/json"
	"time"
)

// Metric names shared by the analyses.
const (
	MetricLatency     = "latency"
	MetricQuality     = "quality"
	MetricEvents      = "events"
	MetricSleepOffset = "offset.sleep"
	MetricWakeOffset  = "offset.wake"
)

// SensorMetric returns the metric name for a channel's interval average.
func SensorMetric(ch Channel) string {
	return "sensor." + ch.String()
}

// TimelineMetric returns the metric name for a per-label event count.
func TimelineMetric(label string) string {
	return "timeline." + label
}

// Point is one night's value of a metric.
type Point struct {
	Date  time.Time
	Value float64
}

// MarshalJSON writes the date in night directory form.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}{p.Date.Format(DateLayout), p.Value})
}

// Series is one metric's values in ascending date order, one point per night.
type Series struct {
	Metric string  `json:"metric"`
	Points []Point `json:"points"`
}

// Len returns the number of nights in the series.
func (s Series) Len() int {
	return len(s.Points)
}

// Values returns the values in date order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Dates returns the dates in ascending order.
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// SeriesPair holds two metrics joined on the nights present in both.
// X[i] and Y[i] always belong to Dates[i].
type SeriesPair struct {
	XMetric string
	YMetric string
	Dates   []time.Time
	X       []float64
	Y       []float64
}

// Len returns the number of paired nights.
func (p SeriesPair) Len() int {
	return len(p.Dates)
}
