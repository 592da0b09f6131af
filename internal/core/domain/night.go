package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the layout of night directory names.
const DateLayout = "2006-01-02"

var nightNamePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsNightName reports whether name has the strict YYYY-MM-DD shape of a night directory.
// It does not check that the date exists on the calendar.
func IsNightName(name string) bool {
	return nightNamePattern.MatchString(name)
}

// ParseNightDate parses a night directory name into its calendar date.
func ParseNightDate(name string) (time.Time, error) {
	if !IsNightName(name) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, name)
	}
	date, err := time.Parse(DateLayout, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrMalformedDate, name, err)
	}
	return date, nil
}

// Artifact identifies one of the per-night files deposited by the ingestion receiver.
type Artifact uint8

// Per-night artifacts.
const (
	// ArtifactGroundTruth holds the user-asserted bed and wake boundaries.
	ArtifactGroundTruth Artifact = 1 << iota

	// ArtifactJournal holds the free-text sleep journal.
	ArtifactJournal

	// ArtifactEventLog holds discrete motion/light/sound triggers.
	ArtifactEventLog

	// ArtifactSensorLog holds continuous environmental samples.
	ArtifactSensorLog
)

// Artifacts lists every artifact in a fixed order.
func Artifacts() []Artifact {
	return []Artifact{ArtifactGroundTruth, ArtifactJournal, ArtifactEventLog, ArtifactSensorLog}
}

// FileName returns the on-disk file name of the artifact.
func (a Artifact) FileName() string {
	switch a {
	case ArtifactGroundTruth:
		return "ground_truth_log.csv"
	case ArtifactJournal:
		return "journal.txt"
	case ArtifactEventLog:
		return "sleep_event_log.csv"
	case ArtifactSensorLog:
		return "sensor_data_log.csv"
	default:
		return ""
	}
}

// String returns the string representation.
func (a Artifact) String() string {
	switch a {
	case ArtifactGroundTruth:
		return "ground_truth"
	case ArtifactJournal:
		return "journal"
	case ArtifactEventLog:
		return "event_log"
	case ArtifactSensorLog:
		return "sensor_log"
	default:
		return "unknown"
	}
}

// ArtifactSet is a set of artifacts an analysis needs before a night is usable.
type ArtifactSet uint8

// NewArtifactSet builds a set from the given artifacts.
func NewArtifactSet(artifacts ...Artifact) ArtifactSet {
	var s ArtifactSet
	for _, a := range artifacts {
		s |= ArtifactSet(a)
	}
	return s
}

// Has reports whether the set contains the artifact.
func (s ArtifactSet) Has(a Artifact) bool {
	return s&ArtifactSet(a) != 0
}

// List returns the artifacts in the set in a fixed order.
func (s ArtifactSet) List() []Artifact {
	var out []Artifact
	for _, a := range Artifacts() {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String returns the artifacts joined by "+".
func (s ArtifactSet) String() string {
	names := make([]string, 0, 4)
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// NullFloat64 is a parsed number that may be absent.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Some wraps a present value.
func Some(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// DiscreteEvent is a labelled trigger from the monitoring device.
type DiscreteEvent struct {
	Timestamp time.Time
	Label     string
}

// SensorSample is one multi-channel environmental reading.
type SensorSample struct {
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
	HeatIndex   float64
	Light       float64
	Sound       float64
}

// Value returns the sample's reading for a channel.
func (s SensorSample) Value(ch Channel) float64 {
	switch ch {
	case ChannelTemperature:
		return s.Temperature
	case ChannelHumidity:
		return s.Humidity
	case ChannelHeatIndex:
		return s.HeatIndex
	case ChannelLight:
		return s.Light
	case ChannelSound:
		return s.Sound
	default:
		return 0
	}
}

// Channel names one column of the sensor log.
type Channel string

// Sensor channels, named after their CSV columns.
const (
	ChannelTemperature Channel = "temperature"
	ChannelHumidity    Channel = "humidity"
	ChannelHeatIndex   Channel = "heat_index"
	ChannelLight       Channel = "light"
	ChannelSound       Channel = "sound"
)

// Channels lists every sensor channel in column order.
func Channels() []Channel {
	return []Channel{ChannelTemperature, ChannelHumidity, ChannelHeatIndex, ChannelLight, ChannelSound}
}

// String returns the string representation.
func (c Channel) String() string {
	return string(c)
}

// NightRecord is everything known about one night after loading.
// Events and Samples are ordered by timestamp. A record is never modified
// after the loader returns it.
type NightRecord struct {
	// Date is the night's calendar date, taken from its directory name.
	Date time.Time

	// Loaded is the set of artifacts that were read for this record.
	Loaded ArtifactSet

	// BedTime and WakeTime are the first two ground truth rows.
	// Zero when the ground truth was not loaded.
	BedTime  time.Time
	WakeTime time.Time

	// Journal is the raw journal text.
	Journal string

	// LatencyMinutes is the self-reported sleep onset latency.
	LatencyMinutes NullFloat64

	// Quality is the self-reported sleep quality score.
	Quality NullFloat64

	Events  []DiscreteEvent
	Samples []SensorSample
}

// Key returns the night's date formatted as its directory name.
func (n *NightRecord) Key() string {
	return n.Date.Format(DateLayout)
}
