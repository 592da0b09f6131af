package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNightName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"2025-06-01", true},
		{"2025-13-40", true},
		{"2025-6-1", false},
		{"notes", false},
		{"2025-06-01.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNightName(tt.name))
		})
	}
}

func TestParseNightDate(t *testing.T) {
	date, err := ParseNightDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseNightDate("2025-13-40")
	assert.ErrorIs(t, err, ErrMalformedDate)

	_, err = ParseNightDate("yesterday")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestArtifact_FileNames(t *testing.T) {
	assert.Equal(t, "ground_truth_log.csv", ArtifactGroundTruth.FileName())
	assert.Equal(t, "journal.txt", ArtifactJournal.FileName())
	assert.Equal(t, "sleep_event_log.csv", ArtifactEventLog.FileName())
	assert.Equal(t, "sensor_data_log.csv", ArtifactSensorLog.FileName())
}

func TestArtifactSet(t *testing.T) {
	set := NewArtifactSet(ArtifactJournal, ArtifactGroundTruth)

	assert.True(t, set.Has(ArtifactGroundTruth))
	assert.True(t, set.Has(ArtifactJournal))
	assert.False(t, set.Has(ArtifactEventLog))
	assert.Equal(t, []Artifact{ArtifactGroundTruth, ArtifactJournal}, set.List())
	assert.Equal(t, "ground_truth+journal", set.String())

	assert.Equal(t, "none", NewArtifactSet().String())
}

func TestSensorSample_Value(t *testing.T) {
	s := SensorSample{Temperature: 21.5, Humidity: 40, HeatIndex: 22, Light: 3, Sound: 55}

	assert.Equal(t, 21.5, s.Value(ChannelTemperature))
	assert.Equal(t, 40.0, s.Value(ChannelHumidity))
	assert.Equal(t, 22.0, s.Value(ChannelHeatIndex))
	assert.Equal(t, 3.0, s.Value(ChannelLight))
	assert.Equal(t, 55.0, s.Value(ChannelSound))
	assert.Zero(t, s.Value(Channel("pressure")))
	assert.Len(t, Channels(), 5)
}

func TestNightRecord_Key(t *testing.T) {
	n := &NightRecord{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-06-01", n.Key())
}
