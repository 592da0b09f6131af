package alignment

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func events(stamps ...string) []domain.DiscreteEvent {
	out := make([]domain.DiscreteEvent, len(stamps))
	for i, s := range stamps {
		out[i] = domain.DiscreteEvent{Timestamp: at(s), Label: "MOVEMENT"}
	}
	return out
}

func sample(s string, v float64) domain.SensorSample {
	return domain.SensorSample{
		Timestamp:   at(s),
		Temperature: v,
		Humidity:    v * 2,
		HeatIndex:   v * 3,
		Light:       v * 4,
		Sound:       v * 5,
	}
}

func night() *domain.NightRecord {
	return &domain.NightRecord{
		Date:           at("2025-06-01 00:00:00"),
		BedTime:        at("2025-06-01 23:00:00"),
		WakeTime:       at("2025-06-02 07:00:00"),
		LatencyMinutes: domain.Some(45),
		Events:         events("2025-06-01 23:30:00"),
	}
}

func TestTrueSleepWithLatency(t *testing.T) {
	t.Run("adds latency to bed time", func(t *testing.T) {
		got, ok := TrueSleepWithLatency(night())

		require.True(t, ok)
		assert.Equal(t, at("2025-06-01 23:45:00"), got)
	})

	t.Run("fractional minutes", func(t *testing.T) {
		n := night()
		n.LatencyMinutes = domain.Some(1.5)

		got, ok := TrueSleepWithLatency(n)

		require.True(t, ok)
		assert.Equal(t, at("2025-06-01 23:01:30"), got)
	})

	t.Run("absent latency", func(t *testing.T) {
		n := night()
		n.LatencyMinutes = domain.NullFloat64{}

		_, ok := TrueSleepWithLatency(n)

		assert.False(t, ok)
	})
}

func TestTrueSleepAtBed(t *testing.T) {
	assert.Equal(t, at("2025-06-01 23:00:00"), TrueSleepAtBed(night()))
}

func TestSleepWindow(t *testing.T) {
	t.Run("bed policy ignores latency", func(t *testing.T) {
		n := night()
		n.LatencyMinutes = domain.NullFloat64{}

		w, ok := SleepWindow(n, domain.WindowFromBed)

		require.True(t, ok)
		assert.Equal(t, n.BedTime, w.Start)
		assert.Equal(t, n.WakeTime, w.End)
	})

	t.Run("onset policy starts after latency", func(t *testing.T) {
		w, ok := SleepWindow(night(), domain.WindowFromOnset)

		require.True(t, ok)
		assert.Equal(t, at("2025-06-01 23:45:00"), w.Start)
	})

	t.Run("onset policy needs latency", func(t *testing.T) {
		n := night()
		n.LatencyMinutes = domain.NullFloat64{}

		_, ok := SleepWindow(n, domain.WindowFromOnset)

		assert.False(t, ok)
	})
}

func TestNearestEvent(t *testing.T) {
	evs := events("2025-06-01 23:10:00", "2025-06-01 23:40:00", "2025-06-01 23:50:00", "2025-06-02 01:00:00")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"before all events", "2025-06-01 22:00:00", "2025-06-01 23:10:00"},
		{"after all events", "2025-06-02 06:00:00", "2025-06-02 01:00:00"},
		{"straddled closer to later", "2025-06-01 23:38:00", "2025-06-01 23:40:00"},
		{"straddled closer to earlier", "2025-06-01 23:42:00", "2025-06-01 23:40:00"},
		{"exact match", "2025-06-01 23:50:00", "2025-06-01 23:50:00"},
		{"tie prefers earlier", "2025-06-01 23:45:00", "2025-06-01 23:40:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestEvent(evs, at(tt.ref))

			require.True(t, ok)
			assert.Equal(t, at(tt.want), got.Timestamp)
		})
	}

	t.Run("minimises distance over every candidate", func(t *testing.T) {
		ref := at("2025-06-01 23:44:59")
		got, ok := NearestEvent(evs, ref)
		require.True(t, ok)

		best := OffsetMinutes(got.Timestamp, ref)
		for _, e := range evs {
			assert.LessOrEqual(t, best, OffsetMinutes(e.Timestamp, ref))
		}
	})

	t.Run("duplicate timestamps keep log order", func(t *testing.T) {
		dup := []domain.DiscreteEvent{
			{Timestamp: at("2025-06-01 23:00:00"), Label: "LIGHT"},
			{Timestamp: at("2025-06-01 23:00:00"), Label: "SOUND"},
		}

		got, ok := NearestEvent(dup, at("2025-06-01 23:05:00"))

		require.True(t, ok)
		assert.Equal(t, "LIGHT", got.Label)
	})

	t.Run("no events", func(t *testing.T) {
		_, ok := NearestEvent(nil, at("2025-06-01 23:00:00"))
		assert.False(t, ok)
	})
}

func TestCountEvents(t *testing.T) {
	evs := events("2025-06-01 23:00:00", "2025-06-01 23:30:00", "2025-06-02 03:00:00", "2025-06-02 07:00:00", "2025-06-02 07:00:01")

	t.Run("closed interval includes endpoints", func(t *testing.T) {
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-02 07:00:00")}
		assert.Equal(t, 4, CountEvents(evs, w))
	})

	t.Run("empty when inverted", func(t *testing.T) {
		w := Window{Start: at("2025-06-02 07:00:00"), End: at("2025-06-01 23:00:00")}
		assert.Equal(t, 0, CountEvents(evs, w))
	})

	t.Run("monotonic as right endpoint grows", func(t *testing.T) {
		start := at("2025-06-01 22:00:00")
		prev := 0
		for end := start; !end.After(at("2025-06-02 08:00:00")); end = end.Add(15 * time.Minute) {
			n := CountEvents(evs, Window{Start: start, End: end})
			assert.GreaterOrEqual(t, n, prev)
			prev = n
		}
		assert.Equal(t, len(evs), prev)
	})

	t.Run("no events", func(t *testing.T) {
		assert.Equal(t, 0, CountEvents(nil, Window{Start: at("2025-06-01 22:00:00"), End: at("2025-06-02 08:00:00")}))
	})
}

func TestEventsBetween(t *testing.T) {
	evs := events("2025-06-01 21:00:00", "2025-06-01 23:30:00", "2025-06-02 09:00:00")
	w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-02 07:00:00")}

	got := EventsBetween(evs, w)

	require.Len(t, got, 1)
	assert.Equal(t, at("2025-06-01 23:30:00"), got[0].Timestamp)

	assert.Len(t, EventsBetween(evs, w.Pad(2*time.Hour)), 3)
	assert.Nil(t, EventsBetween(nil, w))
}

func TestAverageSensors(t *testing.T) {
	t.Run("mean of samples inside window", func(t *testing.T) {
		samples := []domain.SensorSample{
			sample("2025-06-01 22:50:00", 100),
			sample("2025-06-01 23:00:00", 10),
			sample("2025-06-01 23:20:00", 20),
			sample("2025-06-01 23:45:00", 30),
			sample("2025-06-01 23:50:00", 100),
		}
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors(samples, w)

		require.True(t, ok)
		assert.InDelta(t, 20.0, got[domain.ChannelTemperature], 1e-9)
		assert.InDelta(t, 40.0, got[domain.ChannelHumidity], 1e-9)
		assert.InDelta(t, 60.0, got[domain.ChannelHeatIndex], 1e-9)
		assert.InDelta(t, 80.0, got[domain.ChannelLight], 1e-9)
		assert.InDelta(t, 100.0, got[domain.ChannelSound], 1e-9)
	})

	t.Run("single sample equals its value", func(t *testing.T) {
		samples := []domain.SensorSample{
			sample("2025-06-01 22:00:00", 1),
			sample("2025-06-01 23:10:00", 7),
			sample("2025-06-02 01:00:00", 1),
		}
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors(samples, w)

		require.True(t, ok)
		for _, ch := range domain.Channels() {
			assert.Equal(t, samples[1].Value(ch), got[ch], ch.String())
		}
	})

	t.Run("falls back to sample nearest the window end", func(t *testing.T) {
		samples := []domain.SensorSample{
			sample("2025-06-01 22:58:00", 1), // nearer the start
			sample("2025-06-01 23:50:00", 9), // nearer the end
		}
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors(samples, w)

		require.True(t, ok)
		assert.Equal(t, 9.0, got[domain.ChannelTemperature])
		assert.Equal(t, 45.0, got[domain.ChannelSound])
	})

	t.Run("non-finite readings left out of the mean", func(t *testing.T) {
		bad := sample("2025-06-01 23:20:00", 0)
		bad.Temperature = math.NaN()
		bad.Humidity = math.Inf(1)
		samples := []domain.SensorSample{
			sample("2025-06-01 23:10:00", 2),
			bad,
			sample("2025-06-01 23:30:00", 4),
		}
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors(samples, w)

		require.True(t, ok)
		assert.InDelta(t, 3.0, got[domain.ChannelTemperature], 1e-9)
		assert.InDelta(t, 6.0, got[domain.ChannelHumidity], 1e-9)
		assert.InDelta(t, 6.0, got[domain.ChannelHeatIndex], 1e-9) // the zero reading still counts
	})

	t.Run("channel with no finite reading is absent", func(t *testing.T) {
		bad := sample("2025-06-01 23:10:00", 3)
		bad.Temperature = math.NaN()
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors([]domain.SensorSample{bad}, w)

		require.True(t, ok)
		assert.NotContains(t, got, domain.ChannelTemperature)
		assert.Equal(t, 15.0, got[domain.ChannelSound])
	})

	t.Run("fallback sample drops non-finite channels", func(t *testing.T) {
		bad := sample("2025-06-01 23:50:00", 9)
		bad.Light = math.NaN()
		w := Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")}

		got, ok := AverageSensors([]domain.SensorSample{bad}, w)

		require.True(t, ok)
		assert.NotContains(t, got, domain.ChannelLight)
		assert.Equal(t, 9.0, got[domain.ChannelTemperature])
	})

	t.Run("no samples", func(t *testing.T) {
		_, ok := AverageSensors(nil, Window{Start: at("2025-06-01 23:00:00"), End: at("2025-06-01 23:45:00")})
		assert.False(t, ok)
	})
}

func TestOffsetMinutes(t *testing.T) {
	assert.Equal(t, 15.0, OffsetMinutes(at("2025-06-01 23:30:00"), at("2025-06-01 23:45:00")))
	assert.Equal(t, 15.0, OffsetMinutes(at("2025-06-01 23:45:00"), at("2025-06-01 23:30:00")))
	assert.Equal(t, 0.5, OffsetMinutes(at("2025-06-01 23:45:30"), at("2025-06-01 23:45:00")))
}

func TestEndToEndNight(t *testing.T) {
	n := night()

	sleep, ok := TrueSleepWithLatency(n)
	require.True(t, ok)
	assert.Equal(t, at("2025-06-01 23:45:00"), sleep)

	count := CountEvents(n.Events, Window{Start: n.BedTime, End: n.WakeTime})
	assert.Equal(t, 1, count)

	assert.Equal(t, domain.LatencyMildInsomnia, domain.CategorizeLatency(n.LatencyMinutes.Float64))
}
