// Package alignment joins a night's independently timestamped sources on a
// common timeline.
//
// Every function is pure. Event and sample slices must be ordered by
// timestamp, which the night loader guarantees; lookups use binary search
// and so run in O(log n) per query.
package alignment

import (
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// Window is the closed interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in the window, endpoints included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Pad widens the window by d on both sides.
func (w Window) Pad(d time.Duration) Window {
	return Window{Start: w.Start.Add(-d), End: w.End.Add(d)}
}

// Minutes converts fractional minutes to a duration.
func Minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

// OffsetMinutes returns the absolute distance between two instants in minutes.
func OffsetMinutes(a, b time.Time) float64 {
	return absDuration(a.Sub(b)).Minutes()
}

// TrueSleepWithLatency returns bed time plus the self-reported onset latency.
// It returns false when the night has no parsed latency.
func TrueSleepWithLatency(n *domain.NightRecord) (time.Time, bool) {
	if !n.LatencyMinutes.Valid {
		return time.Time{}, false
	}
	return n.BedTime.Add(Minutes(n.LatencyMinutes.Float64)), true
}

// TrueSleepAtBed returns bed time unmodified, for analyses that treat getting
// into bed as the start of sleep.
func TrueSleepAtBed(n *domain.NightRecord) time.Time {
	return n.BedTime
}

// SleepWindow returns [true sleep, wake] where true sleep follows the policy.
// It returns false when the policy needs a latency the night lacks.
func SleepWindow(n *domain.NightRecord, policy domain.WindowPolicy) (Window, bool) {
	if policy == domain.WindowFromOnset {
		start, ok := TrueSleepWithLatency(n)
		if !ok {
			return Window{}, false
		}
		return Window{Start: start, End: n.WakeTime}, true
	}
	return Window{Start: TrueSleepAtBed(n), End: n.WakeTime}, true
}

// OnsetWindow returns [bed, bed + latency], the interval spent falling asleep.
// It returns false when the night has no parsed latency.
func OnsetWindow(n *domain.NightRecord) (Window, bool) {
	end, ok := TrueSleepWithLatency(n)
	if !ok {
		return Window{}, false
	}
	return Window{Start: n.BedTime, End: end}, true
}

// NearestEvent returns the event closest in time to ref.
// When two events are equally close the earlier one wins.
// It returns false when there are no events.
func NearestEvent(events []domain.DiscreteEvent, ref time.Time) (domain.DiscreteEvent, bool) {
	i := nearestIndex(len(events), func(i int) time.Time { return events[i].Timestamp }, ref)
	if i < 0 {
		return domain.DiscreteEvent{}, false
	}
	return events[i], true
}

// CountEvents returns the number of events inside the window.
func CountEvents(events []domain.DiscreteEvent, w Window) int {
	lo, hi := bounds(len(events), func(i int) time.Time { return events[i].Timestamp }, w)
	return hi - lo
}

// EventsBetween returns the events inside the window.
func EventsBetween(events []domain.DiscreteEvent, w Window) []domain.DiscreteEvent {
	lo, hi := bounds(len(events), func(i int) time.Time { return events[i].Timestamp }, w)
	if lo == hi {
		return nil
	}
	return events[lo:hi]
}

// NearestSample returns the sample closest in time to ref.
// When two samples are equally close the earlier one wins.
// It returns false when there are no samples.
func NearestSample(samples []domain.SensorSample, ref time.Time) (domain.SensorSample, bool) {
	i := nearestIndex(len(samples), func(i int) time.Time { return samples[i].Timestamp }, ref)
	if i < 0 {
		return domain.SensorSample{}, false
	}
	return samples[i], true
}

// AverageSensors returns the per-channel mean of the samples inside the window.
// When no sample falls inside, the sample nearest to the window's end stands in.
// Non-finite readings are left out of a channel's mean, and a channel with no
// finite reading is absent from the result. It returns false only when there
// are no samples at all.
func AverageSensors(samples []domain.SensorSample, w Window) (map[domain.Channel]float64, bool) {
	lo, hi := bounds(len(samples), func(i int) time.Time { return samples[i].Timestamp }, w)
	if lo == hi {
		nearest, ok := NearestSample(samples, w.End)
		if !ok {
			return nil, false
		}
		return channelValues(nearest), true
	}

	sums := make(map[domain.Channel]float64, len(domain.Channels()))
	counts := make(map[domain.Channel]int, len(domain.Channels()))
	for _, s := range samples[lo:hi] {
		for _, ch := range domain.Channels() {
			v := s.Value(ch)
			if !finite(v) {
				continue
			}
			sums[ch] += v
			counts[ch]++
		}
	}
	for ch, n := range counts {
		sums[ch] /= float64(n)
	}
	return sums, true
}

func channelValues(s domain.SensorSample) map[domain.Channel]float64 {
	out := make(map[domain.Channel]float64, len(domain.Channels()))
	for _, ch := range domain.Channels() {
		if v := s.Value(ch); finite(v) {
			out[ch] = v
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// bounds returns the half-open index range [lo, hi) of items inside w.
func bounds(n int, at func(int) time.Time, w Window) (int, int) {
	if w.End.Before(w.Start) {
		return 0, 0
	}
	lo := sort.Search(n, func(i int) bool { return !at(i).Before(w.Start) })
	hi := sort.Search(n, func(i int) bool { return at(i).After(w.End) })
	if hi < lo {
		return lo, lo
	}
	return lo, hi
}

// nearestIndex finds the item closest to target, or -1 when n is zero.
func nearestIndex(n int, at func(int) time.Time, target time.Time) int {
	if n == 0 {
		return -1
	}

	// First item at or after target; the best match is it or its predecessor.
	idx := sort.Search(n, func(i int) bool { return !at(i).Before(target) })

	best := -1
	var bestDiff time.Duration
	for _, i := range []int{idx - 1, idx} {
		if i < 0 || i >= n {
			continue
		}
		diff := absDuration(at(i).Sub(target))
		if best < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	// Equal timestamps keep log order; prefer the first of them.
	for best > 0 && at(best-1).Equal(at(best)) {
		best--
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
