package domain

// LatencyCategory bins a sleep onset latency.
type LatencyCategory string

// Latency categories. Bin edges are inclusive on the lower bin.
const (
	// LatencyNormal covers latencies up to and including 30 minutes.
	LatencyNormal LatencyCategory = "Normal"

	// LatencyMildInsomnia covers latencies above 30 and up to 90 minutes.
	LatencyMildInsomnia LatencyCategory = "Mild Insomnia"

	// LatencySevereInsomnia covers latencies above 90 minutes.
	LatencySevereInsomnia LatencyCategory = "Severe Insomnia"
)

// Upper bounds of the latency bins, in minutes.
const (
	NormalLatencyMax = 30.0
	MildLatencyMax   = 90.0
)

// LatencyCategories lists the categories in their fixed report order.
func LatencyCategories() []LatencyCategory {
	return []LatencyCategory{LatencyNormal, LatencyMildInsomnia, LatencySevereInsomnia}
}

// CategorizeLatency places a latency in exactly one bin.
func CategorizeLatency(minutes float64) LatencyCategory {
	switch {
	case minutes <= NormalLatencyMax:
		return LatencyNormal
	case minutes <= MildLatencyMax:
		return LatencyMildInsomnia
	default:
		return LatencySevereInsomnia
	}
}

// String returns the string representation.
func (c LatencyCategory) String() string {
	return string(c)
}

// CategoryCount is the number of nights in one latency bin.
type CategoryCount struct {
	Category LatencyCategory `json:"category"`
	Count    int             `json:"count"`
}

// CategoryTally counts nights per latency bin in LatencyCategories order.
type CategoryTally []CategoryCount

// Count returns the number of nights in a bin.
func (t CategoryTally) Count(c LatencyCategory) int {
	for _, cc := range t {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

// Total returns the number of nights across all bins.
func (t CategoryTally) Total() int {
	total := 0
	for _, cc := range t {
		total += cc.Count
	}
	return total
}

// KeywordTally counts nights whose journal did or did not mention a keyword.
type KeywordTally struct {
	Keyword      string `json:"keyword"`
	Mentioned    int    `json:"mentioned"`
	NotMentioned int    `json:"not_mentioned"`
}
