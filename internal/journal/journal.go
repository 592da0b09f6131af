// Package journal extracts structured values from free-text sleep journals.
//
// Extraction is narrow: a labelled number is either found and
// parsed, or reported absent. Nothing downstream sees the raw text.
package journal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// Journal labels. Label matching is case-sensitive.
const (
	LatencyLabel = "Sleep Onset Latency:"
	QualityLabel = "Sleep Quality:"
)

var (
	latencyPattern = labelPattern(LatencyLabel)
	qualityPattern = labelPattern(QualityLabel)
)

// labelPattern matches the first integer or decimal after a label.
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(label) + `\s*(\d+(?:\.\d+)?|\.\d+)`)
}

// Entry holds the values extracted from one journal.
type Entry struct {
	LatencyMinutes domain.NullFloat64
	Quality        domain.NullFloat64
}

// Extract reads both labelled values from a journal.
func Extract(text string) Entry {
	return Entry{
		LatencyMinutes: ExtractLatency(text),
		Quality:        ExtractQuality(text),
	}
}

// ExtractLatency returns the first number following "Sleep Onset Latency:".
func ExtractLatency(text string) domain.NullFloat64 {
	return extract(latencyPattern, text)
}

// ExtractQuality returns the first number following "Sleep Quality:".
func ExtractQuality(text string) domain.NullFloat64 {
	return extract(qualityPattern, text)
}

func extract(pattern *regexp.Regexp, text string) domain.NullFloat64 {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return domain.NullFloat64{}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.NullFloat64{}
	}
	return domain.Some(v)
}

// Mentions reports whether the journal contains keyword, ignoring case.
// An empty keyword is never mentioned.
func Mentions(text, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}
