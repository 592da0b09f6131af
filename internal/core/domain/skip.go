package domain

import "fmt"

// SkipReason classifies why a candidate night produced no record.
type SkipReason string

// Skip reasons.
const (
	// SkipExcluded means the night is on the exclusion list. No file was read.
	SkipExcluded SkipReason = "excluded"

	// SkipMalformedDate means the directory name is not a real calendar date.
	SkipMalformedDate SkipReason = "malformed_date"

	// SkipMissingArtifact means a required file is absent.
	SkipMissingArtifact SkipReason = "missing_artifact"

	// SkipTooFewBoundaries means the ground truth log has fewer than two rows.
	SkipTooFewBoundaries SkipReason = "too_few_boundaries"

	// SkipInvertedBoundaries means the wake boundary precedes the bed boundary.
	SkipInvertedBoundaries SkipReason = "inverted_boundaries"

	// SkipParseFailure means a file could not be read or parsed.
	SkipParseFailure SkipReason = "parse_failure"
)

// IsStructural returns true for reasons that reflect expected absence rather
// than damaged data. Structural skips are not worth a warning.
func (r SkipReason) IsStructural() bool {
	switch r {
	case SkipExcluded, SkipMissingArtifact, SkipTooFewBoundaries:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r SkipReason) String() string {
	return string(r)
}

// Skip records that a night was left out of a run.
type Skip struct {
	// Night is the directory name of the skipped night.
	Night string

	// Reason classifies the skip.
	Reason SkipReason

	// Err is the underlying cause, wrapping one of the domain sentinel errors.
	Err error
}

// Error implements error so a Skip can travel through error-returning code.
func (s *Skip) Error() string {
	if s.Err == nil {
		return fmt.Sprintf("night %s skipped: %s", s.Night, s.Reason)
	}
	return fmt.Sprintf("night %s skipped: %s: %v", s.Night, s.Reason, s.Err)
}

// Unwrap returns the underlying cause.
func (s *Skip) Unwrap() error {
	return s.Err
}
