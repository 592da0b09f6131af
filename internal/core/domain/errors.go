package domain

import "errors"

// Domain errors represent analysis failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Night loading errors.

	// ErrExcluded indicates a night is on the operator exclusion list.
	ErrExcluded = errors.New("night excluded")

	// ErrMalformedDate indicates a night directory name is not a valid calendar date.
	ErrMalformedDate = errors.New("malformed night date")

	// ErrMissingArtifact indicates a required per-night file is absent.
	ErrMissingArtifact = errors.New("missing artifact")

	// ErrUnparseableTimestamp indicates a log row carries a timestamp that cannot be parsed.
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")

	// ErrUnparseableValue indicates a log row carries a numeric field that cannot be parsed.
	ErrUnparseableValue = errors.New("unparseable value")

	// ErrTooFewBoundaries indicates the ground truth log has fewer than two rows.
	ErrTooFewBoundaries = errors.New("too few ground truth boundaries")

	// ErrInvertedBoundaries indicates the wake boundary precedes the bed boundary.
	ErrInvertedBoundaries = errors.New("wake time precedes bed time")

	// Statistics errors.

	// ErrInsufficientData indicates too few paired observations for a statistic.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrLengthMismatch indicates two series that must be paired differ in length.
	// Callers are expected to pair series by date before computing statistics.
	ErrLengthMismatch = errors.New("series length mismatch")
)
