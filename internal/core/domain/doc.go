// Package domain defines the core entities for Slumber.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - NightRecord: One night's boundaries, journal values, events and sensor samples
//   - Skip: Why a candidate night was not loaded
//   - Series: Date-ordered values of one derived metric
//   - Report: The outcome of an analysis run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
