// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - NightArchive: Read-only access to the per-night files
//   - Analysis: One parameterised analysis over loaded nights
//   - MetricRecorder / SeriesReader: Per-analysis accumulation of derived values
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or analysis package
package driven
