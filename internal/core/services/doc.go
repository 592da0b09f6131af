// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven
// ports (adapters).
//
// NightLoader turns archive entries into NightRecords or Skips,
// Aggregator collects per-night metrics into series, AnalysisService runs
// analyses over a batch, and ConfigService maps the config store onto a
// RunConfig.
package services
