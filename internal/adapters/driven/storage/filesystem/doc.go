// Package filesystem reads the night archive written by the ingestion
// receiver: one YYYY-MM-DD directory per night holding the ground truth,
// event and sensor CSV logs and the journal text.
package filesystem
