// Package analyses holds the built-in analyses and the registry that
// builds them from a run configuration.
//
// Every analysis shares the night loader and the alignment package; they
// differ only in the artifacts they require, the window they look at and
// the metrics they record.
package analyses
