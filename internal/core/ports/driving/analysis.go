package driving

import (
	"context"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// AnalysisService runs analyses over the night archive.
type AnalysisService interface {
	// Run executes the named analyses in the given order, or every
	// registered analysis when names is empty. Unknown names fail the
	// run before any night is read.
	Run(ctx context.Context, names ...string) (*domain.Report, error)

	// Available describes the registered analyses.
	Available() []AnalysisInfo
}

// AnalysisInfo describes a registered analysis.
type AnalysisInfo struct {
	Name        string
	Description string
	Requires    domain.ArtifactSet
}
