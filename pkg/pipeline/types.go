package pipeline

import (
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/stats"
)

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput names the lines to classify.
type ExtractInput struct {
	Source ports.LineSource
}

// ExtractResult holds the aggregated counts and what it took to build them.
type ExtractResult struct {
	Table stats.Table

	Inputs  int // inputs resolved by the source, readable or not
	Lines   int // lines delivered by the source
	Matched int // lines that carried a request event
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains the final table. It must not be modified afterwards.
type RenderInput struct {
	Table stats.Table
}

// RenderResult contains the report lines, without terminators.
type RenderResult struct {
	Lines []string
}
