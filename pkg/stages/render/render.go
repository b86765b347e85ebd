// Package render implements the stage that turns a count table into report lines.
package render

import (
	"context"

	"github.com/user/logreport/pkg/pipeline"
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/report"
	"github.com/user/logreport/pkg/stats"
)

// Stage renders the final table with a report formatter.
type Stage struct {
	formatter report.Formatter
	logger    ports.Logger
}

// NewStage creates a new render stage.
func NewStage(formatter report.Formatter, logger ports.Logger) *Stage {
	return &Stage{
		formatter: formatter,
		logger:    logger.WithComponent("render"),
	}
}

// Execute renders the report. A nil table renders as an empty one.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.RenderResult{}, err
	}

	table := input.Table
	if table == nil {
		table = stats.NewTable()
	}

	lines := s.formatter.Format(table)
	s.logger.Debug("Rendered %d paths", len(table))
	return pipeline.RenderResult{Lines: lines}, nil
}
