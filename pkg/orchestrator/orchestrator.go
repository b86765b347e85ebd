// Package orchestrator coordinates the extract and render stages.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/user/logreport/pkg/pipeline"
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/report"
)

// Config contains everything one report run needs.
type Config struct {
	// Report is the report kind name. Only report.KindHandlers is supported.
	Report string

	// Source supplies the log lines.
	Source ports.LineSource
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	renderStage  pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractStage: extractStage,
		renderStage:  renderStage,
		logger:       logger,
	}
}

// Run validates the report kind, then extracts and renders. No line is read
// when the kind is unsupported.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	kind, err := report.ParseKind(config.Report)
	if err != nil {
		return RunResult{}, err
	}
	o.logger.Debug("Building %s report", kind)

	// 1. Extract and aggregate
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{Source: config.Source})
	if err != nil {
		return RunResult{}, fmt.Errorf("extract stage: %w", err)
	}
	o.logger.Debug("Read %d lines from %d inputs, %d matched", extracted.Lines, extracted.Inputs, extracted.Matched)

	// 2. Render
	rendered, err := o.renderStage.Execute(ctx, pipeline.RenderInput{Table: extracted.Table})
	if err != nil {
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}

	return RunResult{
		Lines:     rendered.Lines,
		Inputs:    extracted.Inputs,
		LinesRead: extracted.Lines,
		Matched:   extracted.Matched,
		Requests:  extracted.Table.Total(),
	}, nil
}

// Entry adapts Run to a pipeline stage so it can be decorated, for example
// with pipeline.Timed.
func (o *Orchestrator) Entry() pipeline.Stage[Config, RunResult] {
	return pipeline.StageFunc[Config, RunResult](o.Run)
}

// RunResult contains the report and the statistics of one run.
type RunResult struct {
	// Lines is the rendered report, without line terminators.
	Lines []string

	Inputs    int
	LinesRead int
	Matched   int
	Requests  int
}
