// Package extract implements the stage that turns log lines into a count table.
package extract

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/logreport/pkg/pipeline"
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/stats"
)

// ErrNoSource is returned when the input carries no line source.
var ErrNoSource = errors.New("no line source")

// LineMatcher classifies a single line.
type LineMatcher interface {
	Match(line string) (stats.Event, bool)
}

// Stage scans every input of a line source and aggregates the request events.
type Stage struct {
	matcher    LineMatcher
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new extract stage. numWorkers <= 0 uses one worker per CPU.
func NewStage(matcher LineMatcher, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		matcher:    matcher,
		logger:     logger.WithComponent("extract"),
		numWorkers: numWorkers,
	}
}

// partial is what one worker produced from one input.
type partial struct {
	table   stats.Table
	lines   int
	matched int
}

// Execute scans all inputs concurrently. Each input is counted into its own
// table and the tables are merged once every worker has finished.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	if input.Source == nil {
		return pipeline.ExtractResult{}, ErrNoSource
	}

	inputs, err := input.Source.Inputs(ctx)
	if err != nil {
		return pipeline.ExtractResult{}, fmt.Errorf("resolve inputs: %w", err)
	}

	s.logger.Debug("Scanning %d inputs with %d workers", len(inputs), s.numWorkers)

	partials := make([]partial, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.numWorkers)
	for i, name := range inputs {
		g.Go(func() error {
			p, err := s.scan(gctx, input.Source, name)
			if err != nil {
				return fmt.Errorf("scan %s: %w", name, err)
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pipeline.ExtractResult{}, err
	}

	result := pipeline.ExtractResult{
		Table:  stats.NewTable(),
		Inputs: len(inputs),
	}
	for _, p := range partials {
		result.Table = stats.Merge(result.Table, p.table)
		result.Lines += p.lines
		result.Matched += p.matched
	}

	s.logger.Debug("Matched %d of %d lines", result.Matched, result.Lines)
	return result, nil
}

// scan counts the events of one input into a private table.
func (s *Stage) scan(ctx context.Context, source ports.LineSource, name string) (partial, error) {
	p := partial{table: stats.NewTable()}
	err := source.Scan(ctx, name, func(line string) {
		p.lines++
		if ev, ok := s.matcher.Match(line); ok {
			p.table.Accumulate(ev)
			p.matched++
		}
	})
	return p, err
}
