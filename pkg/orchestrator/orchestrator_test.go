package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/logreport/pkg/matcher"
	"github.com/user/logreport/pkg/mocks"
	"github.com/user/logreport/pkg/pipeline"
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/report"
	"github.com/user/logreport/pkg/stages/extract"
	"github.com/user/logreport/pkg/stages/render"
	"github.com/user/logreport/pkg/stats"
)

// mockExtractStage is a mock for the extract stage.
type mockExtractStage struct {
	result pipeline.ExtractResult
	err    error
	called bool
}

func (m *mockExtractStage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	m.called = true
	if m.err != nil {
		return pipeline.ExtractResult{}, m.err
	}
	return m.result, nil
}

// mockRenderStage is a mock for the render stage.
type mockRenderStage struct {
	result pipeline.RenderResult
	err    error
	input  pipeline.RenderInput
}

func (m *mockRenderStage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.RenderResult{}, m.err
	}
	return m.result, nil
}

func newRealOrchestrator() *Orchestrator {
	log := mocks.NewLogger()
	return New(
		extract.NewStage(matcher.New(), log, 2),
		render.NewStage(report.NewTableFormatter(), log),
		log,
	)
}

func TestOrchestrator_Run(t *testing.T) {
	table := stats.Table{"/a": {stats.LevelInfo: 3, stats.LevelError: 2}}
	extractStage := &mockExtractStage{result: pipeline.ExtractResult{
		Table: table, Inputs: 1, Lines: 9, Matched: 5,
	}}
	renderStage := &mockRenderStage{result: pipeline.RenderResult{Lines: []string{"Total requests: 5"}}}

	orch := New(extractStage, renderStage, mocks.NewLogger())

	result, err := orch.Run(context.Background(), Config{Report: "handlers", Source: mocks.NewLineSource()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(table, renderStage.input.Table); diff != "" {
		t.Errorf("render input mismatch (-want +got):\n%s", diff)
	}
	want := RunResult{Lines: []string{"Total requests: 5"}, Inputs: 1, LinesRead: 9, Matched: 5, Requests: 5}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_Run_UnsupportedReport(t *testing.T) {
	extractStage := &mockExtractStage{}
	orch := New(extractStage, &mockRenderStage{}, mocks.NewLogger())

	_, err := orch.Run(context.Background(), Config{Report: "errors", Source: mocks.NewLineSource()})
	if !errors.Is(err, report.ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
	if extractStage.called {
		t.Error("extract stage must not run for an unsupported report")
	}
}

func TestOrchestrator_Run_ExtractError(t *testing.T) {
	boom := errors.New("boom")
	renderStage := &mockRenderStage{}
	orch := New(&mockExtractStage{err: boom}, renderStage, mocks.NewLogger())

	_, err := orch.Run(context.Background(), Config{Report: "handlers"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped extract error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "extract stage: ") {
		t.Errorf("unexpected error text %q", err)
	}
}

func TestOrchestrator_Run_RenderError(t *testing.T) {
	boom := errors.New("boom")
	orch := New(&mockExtractStage{}, &mockRenderStage{err: boom}, mocks.NewLogger())

	_, err := orch.Run(context.Background(), Config{Report: "handlers"})
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "render stage: ") {
		t.Errorf("expected wrapped render error, got %v", err)
	}
}

func TestOrchestrator_Run_EndToEnd(t *testing.T) {
	source := mocks.NewLineSource().
		Add("app.log",
			"2025-03-28 12:44:46,000 INFO django.request: GET /api/users 200 OK [192.168.1.59]",
			"2025-03-28 12:44:47,000 INFO django.request: GET /api/users 200 OK [192.168.1.59]",
			"2025-03-28 12:13:21,000 WARNING django.security: ConnectionError: Failed to connect",
			"2025-03-28 12:26:26,000 ERROR django.request: Internal Server Error: /admin/dashboard/ [192.168.1.90]",
		).
		Add("other.log",
			"2025-03-28 12:30:00,000 CRITICAL django.request: POST /api/users",
			"not a log line",
		)

	result, err := newRealOrchestrator().Run(context.Background(), Config{Report: "handlers", Source: source})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Total requests: 4",
		"",
		"HANDLER              DEBUG    INFO    WARNING    ERROR    CRITICAL    ",
		"/admin/dashboard/    0        0       0          1        0           ",
		"/api/users           0        2       0          0        1           ",
		"                     0        2       0          1        1           ",
	}
	if diff := cmp.Diff(want, result.Lines); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if result.Inputs != 2 || result.LinesRead != 6 || result.Matched != 4 || result.Requests != 4 {
		t.Errorf("unexpected stats %+v", result)
	}
}

func TestOrchestrator_Run_EndToEnd_NoLines(t *testing.T) {
	result, err := newRealOrchestrator().Run(context.Background(), Config{Report: "handlers", Source: mocks.NewLineSource()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Lines) != 4 || result.Lines[0] != "Total requests: 0" {
		t.Errorf("unexpected empty report %q", result.Lines)
	}
}

func TestOrchestrator_Entry(t *testing.T) {
	source := mocks.NewLineSource().Add("a.log", "INFO django.request: GET /a")
	log := mocks.NewLogger()
	orch := newRealOrchestrator()

	stage := pipeline.Timed[Config, RunResult]("report", orch.Entry(), log)
	result, err := stage.Execute(context.Background(), Config{Report: "handlers", Source: source})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Requests != 1 {
		t.Errorf("expected 1 request, got %d", result.Requests)
	}
	if len(log.Messages(ports.LevelInfo)) != 1 {
		t.Error("expected one timing message")
	}
}
