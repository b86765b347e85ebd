package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/logreport/pkg/mocks"
	"github.com/user/logreport/pkg/ports"
)

func TestTimed_PassesThrough(t *testing.T) {
	log := mocks.NewLogger()
	calls := 0
	inner := StageFunc[int, string](func(ctx context.Context, n int) (string, error) {
		calls++
		return strings.Repeat("x", n), nil
	})

	got, err := Timed[int, string]("report", inner, log).Execute(context.Background(), 3)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "xxx" || calls != 1 {
		t.Errorf("got %q after %d calls", got, calls)
	}

	msgs := log.Messages(ports.LevelInfo)
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0], "report finished in ") {
		t.Errorf("unexpected timing messages %q", msgs)
	}
}

func TestTimed_PropagatesError(t *testing.T) {
	log := mocks.NewLogger()
	boom := errors.New("boom")
	inner := StageFunc[int, int](func(context.Context, int) (int, error) {
		return 0, boom
	})

	_, err := Timed[int, int]("report", inner, log).Execute(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped stage error, got %v", err)
	}
	if len(log.Messages(ports.LevelInfo)) != 1 {
		t.Error("expected timing to be logged on failure too")
	}
}

func TestTimed_WithoutMemoryInfo(t *testing.T) {
	orig := residentMemory
	residentMemory = func() (uint64, error) { return 0, errors.New("unsupported") }
	defer func() { residentMemory = orig }()

	log := mocks.NewLogger()
	inner := StageFunc[int, int](func(_ context.Context, n int) (int, error) { return n, nil })

	if _, err := Timed[int, int]("report", inner, log).Execute(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	msgs := log.Messages(ports.LevelInfo)
	if len(msgs) != 1 || strings.Contains(msgs[0], "RSS") {
		t.Errorf("unexpected timing messages %q", msgs)
	}
}
