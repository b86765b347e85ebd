package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/user/logreport/pkg/ports"
)

// residentMemory returns the resident set size of this process in bytes.
var residentMemory = func() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

// Timed wraps stage so that every execution logs its wall time and the
// process RSS once it returns. The wrapped stage is otherwise untouched.
func Timed[In, Out any](name string, stage Stage[In, Out], logger ports.Logger) Stage[In, Out] {
	return StageFunc[In, Out](func(ctx context.Context, input In) (Out, error) {
		start := time.Now()
		out, err := stage.Execute(ctx, input)
		elapsed := time.Since(start).Round(time.Millisecond)

		if rss, merr := residentMemory(); merr == nil {
			logger.Info("%s finished in %s (RSS %.1f MB)", name, elapsed, float64(rss)/1024/1024)
		} else {
			logger.Info("%s finished in %s", name, elapsed)
		}
		return out, err
	})
}
