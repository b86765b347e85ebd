// Package stats defines request events and the count table they aggregate into.
package stats

import "sort"

// Level is a log severity level.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// levels fixes the report column order. It must never be sorted.
var levels = [...]Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

// Levels returns the severity levels in report column order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// String returns the level token.
func (l Level) String() string {
	return string(l)
}

// Event is a single request occurrence extracted from a log line.
type Event struct {
	Path  string
	Level Level
}

// Table counts events by path and level. Missing cells count as zero.
type Table map[string]map[Level]int

// NewTable creates an empty Table.
func NewTable() Table {
	return make(Table)
}

// Accumulate records one occurrence of e.
func (t Table) Accumulate(e Event) {
	t.add(e.Path, e.Level, 1)
}

func (t Table) add(path string, level Level, n int) {
	row, ok := t[path]
	if !ok {
		row = make(map[Level]int)
		t[path] = row
	}
	row[level] += n
}

// Count returns the number of occurrences recorded for path at level.
func (t Table) Count(path string, level Level) int {
	return t[path][level]
}

// Paths returns every path in the table in ascending byte order.
func (t Table) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Total returns the sum of all cells.
func (t Table) Total() int {
	total := 0
	for _, row := range t {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// Merge returns a new table holding the cell-wise sum of a and b.
// Neither input is modified.
func Merge(a, b Table) Table {
	out := make(Table, len(a)+len(b))
	for _, src := range []Table{a, b} {
		for path, row := range src {
			for level, n := range row {
				out.add(path, level, n)
			}
		}
	}
	return out
}
