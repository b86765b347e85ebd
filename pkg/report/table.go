package report

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/user/logreport/pkg/stats"
)

const (
	// DefaultPadding is added to the widest cell of every column.
	DefaultPadding = 4

	// HandlerHeader labels the path column.
	HandlerHeader = "HANDLER"
)

// TableFormatter renders the handlers report.
type TableFormatter struct {
	padding int
}

// Option configures a TableFormatter.
type Option func(*TableFormatter)

// WithPadding sets the number of spaces added after the widest cell of each column.
func WithPadding(n int) Option {
	return func(f *TableFormatter) {
		if n >= 0 {
			f.padding = n
		}
	}
}

// NewTableFormatter creates a TableFormatter with the default padding.
func NewTableFormatter(opts ...Option) *TableFormatter {
	f := &TableFormatter{padding: DefaultPadding}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders the summary line, a blank line, the header, one row per path
// in ascending order and a final row of per-level totals.
func (f *TableFormatter) Format(table stats.Table) []string {
	levels := stats.Levels()

	header := make([]string, 0, len(levels)+1)
	header = append(header, HandlerHeader)
	for _, l := range levels {
		header = append(header, l.String())
	}

	rows := [][]string{header}
	levelTotals := make([]int, len(levels))
	total := 0

	for _, path := range table.Paths() {
		row := make([]string, 0, len(levels)+1)
		row = append(row, path)
		for i, l := range levels {
			n := table.Count(path, l)
			row = append(row, strconv.Itoa(n))
			levelTotals[i] += n
			total += n
		}
		rows = append(rows, row)
	}

	totals := make([]string, 0, len(levels)+1)
	totals = append(totals, "")
	for _, n := range levelTotals {
		totals = append(totals, strconv.Itoa(n))
	}
	rows = append(rows, totals)

	widths := columnWidths(rows)
	for i := range widths {
		widths[i] += f.padding
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "Total requests: "+strconv.Itoa(total), "")
	for _, row := range rows {
		lines = append(lines, renderRow(row, widths))
	}
	return lines
}

// columnWidths returns the widest cell of each column, counted in runes.
func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// renderRow left-justifies every cell to its column width.
func renderRow(row []string, widths []int) string {
	var b strings.Builder
	for i, cell := range row {
		b.WriteString(cell)
		if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
