// Package report renders aggregated request counts as an aligned text table.
package report

import "github.com/user/logreport/pkg/stats"

// Formatter defines the interface for rendering a count table.
type Formatter interface {
	// Format converts a table to report lines, without line terminators.
	Format(table stats.Table) []string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(table stats.Table) []string

// Format implements the Formatter interface.
func (f FormatFunc) Format(table stats.Table) []string {
	return f(table)
}
