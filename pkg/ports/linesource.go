package ports

import "context"

// LineSource supplies raw text lines from a bounded, ordered list of inputs.
// It owns the policy for inputs that cannot be read.
type LineSource interface {
	// Inputs resolves the configured identifiers into the ordered list of
	// inputs to read. It fails only when the policy rejects the whole run.
	Inputs(ctx context.Context) ([]string, error)

	// Scan calls fn for every line of input, without its line terminator.
	// An unreadable input is logged and skipped; the returned error is
	// non-nil only when ctx is done.
	Scan(ctx context.Context, input string, fn func(line string)) error
}
