package report

import (
	"errors"
	"fmt"
)

// Kind names a report type.
type Kind string

// KindHandlers counts requests per handler path and severity level.
const KindHandlers Kind = "handlers"

// ErrUnsupportedKind is returned for report names other than the supported ones.
var ErrUnsupportedKind = errors.New("unsupported report type")

// Kinds returns the supported report kinds.
func Kinds() []Kind {
	return []Kind{KindHandlers}
}

// ParseKind validates a report name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}
