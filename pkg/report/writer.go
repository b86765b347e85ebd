package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteLines joins lines with newlines and writes them with a final newline.
func WriteLines(out io.Writer, lines []string) error {
	if _, err := io.WriteString(out, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
