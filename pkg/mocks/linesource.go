package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/user/logreport/pkg/ports"
)

// LineSource is a mock implementation of ports.LineSource backed by fixed lines.
type LineSource struct {
	mu      sync.Mutex
	order   []string
	lines   map[string][]string
	scanned []string

	InputsFunc func(ctx context.Context) ([]string, error)
}

// NewLineSource creates an empty mock LineSource.
func NewLineSource() *LineSource {
	return &LineSource{lines: make(map[string][]string)}
}

// Add registers an input and its lines.
func (m *LineSource) Add(input string, lines ...string) *LineSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[input]; !ok {
		m.order = append(m.order, input)
	}
	m.lines[input] = append(m.lines[input], lines...)
	return m
}

func (m *LineSource) Inputs(ctx context.Context) ([]string, error) {
	if m.InputsFunc != nil {
		return m.InputsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...), nil
}

func (m *LineSource) Scan(ctx context.Context, input string, fn func(line string)) error {
	m.mu.Lock()
	lines := m.lines[input]
	m.scanned = append(m.scanned, input)
	m.mu.Unlock()

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(line)
	}
	return nil
}

// Scanned returns the scanned inputs, sorted (workers finish in any order).
func (m *LineSource) Scanned() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]string(nil), m.scanned...)
	sort.Strings(out)
	return out
}

var _ ports.LineSource = (*LineSource)(nil)
