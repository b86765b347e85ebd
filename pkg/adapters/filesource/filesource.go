// Package filesource implements ports.LineSource over files, with a
// configurable policy for inputs that cannot be read.
package filesource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/user/logreport/pkg/ports"
)

// Policy decides when unusable inputs are detected.
type Policy int

const (
	// LazySkip opens each input when it is scanned and skips it on failure.
	LazySkip Policy = iota
	// EagerValidate checks every input before any line is read and drops the
	// unusable ones. It fails the run when none remain.
	EagerValidate
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case LazySkip:
		return "lazy"
	case EagerValidate:
		return "eager"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
	ErrUnknownPolicy = errors.New("unknown source policy")

	// ErrNoUsableSources is returned by Inputs under EagerValidate when every
	// input was rejected.
	ErrNoUsableSources = errors.New("no usable log sources")
)

// ParsePolicy converts "lazy" or "eager" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "lazy", "":
		return LazySkip, nil
	case "eager":
		return EagerValidate, nil
	default:
		return LazySkip, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

const (
	initialBufferSize = 64 * 1024
	// MaxLineSize is the longest line a source may contain.
	MaxLineSize = 1024 * 1024
)

// Source reads log lines from files named on the command line.
type Source struct {
	fs       ports.FileSystem
	logger   ports.Logger
	policy   Policy
	patterns []string
}

// New creates a Source over the given paths. A path containing glob
// metacharacters is expanded to the files it matches.
func New(fsys ports.FileSystem, logger ports.Logger, policy Policy, paths []string) *Source {
	return &Source{
		fs:       fsys,
		logger:   logger.WithComponent("source"),
		policy:   policy,
		patterns: append([]string(nil), paths...),
	}
}

// Inputs expands patterns and, under EagerValidate, drops unusable inputs.
// A path that names an existing file or directory is taken literally even
// when it contains glob metacharacters.
func (s *Source) Inputs(ctx context.Context) ([]string, error) {
	var inputs []string
	for _, p := range s.patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isPattern(p) || s.exists(p) {
			inputs = append(inputs, p)
			continue
		}

		matches, err := s.expand(p)
		if err != nil {
			s.logger.Error("Cannot expand pattern %s: %s", p, err)
			continue
		}
		if len(matches) == 0 {
			s.logger.Warn("No files match pattern %s", p)
			continue
		}
		inputs = append(inputs, matches...)
	}

	if s.policy == EagerValidate {
		inputs = s.validate(inputs)
		if len(inputs) == 0 {
			return nil, ErrNoUsableSources
		}
	}
	return inputs, nil
}

// Scan streams the lines of one input. Read failures are logged and end the
// input early; lines already delivered are kept.
func (s *Source) Scan(ctx context.Context, input string, fn func(line string)) error {
	f, err := s.fs.Open(input)
	if err != nil {
		s.logOpenError(input, err)
		return nil
	}
	defer f.Close()

	s.logger.Debug("Reading source %s", input)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, initialBufferSize), MaxLineSize)

	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(strings.ToValidUTF8(scanner.Text(), "\uFFFD"))
		n++
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("Failed to read source %s: %s", input, err)
		return nil
	}

	if n == 0 {
		s.logger.Warn("Source is empty: %s", input)
		return nil
	}
	s.logger.Debug("Finished source %s", input)
	return nil
}

// validate keeps the inputs that exist, are regular non-empty files and can
// be opened.
func (s *Source) validate(inputs []string) []string {
	usable := make([]string, 0, len(inputs))
	for _, input := range inputs {
		info, err := s.fs.Stat(input)
		if err != nil {
			s.logOpenError(input, err)
			continue
		}
		if info.IsDir {
			s.logger.Error("Source is a directory: %s", input)
			continue
		}
		if info.Size == 0 {
			s.logger.Warn("Source is empty: %s", input)
			continue
		}
		f, err := s.fs.Open(input)
		if err != nil {
			s.logOpenError(input, err)
			continue
		}
		f.Close()
		usable = append(usable, input)
	}
	return usable
}

func (s *Source) logOpenError(input string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Error("Source not found: %s", input)
	case errors.Is(err, fs.ErrPermission):
		s.logger.Error("Permission denied: %s", input)
	default:
		s.logger.Error("Failed to read source %s: %s", input, err)
	}
}

// expand lists the files below the pattern's static prefix that match it.
func (s *Source) expand(pattern string) ([]string, error) {
	pattern = path.Clean(filepath.ToSlash(pattern))

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}

	files, err := s.fs.ListFiles(staticRoot(pattern))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var matches []string
	for _, f := range files {
		if g.Match(f) {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

func (s *Source) exists(p string) bool {
	_, err := s.fs.Stat(p)
	return err == nil
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// staticRoot returns the directory part of pattern that precedes its first
// metacharacter.
func staticRoot(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{")
	if i < 0 {
		return path.Dir(pattern)
	}
	j := strings.LastIndex(pattern[:i], "/")
	switch {
	case j < 0:
		return "."
	case j == 0:
		return "/"
	default:
		return pattern[:j]
	}
}

var _ ports.LineSource = (*Source)(nil)
