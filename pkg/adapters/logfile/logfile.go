// Package logfile writes diagnostic logs to a size-rotated file.
package logfile

import (
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// TimestampFormat prefixes every line written to the file.
const TimestampFormat = "2006-01-02 15:04:05"

// Options controls rotation of the log file.
type Options struct {
	MaxSizeMB  int // rotate after this many megabytes
	MaxBackups int // rotated files to keep
	Compress   bool
}

// DefaultOptions returns rotation settings suitable for a CLI run.
func DefaultOptions() Options {
	return Options{
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// File is an io.WriteCloser that timestamps each write before it reaches
// the rotating file.
type File struct {
	mu  sync.Mutex
	w   io.WriteCloser
	now func() time.Time
}

// New opens (lazily, on first write) a rotating log file at path.
func New(path string, opts Options) *File {
	return newFile(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	})
}

func newFile(w io.WriteCloser) *File {
	return &File{w: w, now: time.Now}
}

// Write prefixes p with the current time. p is expected to hold one line.
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stamp := "[" + f.now().Format(TimestampFormat) + "] "
	line := make([]byte, 0, len(stamp)+len(p))
	line = append(line, stamp...)
	line = append(line, p...)
	if _, err := f.w.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.w.Close()
}
