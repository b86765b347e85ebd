package logfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestFile_WritePrefixesTimestamp(t *testing.T) {
	buf := &bufferCloser{}
	f := newFile(buf)
	f.now = func() time.Time { return time.Date(2025, 3, 28, 12, 44, 46, 0, time.UTC) }

	n, err := f.Write([]byte("INFO  report done\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len("INFO  report done\n") {
		t.Errorf("Write returned %d", n)
	}
	if want := "[2025-03-28 12:44:46] INFO  report done\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !buf.closed {
		t.Error("expected underlying writer to be closed")
	}
}

func TestNew_WritesToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logreport.log")

	f := New(path, DefaultOptions())
	if _, err := f.Write([]byte("ERROR Source not found: a.log\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.HasSuffix(string(data), "] ERROR Source not found: a.log\n") {
		t.Errorf("unexpected log file content %q", data)
	}
}
