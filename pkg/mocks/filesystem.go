package mocks

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/user/logreport/pkg/ports"
)

// FileSystem is an in-memory implementation of ports.FileSystem.
type FileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	errors map[string]error

	opened []string
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		errors: make(map[string]error),
	}
}

// AddFile stores a file with the given content.
func (m *FileSystem) AddFile(path, content string) *FileSystem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(content)
	return m
}

// AddDir registers a directory.
func (m *FileSystem) AddDir(path string) *FileSystem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return m
}

// FailOn makes every operation on path return err.
func (m *FileSystem) FailOn(path string, err error) *FileSystem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path] = err
	return m
}

func (m *FileSystem) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errors[path]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if m.dirs[path] {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fmt.Errorf("is a directory")}
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	m.opened = append(m.opened, path)
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (m *FileSystem) Stat(path string) (ports.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.errors[path]; ok {
		return ports.FileInfo{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	if m.dirs[path] {
		return ports.FileInfo{IsDir: true}, nil
	}
	data, ok := m.files[path]
	if !ok {
		return ports.FileInfo{}, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return ports.FileInfo{Size: int64(len(data))}, nil
}

func (m *FileSystem) ListFiles(root string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.dirs[root] && root != "." {
		return nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist}
	}
	prefix := strings.TrimSuffix(root, "/") + "/"
	var out []string
	for path := range m.files {
		if root == "." && !strings.HasPrefix(path, "/") || strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Opened returns the paths opened so far, in order (for test verification).
func (m *FileSystem) Opened() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.opened...)
}

var _ ports.FileSystem = (*FileSystem)(nil)
