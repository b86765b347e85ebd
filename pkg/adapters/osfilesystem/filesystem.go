// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/user/logreport/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// Open opens a file for reading.
func (fsys *FileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Stat returns information about a file.
func (fsys *FileSystem) Stat(path string) (ports.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.FileInfo{}, err
	}
	return ports.FileInfo{Size: info.Size(), IsDir: info.IsDir()}, nil
}

// ListFiles returns every non-directory entry below root.
func (fsys *FileSystem) ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are left out; the root itself must be readable.
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
