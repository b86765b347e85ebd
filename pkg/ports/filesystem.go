package ports

import "io"

// FileInfo describes a file without exposing the os package.
type FileInfo struct {
	Size  int64
	IsDir bool
}

// FileSystem abstracts the read-only file operations used to load log sources.
// Errors wrap fs.ErrNotExist and fs.ErrPermission where applicable.
type FileSystem interface {
	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)

	// Stat returns information about a file.
	Stat(path string) (FileInfo, error)

	// ListFiles returns every regular file below root, recursively,
	// using forward slashes and sorted lexically.
	ListFiles(root string) ([]string, error)
}
