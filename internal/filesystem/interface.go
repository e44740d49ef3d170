package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability.
// The scanner performs its own recursive descent via ReadDir so traversal
// order and error propagation stay under its control.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	Exists(path string) bool
}
