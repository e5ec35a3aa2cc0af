// Package vfs provides the small file system abstraction used by buffers,
// the workspace and the activity log.
//
// The FS interface lets the editor run against the operating system or an
// in-memory file system, which keeps tests hermetic:
//
//	fsys := vfs.NewMemFS()
//	_ = fsys.AddFile("/notes/todo.txt", "buy milk\n")
//	data, _ := fsys.ReadFile("/notes/todo.txt")
//
// Missing files are always reported with an error matching fs.ErrNotExist.
package vfs

import (
	"io/fs"
	"time"
)

// FS is a virtual file system abstraction.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces the file content so that a failure leaves
	// the previous content in place.
	WriteFileAtomic(path string, data []byte, perm fs.FileMode) error

	// AppendFile appends data to a file, creating it if necessary.
	AppendFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// ReadDir reads a directory and returns its entries sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm fs.FileMode) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{
		path:    path,
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
		isDir:   isDir,
	}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the file size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir returns true if this is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }

// IsHidden reports whether the entry name starts with a dot.
func (fi FileInfo) IsHidden() bool {
	return len(fi.name) > 0 && fi.name[0] == '.'
}
