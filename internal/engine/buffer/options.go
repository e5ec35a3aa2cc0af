package buffer

import "github.com/dshills/linedit/internal/vfs"

// Option configures a Buffer.
type Option func(*Buffer)

// WithPath sets the file the buffer is associated with.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithFS sets the file system used by Load and Save.
// The default is the operating system file system.
func WithFS(fsys vfs.FS) Option {
	return func(b *Buffer) {
		if fsys != nil {
			b.fs = fsys
		}
	}
}
