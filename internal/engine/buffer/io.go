package buffer

import (
	"errors"
	"io/fs"
)

// filePerm is the mode used for newly written files.
const filePerm fs.FileMode = 0644

// Load replaces the buffer content with the content of the file at path.
//
// A missing file is not an error: the buffer becomes empty and modified,
// ready to be saved as a new file. Any other read failure returns an
// *IOError and leaves the buffer untouched.
func (b *Buffer) Load(path string) error {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.lines = nil
			b.path = path
			b.modified = true
			return nil
		}
		return &IOError{Op: "load", Path: path, Err: err}
	}

	b.lines = splitContent(string(data))
	b.path = path
	b.modified = false
	return nil
}

// Save writes the buffer to path, or to the buffer's own path when path is
// empty. Lines are joined by Separator with no trailing separator. The write
// is atomic; on failure the file on disk and the buffer are unchanged.
func (b *Buffer) Save(path string) error {
	if path == "" {
		path = b.path
	}
	if path == "" {
		return ErrNoPath
	}

	if err := b.fs.WriteFileAtomic(path, []byte(b.Content()), filePerm); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	b.path = path
	b.modified = false
	return nil
}
