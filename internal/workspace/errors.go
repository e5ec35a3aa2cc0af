package workspace

import "errors"

// Errors returned by workspace operations.
var (
	// ErrFileExists is returned by Init when the file is on disk or open.
	ErrFileExists = errors.New("file already exists")

	// ErrNotOpen is returned when a named file is not open.
	ErrNotOpen = errors.New("file is not open")

	// ErrNoActiveFile is returned when an operation needs an active file
	// and none is open.
	ErrNoActiveFile = errors.New("no active file")

	// ErrNotDir is returned by DirTree for a path that is not a directory.
	ErrNotDir = errors.New("not a directory")
)
