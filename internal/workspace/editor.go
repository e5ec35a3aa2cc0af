package workspace

import (
	"github.com/dshills/linedit/internal/engine/buffer"
	"github.com/dshills/linedit/internal/engine/history"
)

// Editor is an open file: its buffer and its command log.
type Editor struct {
	path    string
	Buffer  *buffer.Buffer
	History *history.Log
}

// Path returns the file path the editor was opened with.
func (e *Editor) Path() string {
	return e.path
}

// EditorInfo describes an open editor for listings.
type EditorInfo struct {
	Path     string
	Modified bool
	Active   bool
}
