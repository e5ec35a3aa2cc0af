package events

import "github.com/dshills/linedit/internal/event/topic"

// TopicFileChanged is published when an open file changes on disk outside
// the editor.
const TopicFileChanged topic.Topic = "file.changed"

// FileChanged is the payload of TopicFileChanged.
type FileChanged struct {
	// Path is the open file that changed.
	Path string

	// Op is the file system operation, e.g. "WRITE" or "REMOVE".
	Op string

	// Modified reports whether the editor buffer has unsaved changes.
	Modified bool
}
