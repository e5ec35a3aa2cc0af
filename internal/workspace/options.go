package workspace

import (
	"time"

	"github.com/dshills/linedit/internal/activity"
	"github.com/dshills/linedit/internal/engine/history"
	"github.com/dshills/linedit/internal/vfs"
)

// DefaultMarker is the first line that switches on logging for a file.
const DefaultMarker = "# log"

// DefaultStateFile is where the session memento is persisted.
const DefaultStateFile = ".editor_workspace"

// Logger receives diagnostic messages.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// FileWatcher is told which files are open so it can report external
// changes. *watcher.Watcher satisfies it.
type FileWatcher interface {
	Add(path string) error
	Remove(path string) error
	Mute(path string, d time.Duration)
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithFS sets the file system for buffers, state and directory listings.
func WithFS(fsys vfs.FS) Option {
	return func(w *Workspace) {
		if fsys != nil {
			w.fs = fsys
		}
	}
}

// WithActivity sets the activity log manager.
func WithActivity(m *activity.Manager) Option {
	return func(w *Workspace) {
		if m != nil {
			w.activity = m
		}
	}
}

// WithNotifier sets the notifier that receives edit and file notifications.
func WithNotifier(n history.Notifier) Option {
	return func(w *Workspace) {
		w.notifier = n
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMarker sets the first-line marker that enables logging. An empty
// marker disables the feature.
func WithMarker(marker string) Option {
	return func(w *Workspace) {
		w.marker = marker
	}
}

// WithStateFile sets the path of the persisted session memento.
func WithStateFile(path string) Option {
	return func(w *Workspace) {
		if path != "" {
			w.stateFile = path
		}
	}
}

// WithWatcher registers open files with fw.
func WithWatcher(fw FileWatcher) Option {
	return func(w *Workspace) {
		w.watcher = fw
	}
}

// WithLogByDefault enables the activity log for every file opened.
func WithLogByDefault(enabled bool) Option {
	return func(w *Workspace) {
		w.logByDefault = enabled
	}
}
