package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/dshills/linedit/internal/activity"
	"github.com/dshills/linedit/internal/engine/buffer"
	"github.com/dshills/linedit/internal/engine/history"
	"github.com/dshills/linedit/internal/event/events"
	"github.com/dshills/linedit/internal/vfs"
)

// saveMute is how long the watcher ignores a file after the editor writes it.
const saveMute = 500 * time.Millisecond

// Workspace is the set of open editors and the active one.
type Workspace struct {
	mu sync.Mutex

	editors map[string]*Editor
	order   []string // open order
	recent  []string // least recently used first
	active  string

	fs           vfs.FS
	activity     *activity.Manager
	notifier     history.Notifier
	logger       Logger
	watcher      FileWatcher
	marker       string
	stateFile    string
	logByDefault bool
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		editors:   make(map[string]*Editor),
		fs:        vfs.NewOSFS(),
		logger:    nopLogger{},
		marker:    DefaultMarker,
		stateFile: DefaultStateFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.activity == nil {
		w.activity = activity.NewManager(activity.WithFS(w.fs))
	}
	return w
}

// Activity returns the activity log manager.
func (w *Workspace) Activity() *activity.Manager {
	return w.activity
}

// Load opens path and makes it active. A file that is already open is
// only activated. A missing file opens as a new, modified, empty buffer.
func (w *Workspace) Load(path string) error {
	path = cleanPath(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.editors[path]; ok {
		w.activateLocked(path)
		return nil
	}
	if err := w.openLocked(path); err != nil {
		return err
	}
	w.activateLocked(path)
	w.announce(path, "load "+path)
	return nil
}

// openLocked loads path from disk into a new editor.
func (w *Workspace) openLocked(path string) error {
	buf := buffer.NewBuffer(buffer.WithFS(w.fs))
	if err := buf.Load(path); err != nil {
		return err
	}

	ed := w.addEditorLocked(path, buf)
	if w.hasMarker(ed.Buffer) || w.logByDefault {
		w.enableLog(path)
	}
	return nil
}

// Init creates a new buffer for path, which must not exist on disk or be
// open. With withLog the marker line is added as the first line (not as an
// undoable edit) and logging is enabled.
func (w *Workspace) Init(path string, withLog bool) error {
	path = cleanPath(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.editors[path]; ok || w.fs.Exists(path) {
		return fmt.Errorf("init %s: %w", path, ErrFileExists)
	}

	buf := buffer.NewBuffer(buffer.WithFS(w.fs), buffer.WithPath(path))
	buf.SetModified(true)
	if withLog && w.marker != "" {
		buf.Append(w.marker)
	}

	w.addEditorLocked(path, buf)
	if withLog || w.logByDefault {
		w.enableLog(path)
	}
	w.activateLocked(path)

	desc := "init " + path
	if withLog {
		desc += " with-log"
	}
	w.announce(path, desc)
	return nil
}

// Save writes the named open file, or the active file when path is empty.
func (w *Workspace) Save(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.resolveLocked(path)
	if err != nil {
		return err
	}
	if err := w.saveLocked(ed); err != nil {
		return err
	}

	desc := "save"
	if path != "" {
		desc = "save " + ed.path
	}
	w.announce(ed.path, desc)
	return nil
}

// SaveAll writes every open file. All files are attempted; the returned
// error joins every failure.
func (w *Workspace) SaveAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for _, path := range w.order {
		ed := w.editors[path]
		if err := w.saveLocked(ed); err != nil {
			errs = append(errs, err)
			continue
		}
		w.announce(path, "save all")
	}
	return errors.Join(errs...)
}

func (w *Workspace) saveLocked(ed *Editor) error {
	if w.watcher != nil {
		w.watcher.Mute(ed.path, saveMute)
	}
	return ed.Buffer.Save("")
}

// Close closes the named file, or the active file when path is empty. With
// saveFirst a modified file is saved before closing, and a failed save
// keeps it open. The most recently used remaining file becomes active.
func (w *Workspace) Close(path string, saveFirst bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.resolveLocked(path)
	if err != nil {
		return err
	}
	if saveFirst && ed.Buffer.IsModified() {
		if err := w.saveLocked(ed); err != nil {
			return err
		}
	}

	w.announce(ed.path, "close "+ed.path)
	w.activity.Forget(ed.path)
	if w.watcher != nil {
		if err := w.watcher.Remove(ed.path); err != nil {
			w.logger.Debug("unwatch %s: %v", ed.path, err)
		}
	}

	delete(w.editors, ed.path)
	w.order = slices.DeleteFunc(w.order, func(p string) bool { return p == ed.path })
	w.recent = slices.DeleteFunc(w.recent, func(p string) bool { return p == ed.path })
	if w.active == ed.path {
		w.active = ""
		if n := len(w.recent); n > 0 {
			w.active = w.recent[n-1]
		}
	}
	return nil
}

// Edit makes an open file active.
func (w *Workspace) Edit(path string) error {
	path = cleanPath(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.editors[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	w.activateLocked(path)
	return nil
}

// List describes the open editors in the order they were opened.
func (w *Workspace) List() []EditorInfo {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]EditorInfo, 0, len(w.order))
	for _, path := range w.order {
		out = append(out, EditorInfo{
			Path:     path,
			Modified: w.editors[path].Buffer.IsModified(),
			Active:   path == w.active,
		})
	}
	return out
}

// Active returns the active editor.
func (w *Workspace) Active() (*Editor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeLocked()
}

// ActivePath returns the path of the active file, or "" if none.
func (w *Workspace) ActivePath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Editor returns the editor for an open file.
func (w *Workspace) Editor(path string) (*Editor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resolveLocked(path)
}

// IsOpen reports whether path is open. Relative and absolute spellings of
// the same file are treated alike.
func (w *Workspace) IsOpen(path string) bool {
	_, ok := w.Find(path)
	return ok
}

// Find returns the listing entry of the open file at path.
func (w *Workspace) Find(path string) (EditorInfo, bool) {
	target := absPath(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.order {
		if absPath(p) == target {
			return EditorInfo{
				Path:     p,
				Modified: w.editors[p].Buffer.IsModified(),
				Active:   p == w.active,
			}, true
		}
	}
	return EditorInfo{}, false
}

// ModifiedFiles returns the open files with unsaved changes.
func (w *Workspace) ModifiedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []string
	for _, path := range w.order {
		if w.editors[path].Buffer.IsModified() {
			out = append(out, path)
		}
	}
	return out
}

// Edit helpers

// Append appends text to the active file.
func (w *Workspace) Append(text string) error {
	return w.execute(func(b *buffer.Buffer) history.Command {
		return history.NewAppendCommand(b, text)
	})
}

// Insert inserts text into the active file.
func (w *Workspace) Insert(line, col int, text string) error {
	return w.execute(func(b *buffer.Buffer) history.Command {
		return history.NewInsertCommand(b, line, col, text)
	})
}

// Delete deletes characters from the active file.
func (w *Workspace) Delete(line, col, length int) error {
	return w.execute(func(b *buffer.Buffer) history.Command {
		return history.NewDeleteCommand(b, line, col, length)
	})
}

// Replace replaces characters in the active file.
func (w *Workspace) Replace(line, col, length int, text string) error {
	return w.execute(func(b *buffer.Buffer) history.Command {
		return history.NewReplaceCommand(b, line, col, length, text)
	})
}

// execute runs an edit on the active file. The history notifier fires while
// w.mu is held; notifier subscribers must not call back into the Workspace.
func (w *Workspace) execute(build func(*buffer.Buffer) history.Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.activeLocked()
	if err != nil {
		return err
	}
	return ed.History.Execute(build(ed.Buffer))
}

// Undo undoes the last edit of the active file.
func (w *Workspace) Undo() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.activeLocked()
	if err != nil {
		return err
	}
	return ed.History.Undo()
}

// Redo redoes the last undone edit of the active file.
func (w *Workspace) Redo() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.activeLocked()
	if err != nil {
		return err
	}
	return ed.History.Redo()
}

// Show returns lines start..end of the active file formatted for display.
// With start and end both zero the whole file is returned.
func (w *Workspace) Show(start, end int) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.activeLocked()
	if err != nil {
		return nil, err
	}
	if start == 0 && end == 0 {
		return ed.Buffer.ShowAll(), nil
	}
	return ed.Buffer.Show(start, end), nil
}

// Activity log

// LogOn enables the activity log of the named open file, or the active file.
func (w *Workspace) LogOn(path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.resolveLocked(path)
	if err != nil {
		return "", err
	}
	if err := w.activity.Enable(ed.path); err != nil {
		return "", err
	}
	return ed.path, nil
}

// LogOff disables the activity log of the named open file, or the active file.
func (w *Workspace) LogOff(path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed, err := w.resolveLocked(path)
	if err != nil {
		return "", err
	}
	w.activity.Disable(ed.path)
	return ed.path, nil
}

// LogShow returns the activity log of path, or of the active file. The
// file does not need to be open.
func (w *Workspace) LogShow(path string) (string, error) {
	w.mu.Lock()
	if path == "" {
		if w.active == "" {
			w.mu.Unlock()
			return "", ErrNoActiveFile
		}
		path = w.active
	}
	w.mu.Unlock()

	return w.activity.Content(cleanPath(path))
}

// helpers

func (w *Workspace) addEditorLocked(path string, buf *buffer.Buffer) *Editor {
	buf.SetPath(path)
	opts := []history.LogOption{history.WithSource(path)}
	if w.notifier != nil {
		opts = append(opts, history.WithNotifier(w.notifier))
	}

	ed := &Editor{path: path, Buffer: buf, History: history.NewLog(opts...)}
	w.editors[path] = ed
	w.order = append(w.order, path)

	if w.watcher != nil {
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("cannot watch %s: %v", path, err)
		}
	}
	return ed
}

func (w *Workspace) activateLocked(path string) {
	w.active = path
	w.recent = slices.DeleteFunc(w.recent, func(p string) bool { return p == path })
	w.recent = append(w.recent, path)
}

func (w *Workspace) activeLocked() (*Editor, error) {
	if w.active == "" {
		return nil, ErrNoActiveFile
	}
	return w.editors[w.active], nil
}

// resolveLocked returns the editor for path, or the active editor when path
// is empty.
func (w *Workspace) resolveLocked(path string) (*Editor, error) {
	if path == "" {
		return w.activeLocked()
	}
	path = cleanPath(path)
	ed, ok := w.editors[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOpen)
	}
	return ed, nil
}

func (w *Workspace) hasMarker(buf *buffer.Buffer) bool {
	if w.marker == "" {
		return false
	}
	first, err := buf.Line(1)
	return err == nil && first == w.marker
}

func (w *Workspace) enableLog(path string) {
	if err := w.activity.Enable(path); err != nil {
		w.logger.Warn("enable log for %s: %v", path, err)
	}
}

// announce reports a file-level action to the notifier. It is called with
// w.mu held, like the history notifications.
func (w *Workspace) announce(path, desc string) {
	if w.notifier == nil {
		return
	}
	w.notifier.Notify(events.CommandApplied{
		Source:      path,
		Action:      events.ActionFile,
		Description: desc,
	})
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
