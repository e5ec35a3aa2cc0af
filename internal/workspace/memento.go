package workspace

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/goccy/go-json"
)

const stateFilePerm fs.FileMode = 0644

// Memento is the persisted state of a workspace session.
type Memento struct {
	OpenedFiles   []string        `json:"opened_files"`
	ActiveFile    string          `json:"active_file"`
	ModifiedFiles []string        `json:"modified_files"`
	LoggingStatus map[string]bool `json:"logging_status"`
}

// StateFile returns the path the memento is persisted to.
func (w *Workspace) StateFile() string {
	return w.stateFile
}

// Snapshot captures the current session.
func (w *Workspace) Snapshot() Memento {
	w.mu.Lock()
	defer w.mu.Unlock()

	m := Memento{
		OpenedFiles:   make([]string, 0, len(w.order)),
		ActiveFile:    w.active,
		ModifiedFiles: []string{},
		LoggingStatus: make(map[string]bool, len(w.order)),
	}
	for _, path := range w.order {
		m.OpenedFiles = append(m.OpenedFiles, path)
		if w.editors[path].Buffer.IsModified() {
			m.ModifiedFiles = append(m.ModifiedFiles, path)
		}
		m.LoggingStatus[path] = w.activity.IsEnabled(path)
	}
	return m
}

// Persist writes the session memento to the state file.
func (w *Workspace) Persist() error {
	data, err := json.MarshalIndent(w.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode workspace state: %w", err)
	}
	if err := w.fs.WriteFileAtomic(w.stateFile, data, stateFilePerm); err != nil {
		return fmt.Errorf("write workspace state: %w", err)
	}
	return nil
}

// ReadMemento reads the persisted memento. It returns nil and no error when
// the state file does not exist.
func (w *Workspace) ReadMemento() (*Memento, error) {
	data, err := w.fs.ReadFile(w.stateFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace state: %w", err)
	}

	var m Memento
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode workspace state %s: %w", w.stateFile, err)
	}
	return &m, nil
}

// Restore reopens the session saved in the state file and returns the
// paths that were reopened. Files that no longer exist are skipped.
// Unsaved edits are not part of the memento, so a file recorded as
// modified is reloaded from disk and only flagged modified again.
func (w *Workspace) Restore() ([]string, error) {
	m, err := w.ReadMemento()
	if err != nil || m == nil {
		return nil, err
	}
	return w.Apply(*m), nil
}

// Apply reopens the files of m and returns the paths that were reopened.
func (w *Workspace) Apply(m Memento) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	modified := make(map[string]bool, len(m.ModifiedFiles))
	for _, p := range m.ModifiedFiles {
		modified[cleanPath(p)] = true
	}

	var reopened []string
	for _, p := range m.OpenedFiles {
		path := cleanPath(p)
		if path == "" || !w.fs.Exists(path) {
			w.logger.Debug("skip restoring %s: file not found", p)
			continue
		}
		if _, ok := w.editors[path]; !ok {
			if err := w.openLocked(path); err != nil {
				w.logger.Warn("restore %s: %v", path, err)
				continue
			}
		}

		ed := w.editors[path]
		if modified[path] {
			ed.Buffer.SetModified(true)
		}
		if m.LoggingStatus[p] || m.LoggingStatus[path] {
			w.enableLog(path)
		}
		w.activateLocked(path)
		reopened = append(reopened, path)
	}

	if active := cleanPath(m.ActiveFile); active != "" {
		if _, ok := w.editors[active]; ok {
			w.activateLocked(active)
		}
	}
	return reopened
}
