package activity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/linedit/internal/event"
	"github.com/dshills/linedit/internal/event/events"
	"github.com/dshills/linedit/internal/vfs"
)

// TimestampFormat is the layout of log timestamps.
const TimestampFormat = "20060102 15:04:05"

const logPerm fs.FileMode = 0644

var (
	// ErrNoLog is returned by Content when the file has no log yet.
	ErrNoLog = errors.New("log file does not exist")

	// ErrNoPath is returned when enabling logging for an unnamed file.
	ErrNoPath = errors.New("no file path")
)

// Logger receives warnings about log writes that failed.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Option configures a Manager.
type Option func(*Manager)

// WithFS sets the file system logs are written to.
func WithFS(fsys vfs.FS) Option {
	return func(m *Manager) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// WithLogger sets the logger that receives write failures.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

type fileState struct {
	enabled bool
	started bool
}

// Manager tracks which files have logging enabled and writes their logs.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	files  map[string]*fileState
	fs     vfs.FS
	logger Logger
	now    func() time.Time
}

// NewManager creates a Manager with logging disabled for every file.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		files:  make(map[string]*fileState),
		fs:     vfs.NewOSFS(),
		logger: nopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LogPath returns the log file path for path: ".<name>.log" in the same
// directory.
func LogPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".log")
}

// Enable turns logging on for path. The first time logging is enabled for
// a file in this process a session start line is written.
func (m *Manager) Enable(path string) error {
	if path == "" {
		return ErrNoPath
	}

	m.mu.Lock()
	st := m.state(path)
	st.enabled = true
	startSession := !st.started
	st.started = true
	m.mu.Unlock()

	if startSession {
		m.write(path, "session start at "+m.now().Format(TimestampFormat))
	}
	return nil
}

// Disable turns logging off for path.
func (m *Manager) Disable(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.files[path]; ok {
		st.enabled = false
	}
}

// IsEnabled reports whether logging is on for path.
func (m *Manager) IsEnabled(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.files[path]
	return ok && st.enabled
}

// Forget drops all state for path. Enabling logging for it again starts a
// new session.
func (m *Manager) Forget(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

// Record appends a timestamped entry to the log of path if logging is
// enabled for it.
func (m *Manager) Record(path, entry string) {
	if !m.IsEnabled(path) {
		return
	}
	m.write(path, m.now().Format(TimestampFormat)+" "+entry)
}

// Handle implements event.Handler for events.CommandApplied. It never
// returns an error.
func (m *Manager) Handle(_ context.Context, ev any) error {
	if e, ok := ev.(event.Event[events.CommandApplied]); ok {
		m.Record(e.Payload.Source, e.Payload.Entry())
	}
	return nil
}

// Attach subscribes the manager to command notifications on bus.
func (m *Manager) Attach(bus *event.Bus) (*event.Subscription, error) {
	return bus.Subscribe(events.TopicCommandApplied, m)
}

// Content returns the full log of path.
func (m *Manager) Content(path string) (string, error) {
	logPath := LogPath(path)
	if logPath == "" {
		return "", ErrNoPath
	}
	data, err := m.fs.ReadFile(logPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", logPath, ErrNoLog)
		}
		return "", fmt.Errorf("read log %s: %w", logPath, err)
	}
	return string(data), nil
}

func (m *Manager) state(path string) *fileState {
	st, ok := m.files[path]
	if !ok {
		st = &fileState{}
		m.files[path] = st
	}
	return st
}

func (m *Manager) write(path, line string) {
	logPath := LogPath(path)
	if err := m.fs.AppendFile(logPath, []byte(line+"\n"), logPerm); err != nil {
		m.logger.Warn("cannot write log file %s: %v", logPath, err)
	}
}
