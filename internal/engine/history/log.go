package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/linedit/internal/event/events"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNilCommand    = errors.New("nil command")
)

// Notifier receives a notification after every successful state change.
type Notifier interface {
	Notify(ev events.CommandApplied)
}

// NotifierFunc is a function adapter for Notifier.
type NotifierFunc func(ev events.CommandApplied)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ev events.CommandApplied) {
	f(ev)
}

// OperationInfo describes a command on one of the stacks.
type OperationInfo struct {
	Description string
	Kind        Kind
	Timestamp   time.Time
}

// entry wraps a command with metadata.
type entry struct {
	command   Command
	timestamp time.Time
}

func (e *entry) info() OperationInfo {
	return OperationInfo{
		Description: e.command.Description(),
		Kind:        e.command.Kind(),
		Timestamp:   e.timestamp,
	}
}

// LogOption configures a Log.
type LogOption func(*Log)

// WithNotifier sets the notifier called after each successful execute,
// undo and redo.
func WithNotifier(n Notifier) LogOption {
	return func(l *Log) {
		l.notifier = n
	}
}

// WithSource sets the file path reported in notifications.
func WithSource(path string) LogOption {
	return func(l *Log) {
		l.source = path
	}
}

// Log manages the undo and redo stacks of one buffer.
type Log struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	notifier Notifier
	source   string
}

// NewLog creates an empty command log.
func NewLog(opts ...LogOption) *Log {
	l := &Log{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the file path reported in notifications.
func (l *Log) Source() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source
}

// SetSource changes the file path reported in notifications.
func (l *Log) SetSource(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.source = path
}

// Execute runs cmd. On success the command is pushed onto the undo stack
// and the redo stack is cleared. On failure nothing is recorded and the
// command's error is returned as is.
func (l *Log) Execute(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := cmd.Execute(); err != nil {
		return err
	}

	l.mu.Lock()
	l.undoStack = append(l.undoStack, &entry{command: cmd, timestamp: time.Now()})
	l.redoStack = nil
	l.mu.Unlock()

	l.notify(events.ActionExecuted, cmd)
	return nil
}

// Undo reverses the most recent command and moves it to the redo stack.
// The lock is released while the command runs.
func (l *Log) Undo() error {
	l.mu.Lock()
	if len(l.undoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToUndo
	}

	e := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	l.mu.Unlock()

	if err := e.command.Undo(); err != nil {
		// Restore entry on failure
		l.mu.Lock()
		l.undoStack = append(l.undoStack, e)
		l.mu.Unlock()
		return err
	}

	l.mu.Lock()
	l.redoStack = append(l.redoStack, e)
	l.mu.Unlock()

	l.notify(events.ActionUndone, e.command)
	return nil
}

// Redo reapplies the most recently undone command and moves it back to the
// undo stack.
func (l *Log) Redo() error {
	l.mu.Lock()
	if len(l.redoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToRedo
	}

	e := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	l.mu.Unlock()

	if err := e.command.Redo(); err != nil {
		// Restore entry on failure
		l.mu.Lock()
		l.redoStack = append(l.redoStack, e)
		l.mu.Unlock()
		return err
	}

	l.mu.Lock()
	l.undoStack = append(l.undoStack, e)
	l.mu.Unlock()

	l.notify(events.ActionRedone, e.command)
	return nil
}

// notify runs the notifier synchronously on the caller's goroutine, after
// the state change and outside l.mu. Callers that hold their own lock while
// editing (Workspace does) keep holding it here, so a subscriber that calls
// back into them deadlocks.
func (l *Log) notify(action events.Action, cmd Command) {
	l.mu.Lock()
	n, source := l.notifier, l.source
	l.mu.Unlock()

	if n == nil {
		return
	}
	n.Notify(events.CommandApplied{
		Source:      source,
		Action:      action,
		Description: cmd.Description(),
	})
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack) > 0
}

// UndoCount returns the number of commands that can be undone.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack)
}

// RedoCount returns the number of commands that can be redone.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack)
}

// Clear removes all undo/redo history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undoStack = nil
	l.redoStack = nil
}

// UndoInfo describes the undo stack, oldest first.
func (l *Log) UndoInfo() []OperationInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stackInfo(l.undoStack)
}

// RedoInfo describes the redo stack, oldest first.
func (l *Log) RedoInfo() []OperationInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return stackInfo(l.redoStack)
}

// PeekUndo returns info about the next undo operation without removing it.
func (l *Log) PeekUndo() (OperationInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return l.undoStack[len(l.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (l *Log) PeekRedo() (OperationInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return l.redoStack[len(l.redoStack)-1].info(), true
}

func stackInfo(stack []*entry) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, e := range stack {
		result[i] = e.info()
	}
	return result
}
