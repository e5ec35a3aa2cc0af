package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/linedit/internal/workspace"
)

// Result is the outcome of a command.
type Result struct {
	// Output is text to show the user, without a trailing newline.
	Output string

	// Exit asks the caller to end the session.
	Exit bool
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc is a function adapter for Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Logger receives diagnostic messages.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Dispatcher parses command lines and runs them against a workspace.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	ws       *workspace.Workspace

	confirm Confirmer
	logger  Logger

	config  Config
	metrics *Metrics
}

// New creates a dispatcher for ws with the built-in commands registered.
func New(ws *workspace.Workspace, config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		ws:       ws,
		logger:   nopLogger{},
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	d.registerBuiltins()
	return d
}

// NewWithDefaults creates a dispatcher with default configuration.
func NewWithDefaults(ws *workspace.Workspace) *Dispatcher {
	return New(ws, DefaultConfig())
}

// SetConfirmer sets the callback used for save prompts. Without one every
// prompt is answered no.
func (d *Dispatcher) SetConfirmer(c Confirmer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirm = c
}

// SetLogger sets the diagnostic logger.
func (d *Dispatcher) SetLogger(l Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l == nil {
		l = nopLogger{}
	}
	d.logger = l
}

// Workspace returns the workspace commands run against.
func (d *Dispatcher) Workspace() *workspace.Workspace {
	return d.ws
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Execute parses and runs one command line. A blank line does nothing.
func (d *Dispatcher) Execute(ctx context.Context, line string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	name, args, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	if name == "" {
		return Result{}, nil
	}

	cmd := d.registry.Get(name)
	if cmd == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if !cmd.acceptsArgs(len(args)) {
		return Result{}, &UsageError{Command: cmd.Name, Usage: cmd.Usage}
	}

	d.log().Debug("dispatch %s %q", name, args)

	start := time.Now()
	var result Result
	if d.config.RecoverFromPanic {
		result, err = d.executeWithRecovery(ctx, cmd, args)
	} else {
		result, err = cmd.Run(ctx, args)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), err != nil)
	}

	var ue *UsageError
	if errors.As(err, &ue) && ue.Command == "" {
		ue.Command, ue.Usage = cmd.Name, cmd.Usage
	}
	return result, err
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(ctx context.Context, cmd *Command, args []string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.log().Debug("panic in %s: %v\n%s", cmd.Name, r, stack[:n])

			result = Result{}
			err = fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Name, r)

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Name)
			}
		}
	}()

	return cmd.Run(ctx, args)
}

// ask runs the confirmer, answering no when none is set.
func (d *Dispatcher) ask(ctx context.Context, prompt string) (bool, error) {
	d.mu.RLock()
	c := d.confirm
	d.mu.RUnlock()

	if c == nil {
		return false, nil
	}
	return c.Confirm(ctx, prompt)
}

func (d *Dispatcher) log() Logger {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.logger
}
