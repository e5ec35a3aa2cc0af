package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/linedit/internal/activity"
	"github.com/dshills/linedit/internal/config"
	"github.com/dshills/linedit/internal/dispatcher"
	"github.com/dshills/linedit/internal/event"
	"github.com/dshills/linedit/internal/event/events"
	"github.com/dshills/linedit/internal/vfs"
	"github.com/dshills/linedit/internal/watcher"
	"github.com/dshills/linedit/internal/workspace"
)

// Application owns every editor component and the command loop.
type Application struct {
	mu sync.Mutex

	cfg       config.Config
	logger    *Logger
	logCloser io.Closer

	bus        *event.Bus
	activity   *activity.Manager
	workspace  *workspace.Workspace
	watcher    *watcher.Watcher
	dispatcher *dispatcher.Dispatcher

	// notices are printed before the next prompt.
	notices []string

	running      atomic.Bool
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownErr  error
}

// Options configures the application.
type Options struct {
	// Config holds the loaded settings.
	Config config.Config

	// Files are loaded at start, after the previous session is restored.
	Files []string

	// NoRestore skips restoring the previous session.
	NoRestore bool

	// FS overrides the file system. Defaults to the OS.
	FS vfs.FS

	// LogOutput overrides Config.LogFile for diagnostics.
	LogOutput io.Writer
}

// New creates an Application and starts its components.
func New(opts Options) (*Application, error) {
	app := &Application{cfg: opts.Config}

	if err := app.initLogger(opts); err != nil {
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = vfs.NewOSFS()
	}

	busLog := app.logger.WithComponent("event")
	app.bus = event.NewBus(event.WithErrorHandler(func(err error) {
		busLog.Warn("subscriber failed: %v", err)
	}))

	app.activity = activity.NewManager(
		activity.WithFS(fsys),
		activity.WithLogger(app.logger.WithComponent("activity")),
	)
	if _, err := app.activity.Attach(app.bus); err != nil {
		app.closeLog()
		return nil, &InitError{Component: "activity", Err: err}
	}
	if _, err := app.bus.Subscribe(events.TopicFileChanged, event.AsHandler[events.FileChanged](app.onFileChanged)); err != nil {
		app.closeLog()
		return nil, &InitError{Component: "event bus", Err: err}
	}

	wsOpts := []workspace.Option{
		workspace.WithFS(fsys),
		workspace.WithActivity(app.activity),
		workspace.WithNotifier(event.NewBusNotifier(context.Background(), app.bus)),
		workspace.WithLogger(app.logger.WithComponent("workspace")),
		workspace.WithMarker(app.cfg.Activity.Marker),
		workspace.WithStateFile(app.cfg.WorkspaceFile),
		workspace.WithLogByDefault(app.cfg.Activity.EnabledByDefault),
	}
	if app.cfg.WatchFiles {
		w, err := watcher.New()
		if err != nil {
			app.logger.WithComponent("watcher").Warn("file watching disabled: %v", err)
		} else {
			app.watcher = w
			wsOpts = append(wsOpts, workspace.WithWatcher(w))
		}
	}
	app.workspace = workspace.New(wsOpts...)

	app.dispatcher = dispatcher.New(app.workspace, dispatcher.DefaultConfig().WithMetrics())
	app.dispatcher.SetLogger(app.logger.WithComponent("dispatcher"))

	if app.watcher != nil {
		app.wg.Add(1)
		go app.forwardFileEvents()
	}

	app.openSession(opts)
	return app, nil
}

func (app *Application) initLogger(opts Options) error {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.cfg.LogLevel)

	switch {
	case opts.LogOutput != nil:
		cfg.Output = opts.LogOutput
	case app.cfg.LogFile != "":
		f, err := OpenLogFile(app.cfg.LogFile)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		cfg.Output = f
		app.logCloser = f
	default:
		cfg.Output = os.Stderr
	}

	app.logger = NewLogger(cfg)
	return nil
}

// openSession restores the saved session and loads the requested files.
// Failures are reported and skipped.
func (app *Application) openSession(opts Options) {
	log := app.logger.WithComponent("workspace")

	if !opts.NoRestore {
		reopened, err := app.workspace.Restore()
		if err != nil {
			log.Warn("%v", NewOperationError("restore", app.workspace.StateFile(), err))
		} else if len(reopened) > 0 {
			log.Info("restored %d file(s) from %s", len(reopened), app.workspace.StateFile())
		}
	}

	for _, path := range opts.Files {
		if err := app.workspace.Load(path); err != nil {
			log.Warn("%v", NewOperationError("load", path, err))
			app.notify("cannot load " + path + ": " + err.Error())
		}
	}
}

// Workspace returns the workspace.
func (app *Application) Workspace() *workspace.Workspace {
	return app.workspace
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Shutdown persists the session and stops background work. It is safe to
// call more than once; later calls return the first result.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() {
		var errs []error

		if err := app.workspace.Persist(); err != nil {
			app.logger.Error("%v", err)
			errs = append(errs, NewOperationError("persist", app.workspace.StateFile(), err))
		}

		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				errs = append(errs, NewOperationError("close", "watcher", err))
			}
			app.wg.Wait()
		}

		if m := app.dispatcher.Metrics(); m != nil {
			app.logger.Debug("dispatched %d command(s), %d failed", m.TotalDispatches(), m.TotalErrors())
		}
		stats := app.bus.Stats()
		app.logger.Debug("published %d event(s), %d handler error(s)", stats.EventsPublished, stats.HandlerErrors)

		app.closeLog()
		app.shutdownErr = errors.Join(errs...)
	})
	return app.shutdownErr
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}
