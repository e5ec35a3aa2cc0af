package app

import (
	"context"
	"fmt"

	"github.com/dshills/linedit/internal/event"
	"github.com/dshills/linedit/internal/event/events"
	"github.com/dshills/linedit/internal/watcher"
)

// forwardFileEvents republishes watcher events for open files on the bus.
func (app *Application) forwardFileEvents() {
	defer app.wg.Done()

	log := app.logger.WithComponent("watcher")
	evs, errs := app.watcher.Events(), app.watcher.Errors()

	for evs != nil || errs != nil {
		select {
		case ev, ok := <-evs:
			if !ok {
				evs = nil
				continue
			}
			app.publishFileChange(ev)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn("watch error: %v", err)
		}
	}
}

func (app *Application) publishFileChange(ev watcher.Event) {
	info, open := app.workspace.Find(ev.Path)
	if !open {
		return
	}
	payload := events.FileChanged{Path: info.Path, Op: ev.Op.String(), Modified: info.Modified}
	_ = app.bus.Publish(context.Background(), event.NewEvent(events.TopicFileChanged, payload, "watcher"))
}

// onFileChanged warns about a file changed outside the editor.
func (app *Application) onFileChanged(_ context.Context, ev event.Event[events.FileChanged]) error {
	p := ev.Payload
	app.logger.WithFields(map[string]any{
		"component": "watcher",
		"path":      p.Path,
		"op":        p.Op,
	}).Warn("file changed on disk")

	msg := fmt.Sprintf("warning: %s changed on disk (%s)", p.Path, p.Op)
	if p.Modified {
		msg += "; the buffer has unsaved changes"
	}
	app.notify(msg)
	return nil
}

// notify queues a message for the user.
func (app *Application) notify(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.notices = append(app.notices, msg)
}

// takeNotices returns and clears the queued messages.
func (app *Application) takeNotices() []string {
	app.mu.Lock()
	defer app.mu.Unlock()
	out := app.notices
	app.notices = nil
	return out
}
