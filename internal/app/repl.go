package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/linedit/internal/dispatcher"
)

// Run reads commands from in and writes their output to out until an exit
// command succeeds, input ends or ctx is cancelled. It does not persist the
// session; call Shutdown for that.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)
	r := &repl{app: app, ctx: ctx, lines: lines, out: out}

	app.dispatcher.SetConfirmer(dispatcher.ConfirmFunc(r.confirm))
	defer app.dispatcher.SetConfirmer(nil)

	app.logger.Debug("command loop started")
	defer app.logger.Debug("command loop stopped")

	for {
		r.flushNotices()
		r.printf("%s", app.cfg.Prompt)

		line, err := r.readLine()
		if err != nil {
			r.printf("\n")
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}

		res, err := app.dispatcher.Execute(ctx, line)
		if err != nil {
			r.printf("error: %v\n", err)
			continue
		}
		if res.Output != "" {
			r.printf("%s\n", res.Output)
		}
		if res.Exit {
			return nil
		}
	}
}

// repl holds the state of one Run call.
type repl struct {
	app   *Application
	ctx   context.Context
	lines <-chan string
	out   io.Writer
}

func (r *repl) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *repl) flushNotices() {
	for _, msg := range r.app.takeNotices() {
		r.printf("%s\n", msg)
	}
}

// readLine returns the next input line, ErrInputClosed at end of input, or
// the context error.
func (r *repl) readLine() (string, error) {
	select {
	case <-r.ctx.Done():
		return "", r.ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// confirm asks a yes/no question on the same input as the commands.
// Anything other than y, yes, n or no repeats the question.
func (r *repl) confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		r.printf("%s ", prompt)

		line, err := r.readLine()
		if err != nil {
			r.printf("\n")
			return false, err
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// readLines feeds the lines of in into a channel that is closed at end of
// input or when ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case ch <- strings.TrimSuffix(sc.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
