package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no command is registered under the name.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrUsage indicates the command arguments are malformed.
	ErrUsage = errors.New("dispatcher: invalid arguments")

	// ErrSyntax indicates the command line could not be tokenized.
	ErrSyntax = errors.New("dispatcher: syntax error")

	// ErrPanic indicates the command handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// UsageError reports malformed arguments for a command.
type UsageError struct {
	Command string
	Usage   string
	Reason  string
}

func (e *UsageError) Error() string {
	switch {
	case e.Command == "":
		return "invalid argument: " + e.Reason
	case e.Reason == "":
		return fmt.Sprintf("usage: %s", e.Usage)
	}
	return fmt.Sprintf("%s: %s (usage: %s)", e.Command, e.Reason, e.Usage)
}

// Is allows errors.Is to match UsageError with ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}
