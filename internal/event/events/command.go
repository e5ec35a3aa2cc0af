package events

import "github.com/dshills/linedit/internal/event/topic"

// TopicCommandApplied is published after every successful edit, undo, redo
// or file-level action.
const TopicCommandApplied topic.Topic = "command.applied"

// Action says what happened to a command.
type Action int

const (
	// ActionExecuted means an edit command ran for the first time.
	ActionExecuted Action = iota

	// ActionUndone means the most recent command was reversed.
	ActionUndone

	// ActionRedone means an undone command was applied again.
	ActionRedone

	// ActionFile means a file-level action such as load, save or close.
	ActionFile
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionExecuted:
		return "executed"
	case ActionUndone:
		return "undone"
	case ActionRedone:
		return "redone"
	case ActionFile:
		return "file"
	default:
		return "unknown"
	}
}

// CommandApplied is the payload of TopicCommandApplied.
type CommandApplied struct {
	// Source is the path of the file the command applied to.
	Source string

	// Action is what happened.
	Action Action

	// Description is the command in its textual form, e.g. `delete 1:7 5`.
	Description string
}

// Entry returns the text recorded in a file's activity log.
// Reversals are recorded by action alone.
func (c CommandApplied) Entry() string {
	switch c.Action {
	case ActionUndone:
		return "undo"
	case ActionRedone:
		return "redo"
	default:
		return c.Description
	}
}
