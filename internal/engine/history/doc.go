// Package history provides undo/redo for a text buffer.
//
// Edits are expressed as commands. Each command captures what it needs to
// reverse itself at execution time:
//
//   - AppendCommand records the line count before appending
//   - InsertCommand and ReplaceCommand record a full snapshot of the lines
//   - DeleteCommand records only the deleted text
//
// The Log runs commands and keeps them on an undo stack and a redo stack:
//
//	log := history.NewLog(history.WithSource("notes.txt"))
//
//	log.Execute(history.NewInsertCommand(buf, 1, 7, "Beautiful "))
//	log.Undo()
//	log.Redo()
//
// Executing a new command clears the redo stack. A command that fails is
// never recorded, and a failed undo or redo leaves both stacks as they were.
//
// # Notifications
//
// After each successful execute, undo or redo the Log calls its Notifier
// with an events.CommandApplied. The Log does not depend on the notifier
// for anything and ignores its outcome.
package history
