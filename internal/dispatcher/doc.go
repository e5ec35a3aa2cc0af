// Package dispatcher turns command lines into workspace operations.
//
// A line is tokenized by Tokenize: words are separated by whitespace and
// double quotes group words that contain spaces. The first word names a
// command in the Registry; the rest are its arguments.
//
//	d := dispatcher.NewWithDefaults(ws)
//	res, err := d.Execute(ctx, `insert 1:6 ", world"`)
//
// # Commands
//
// File commands (load, save, init, close, edit, editor-list, dir-tree,
// exit), edit commands (append, insert, delete, replace, show, undo,
// redo) and inspection commands (log-on, log-off, log-show, diff, help)
// are registered by New.
//
// Positions are written line:col, both 1-based. Ranges for show are
// start:end or a single line number.
//
// # Errors
//
// An unregistered name returns ErrUnknownCommand. A wrong argument count
// returns a *UsageError, and malformed positions or numbers return errors
// matching ErrUsage. Errors from the workspace and the buffer are returned
// unchanged so callers can match buffer.ErrOutOfRange and friends.
//
// # Prompts
//
// close and exit ask whether to save modified files through the
// Confirmer set with SetConfirmer. Without one the answer is always no.
package dispatcher
