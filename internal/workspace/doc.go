// Package workspace manages the files open in an editing session.
//
// Each open file has an Editor: a buffer plus its command log. One editor
// is active at a time, and the edit helpers (Append, Insert, Delete,
// Replace, Undo, Redo, Show) act on it. File-level actions (load, init,
// save, close) are announced as events.ActionFile notifications so that
// activity logs record them alongside edits.
//
// The session can be persisted as a Memento and restored on the next start.
//
// A Workspace is safe for concurrent use. Notifications are delivered while
// the workspace lock is held, so command.applied handlers must not call
// back into the Workspace.
package workspace
