// Package activity records a per-file activity log.
//
// When logging is enabled for a file, every command applied to it is
// appended to a hidden log beside the file:
//
//	notes.txt  ->  .notes.txt.log
//
//	session start at 20251019 14:03:11
//	20251019 14:03:15 append "Hello"
//	20251019 14:03:20 undo
//
// The Manager is an event.Handler for events.TopicCommandApplied. Failures
// to write the log are reported as warnings and never fail the edit that
// produced the entry.
package activity
