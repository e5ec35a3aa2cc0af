// Package topic names event streams with dot-separated topics and matches
// them against subscription patterns.
//
//	command.applied   an edit, undo, redo or file action completed
//	file.changed      an open file changed on disk
//
// A pattern segment "*" matches exactly one segment and "**" matches zero
// or more, so "command.*" and "**" both match "command.applied".
package topic
