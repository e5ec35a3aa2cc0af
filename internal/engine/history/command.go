package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/linedit/internal/engine/buffer"
)

// ErrNotExecuted is returned when undoing a command that never ran.
var ErrNotExecuted = errors.New("command has not been executed")

// Kind identifies one of the command variants.
type Kind int

const (
	KindAppend Kind = iota
	KindInsert
	KindDelete
	KindReplace
)

// String returns the command name.
func (k Kind) String() string {
	switch k {
	case KindAppend:
		return "append"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Command is a reversible buffer edit.
//
// The set of commands is closed: only the types in this package implement
// Command.
type Command interface {
	// Execute performs the edit and captures the state needed to undo it.
	Execute() error

	// Undo reverses the edit.
	Undo() error

	// Redo reapplies the edit after an Undo.
	Redo() error

	// Description returns the edit in command form, e.g. `delete 1:7 5`.
	Description() string

	// Kind returns the command variant.
	Kind() Kind

	sealed()
}

// AppendCommand appends text at the end of the buffer.
type AppendCommand struct {
	buf  *buffer.Buffer
	Text string

	lineCount int
	executed  bool
}

// NewAppendCommand creates a command appending text to buf.
func NewAppendCommand(buf *buffer.Buffer, text string) *AppendCommand {
	return &AppendCommand{buf: buf, Text: text}
}

// Execute records the line count and appends the text.
func (c *AppendCommand) Execute() error {
	c.lineCount = c.buf.LineCount()
	c.buf.Append(c.Text)
	c.executed = true
	return nil
}

// Undo truncates the buffer back to its line count before Execute.
func (c *AppendCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	return c.buf.TruncateLines(c.lineCount)
}

// Redo appends the text again.
func (c *AppendCommand) Redo() error {
	c.buf.Append(c.Text)
	return nil
}

// Description returns `append "text"`.
func (c *AppendCommand) Description() string {
	return "append " + Quote(c.Text)
}

// Kind returns KindAppend.
func (c *AppendCommand) Kind() Kind { return KindAppend }

func (c *AppendCommand) sealed() {}

// InsertCommand inserts text at a line and column.
type InsertCommand struct {
	buf  *buffer.Buffer
	Line int
	Col  int
	Text string

	snapshot []string
	executed bool
}

// NewInsertCommand creates a command inserting text into buf before
// column col of line.
func NewInsertCommand(buf *buffer.Buffer, line, col int, text string) *InsertCommand {
	return &InsertCommand{buf: buf, Line: line, Col: col, Text: text}
}

// Execute snapshots the buffer and performs the insert.
func (c *InsertCommand) Execute() error {
	snapshot := c.buf.Lines()
	if err := c.buf.Insert(c.Line, c.Col, c.Text); err != nil {
		return err
	}
	c.snapshot = snapshot
	c.executed = true
	return nil
}

// Undo restores the snapshot taken by Execute.
func (c *InsertCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	c.buf.Restore(c.snapshot)
	return nil
}

// Redo inserts the text again at the original position.
func (c *InsertCommand) Redo() error {
	return c.buf.Insert(c.Line, c.Col, c.Text)
}

// Description returns `insert line:col "text"`.
func (c *InsertCommand) Description() string {
	return fmt.Sprintf("insert %d:%d %s", c.Line, c.Col, Quote(c.Text))
}

// Kind returns KindInsert.
func (c *InsertCommand) Kind() Kind { return KindInsert }

func (c *InsertCommand) sealed() {}

// DeleteCommand deletes characters within a single line.
type DeleteCommand struct {
	buf    *buffer.Buffer
	Line   int
	Col    int
	Length int

	deleted  string
	executed bool
}

// NewDeleteCommand creates a command deleting length characters of line
// starting at col.
func NewDeleteCommand(buf *buffer.Buffer, line, col, length int) *DeleteCommand {
	return &DeleteCommand{buf: buf, Line: line, Col: col, Length: length}
}

// Execute performs the delete and records the removed text.
func (c *DeleteCommand) Execute() error {
	before, _ := c.buf.Line(c.Line)
	if err := c.buf.Delete(c.Line, c.Col, c.Length); err != nil {
		return err
	}

	// Delete succeeded, so the span lies within before.
	runes := []rune(before)
	c.deleted = string(runes[c.Col-1 : c.Col-1+c.Length])
	c.executed = true
	return nil
}

// Undo reinserts the deleted text at the original position.
func (c *DeleteCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	return c.buf.Insert(c.Line, c.Col, c.deleted)
}

// Redo deletes the same span again.
func (c *DeleteCommand) Redo() error {
	return c.buf.Delete(c.Line, c.Col, c.Length)
}

// Deleted returns the text removed by Execute.
func (c *DeleteCommand) Deleted() string {
	return c.deleted
}

// Description returns `delete line:col length`.
func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("delete %d:%d %d", c.Line, c.Col, c.Length)
}

// Kind returns KindDelete.
func (c *DeleteCommand) Kind() Kind { return KindDelete }

func (c *DeleteCommand) sealed() {}

// ReplaceCommand replaces characters within a line with new text.
type ReplaceCommand struct {
	buf    *buffer.Buffer
	Line   int
	Col    int
	Length int
	Text   string

	snapshot []string
	executed bool
}

// NewReplaceCommand creates a command replacing length characters of line
// starting at col with text.
func NewReplaceCommand(buf *buffer.Buffer, line, col, length int, text string) *ReplaceCommand {
	return &ReplaceCommand{buf: buf, Line: line, Col: col, Length: length, Text: text}
}

// Execute snapshots the buffer and performs the replace.
func (c *ReplaceCommand) Execute() error {
	snapshot := c.buf.Lines()
	if err := c.buf.Replace(c.Line, c.Col, c.Length, c.Text); err != nil {
		return err
	}
	c.snapshot = snapshot
	c.executed = true
	return nil
}

// Undo restores the snapshot taken by Execute.
func (c *ReplaceCommand) Undo() error {
	if !c.executed {
		return ErrNotExecuted
	}
	c.buf.Restore(c.snapshot)
	return nil
}

// Redo replaces the same span again.
func (c *ReplaceCommand) Redo() error {
	return c.buf.Replace(c.Line, c.Col, c.Length, c.Text)
}

// Description returns `replace line:col length "text"`.
func (c *ReplaceCommand) Description() string {
	return fmt.Sprintf("replace %d:%d %d %s", c.Line, c.Col, c.Length, Quote(c.Text))
}

// Kind returns KindReplace.
func (c *ReplaceCommand) Kind() Kind { return KindReplace }

func (c *ReplaceCommand) sealed() {}

// Quote renders text as a double-quoted command argument. Quotes,
// backslashes, newlines and tabs are escaped so the result is one line.
func Quote(text string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
