package buffer

import (
	"strconv"
	"strings"

	"github.com/dshills/linedit/internal/vfs"
)

// Separator is the line separator used when splitting and joining text.
const Separator = "\n"

// Buffer is an ordered sequence of lines with a modification flag.
type Buffer struct {
	lines    []string
	modified bool
	path     string
	fs       vfs.FS
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		fs: vfs.NewOSFS(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The content is split the same way Load splits a file, and the buffer
// starts unmodified.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = splitContent(s)
	return b
}

// Read Operations

// Path returns the file path associated with the buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// IsModified reports whether the buffer has unsaved changes.
func (b *Buffer) IsModified() bool {
	return b.modified
}

// SetModified sets or clears the modification flag.
func (b *Buffer) SetModified(modified bool) {
	b.modified = modified
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// IsEmpty returns true if the buffer has no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the text of line n (1-based).
func (b *Buffer) Line(n int) (string, error) {
	if n < 1 || n > len(b.lines) {
		return "", outOfRange("line", n, 0, 0)
	}
	return b.lines[n-1], nil
}

// LineLen returns the length of line n in characters.
func (b *Buffer) LineLen(n int) (int, error) {
	line, err := b.Line(n)
	if err != nil {
		return 0, err
	}
	return runeLen(line), nil
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Content returns the full buffer content with lines joined by Separator.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, Separator)
}

// ShowAll returns every line formatted as "n: content".
func (b *Buffer) ShowAll() []string {
	return b.Show(1, len(b.lines))
}

// Show returns lines start..end (inclusive) formatted as "n: content".
// The range is clamped to the buffer; an empty or inverted range yields nil.
func (b *Buffer) Show(start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start > end {
		return nil
	}

	out := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, strconv.Itoa(n)+": "+b.lines[n-1])
	}
	return out
}

// Write Operations

// Append adds text at the end of the buffer. Each separator in text starts
// a new line, so Append always adds at least one line.
func (b *Buffer) Append(text string) {
	b.lines = append(b.lines, strings.Split(text, Separator)...)
	b.modified = true
}

// Insert inserts text before column col of line.
//
// On an empty buffer only 1:1 is accepted and the content becomes text.
// Text containing separators splits the target line: the part before col
// joins the first segment and the part after col joins the last one.
func (b *Buffer) Insert(line, col int, text string) error {
	if len(b.lines) == 0 {
		if line != 1 || col != 1 {
			return &PositionError{
				Op:             "insert",
				Line:           line,
				Col:            col,
				Err:            ErrInvalidOperation,
				alsoOutOfRange: true,
			}
		}
		b.lines = strings.Split(text, Separator)
		b.modified = true
		return nil
	}

	if line < 1 || line > len(b.lines) {
		return outOfRange("insert", line, col, 0)
	}

	current := []rune(b.lines[line-1])
	if col < 1 || col > len(current)+1 {
		return outOfRange("insert", line, col, 0)
	}

	head := string(current[:col-1])
	tail := string(current[col-1:])
	b.splice(line, head+text+tail)
	return nil
}

// Delete removes length characters starting at column col of line.
// Deletion never crosses the end of the line.
func (b *Buffer) Delete(line, col, length int) error {
	if line < 1 || line > len(b.lines) {
		return outOfRange("delete", line, col, length)
	}

	current := []rune(b.lines[line-1])
	if col < 1 || col > len(current) {
		return outOfRange("delete", line, col, length)
	}
	if length < 0 || length > len(current)-col+1 {
		return outOfRange("delete", line, col, length)
	}

	b.lines[line-1] = string(current[:col-1]) + string(current[col-1+length:])
	b.modified = true
	return nil
}

// Replace replaces length characters at column col of line with text.
//
// A zero length is a pure insertion and an empty text is a pure deletion.
// The replaced span must lie within the line; text containing separators
// expands the line the same way Insert does.
func (b *Buffer) Replace(line, col, length int, text string) error {
	if line < 1 || line > len(b.lines) {
		return outOfRange("replace", line, col, length)
	}

	current := []rune(b.lines[line-1])
	if col < 1 || col > len(current)+1 {
		return outOfRange("replace", line, col, length)
	}
	if length < 0 {
		return outOfRange("replace", line, col, length)
	}
	if length > len(current)-col+1 {
		return invalidOperation("replace", line, col, length)
	}

	head := string(current[:col-1])
	rest := string(current[col-1+length:])
	b.splice(line, head+text+rest)
	return nil
}

// TruncateLines keeps the first n lines and drops the rest.
func (b *Buffer) TruncateLines(n int) error {
	if n < 0 || n > len(b.lines) {
		return outOfRange("truncate", n, 0, 0)
	}
	b.lines = b.lines[:n:n]
	b.modified = true
	return nil
}

// SetContent replaces the whole buffer with text.
// A trailing separator does not produce a trailing empty line.
// The buffer is always marked modified.
func (b *Buffer) SetContent(text string) {
	b.lines = splitContent(text)
	b.modified = true
}

// Restore replaces the buffer lines with a copy of lines, typically a
// snapshot taken with Lines. Unlike SetContent no normalisation is applied.
// The buffer is always marked modified.
func (b *Buffer) Restore(lines []string) {
	if len(lines) == 0 {
		b.lines = nil
	} else {
		b.lines = make([]string, len(lines))
		copy(b.lines, lines)
	}
	b.modified = true
}

// splice replaces line n with the lines of text, which may contain separators.
func (b *Buffer) splice(n int, text string) {
	segments := strings.Split(text, Separator)
	if len(segments) == 1 {
		b.lines[n-1] = text
		b.modified = true
		return
	}

	lines := make([]string, 0, len(b.lines)+len(segments)-1)
	lines = append(lines, b.lines[:n-1]...)
	lines = append(lines, segments...)
	lines = append(lines, b.lines[n:]...)
	b.lines = lines
	b.modified = true
}

// splitContent splits whole-file content into lines.
func splitContent(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, Separator)
	if strings.HasSuffix(s, Separator) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func runeLen(s string) int {
	return len([]rune(s))
}
