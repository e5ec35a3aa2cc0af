// Package buffer provides the line-oriented text buffer at the core of the
// editor.
//
// A Buffer is an ordered sequence of lines. Positions are 1-based: line 1 is
// the first line and column 1 is the first character. A column always names
// the character an edit happens before, so on a line of length L the columns
// 1..L+1 are valid insertion points and L+1 appends at the end of the line.
// Columns count runes, not bytes.
//
// Basic usage:
//
//	buf := buffer.NewBuffer()
//	buf.Append("Hello World")
//	_ = buf.Insert(1, 7, "Beautiful ") // "Hello Beautiful World"
//	_ = buf.Delete(1, 1, 6)            // "Beautiful World"
//	_ = buf.Replace(1, 1, 9, "Big")    // "Big World"
//
// Edits whose text contains '\n' splice the target line into several lines.
// Deletion never spans lines.
//
// Bounds:
//
//   - Insert accepts columns 1..L+1; Delete accepts columns 1..L.
//   - An empty buffer has zero lines and only accepts Insert at 1:1.
//   - Show clamps its range; every other operation rejects out-of-range
//     positions with ErrOutOfRange or ErrInvalidOperation.
//
// Every mutator is atomic on failure: when an error is returned the buffer is
// unchanged.
//
// Thread Safety:
//
// A Buffer is not safe for concurrent use. Callers serialise access, which
// the workspace does by owning exactly one buffer per open file.
package buffer
