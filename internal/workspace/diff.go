package workspace

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/linedit/internal/engine/buffer"
)

// DiffOp classifies a line of a diff.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String formats the line with a "+ ", "- " or two-space prefix.
func (l DiffLine) String() string {
	switch l.Op {
	case DiffInsert:
		return "+ " + l.Text
	case DiffDelete:
		return "- " + l.Text
	default:
		return "  " + l.Text
	}
}

// Changed reports whether a diff contains any insertion or deletion.
func Changed(diff []DiffLine) bool {
	for _, l := range diff {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

var dmp = diffmatchpatch.New()

// LineDiff computes a line-level diff turning oldLines into newLines.
func LineDiff(oldLines, newLines []string) []DiffLine {
	a, b, lineArray := dmp.DiffLinesToChars(joinLines(oldLines), joinLines(newLines))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// joinLines terminates every line so that the last line diffs like the rest.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Diff compares the named open file, or the active file, with its saved
// content on disk. A file that was never saved diffs against nothing.
func (w *Workspace) Diff(path string) ([]DiffLine, error) {
	w.mu.Lock()
	ed, err := w.resolveLocked(path)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	current := ed.Buffer.Lines()
	target := ed.path
	w.mu.Unlock()

	var saved []string
	data, err := w.fs.ReadFile(target)
	switch {
	case err == nil:
		saved = buffer.NewBufferFromString(string(data)).Lines()
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &buffer.IOError{Op: "diff", Path: target, Err: err}
	}
	return LineDiff(saved, current), nil
}
