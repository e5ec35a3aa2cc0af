package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/linedit/internal/vfs"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 0 {
		t.Errorf("expected 0 lines, got %d", b.LineCount())
	}
	if b.IsModified() {
		t.Error("new buffer should not be modified")
	}
	if b.Content() != "" {
		t.Errorf("expected empty content, got %q", b.Content())
	}
}

func TestNewBufferFromString(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3\n", WithPath("f.txt"))
	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	if b.IsModified() {
		t.Error("buffer from string should not be modified")
	}
	if b.Path() != "f.txt" {
		t.Errorf("expected path f.txt, got %q", b.Path())
	}
	if got, _ := b.Line(3); got != "line3" {
		t.Errorf("expected line3, got %q", got)
	}
}

func TestAppend(t *testing.T) {
	b := NewBuffer()

	b.Append("Hello")
	if got, _ := b.Line(1); got != "Hello" {
		t.Errorf("expected Hello, got %q", got)
	}

	b.Append("World")
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
	if got, _ := b.Line(2); got != "World" {
		t.Errorf("expected World, got %q", got)
	}
	if !b.IsModified() {
		t.Error("append should mark the buffer modified")
	}
}

func TestAppendMultiline(t *testing.T) {
	b := NewBuffer()
	b.Append("a\nb\n")

	want := []string{"a", "b", ""}
	got := b.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		line    int
		col     int
		text    string
		want    string
	}{
		{"middle", "Hello World", 1, 7, "Beautiful ", "Hello Beautiful World"},
		{"start", "World", 1, 1, "Hello ", "Hello World"},
		{"end of line", "Hello", 1, 6, "!", "Hello!"},
		{"second line", "a\nb", 2, 2, "c", "a\nbc"},
		{"empty text", "abc", 1, 2, "", "abc"},
		{"split line", "HelloWorld", 1, 6, "\n", "Hello\nWorld"},
		{"three segments", "ad", 1, 2, "b\nX\nc", "ab\nX\ncd"},
		{"multiline at end", "x\ny", 2, 2, "1\n2", "x\ny1\n2"},
		{"unicode column", "héllo", 1, 3, "-", "hé-llo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			if err := b.Insert(tt.line, tt.col, tt.text); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
			if b.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Content())
			}
			if !b.IsModified() {
				t.Error("insert should mark the buffer modified")
			}
		})
	}
}

func TestInsertEmptyBuffer(t *testing.T) {
	b := NewBuffer()
	if err := b.Insert(1, 1, "Hello"); err != nil {
		t.Fatalf("Insert 1:1 on empty buffer failed: %v", err)
	}
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", b.LineCount())
	}
	if got, _ := b.Line(1); got != "Hello" {
		t.Errorf("expected Hello, got %q", got)
	}

	multi := NewBuffer()
	if err := multi.Insert(1, 1, "a\nb"); err != nil {
		t.Fatalf("multi-line insert on empty buffer failed: %v", err)
	}
	if multi.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", multi.LineCount())
	}
}

func TestInsertEmptyBufferRejectsOtherPositions(t *testing.T) {
	for _, pos := range [][2]int{{1, 2}, {2, 1}, {0, 0}} {
		b := NewBuffer()
		err := b.Insert(pos[0], pos[1], "x")
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("%v: expected ErrInvalidOperation, got %v", pos, err)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%v: expected error to also match ErrOutOfRange", pos)
		}
		if !b.IsEmpty() || b.IsModified() {
			t.Errorf("%v: failed insert must leave buffer untouched", pos)
		}
	}
}

func TestInsertOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		line, col int
	}{
		{"line zero", 0, 1},
		{"line past end", 3, 1},
		{"col zero", 1, 0},
		{"col past end", 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("Hello\nWorld")
			err := b.Insert(tt.line, tt.col, "x")
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			var posErr *PositionError
			if !errors.As(err, &posErr) || posErr.Op != "insert" {
				t.Errorf("expected *PositionError for insert, got %T", err)
			}
			if b.Content() != "Hello\nWorld" || b.IsModified() {
				t.Error("failed insert must leave buffer untouched")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name              string
		initial           string
		line, col, length int
		want              string
	}{
		{"tail", "Hello World", 1, 7, 5, "Hello "},
		{"head", "Hello World", 1, 1, 6, "World"},
		{"whole line", "abc", 1, 1, 3, ""},
		{"last char", "abc", 1, 3, 1, "ab"},
		{"zero length", "abc", 1, 2, 0, "abc"},
		{"second line", "a\nbcd", 2, 2, 2, "a\nb"},
		{"unicode", "héllo", 1, 2, 1, "hllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			if err := b.Delete(tt.line, tt.col, tt.length); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if b.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Content())
			}
		})
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	tests := []struct {
		name              string
		line, col, length int
	}{
		{"line zero", 0, 1, 1},
		{"line past end", 2, 1, 1},
		{"col zero", 1, 0, 1},
		// Unlike Insert, Delete does not accept the end-of-line column.
		{"col at end of line", 1, 6, 0},
		{"length past end", 1, 3, 4},
		{"negative length", 1, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("Hello")
			err := b.Delete(tt.line, tt.col, tt.length)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			if b.Content() != "Hello" || b.IsModified() {
				t.Error("failed delete must leave buffer untouched")
			}
		})
	}
}

func TestDeleteEmptyBuffer(t *testing.T) {
	b := NewBuffer()
	if err := b.Delete(1, 1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name              string
		initial           string
		line, col, length int
		text              string
		want              string
	}{
		{"prefix", "Hello World", 1, 1, 5, "Hi", "Hi World"},
		{"zero length inserts", "Hello", 1, 6, 0, "!", "Hello!"},
		{"empty text deletes", "Hello World", 1, 6, 6, "", "Hello"},
		{"whole line", "abc", 1, 1, 3, "xyz", "xyz"},
		{"expands lines", "a\nHello\nz", 2, 3, 2, "X\nY", "a\nHeX\nYo\nz"},
		{"unicode", "naïve", 1, 3, 1, "i", "naive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			if err := b.Replace(tt.line, tt.col, tt.length, tt.text); err != nil {
				t.Fatalf("Replace failed: %v", err)
			}
			if b.Content() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, b.Content())
			}
			if !b.IsModified() {
				t.Error("replace should mark the buffer modified")
			}
		})
	}
}

func TestReplaceErrors(t *testing.T) {
	tests := []struct {
		name              string
		line, col, length int
		want              error
	}{
		{"line past end", 2, 1, 1, ErrOutOfRange},
		{"col past end", 1, 7, 0, ErrOutOfRange},
		{"negative length", 1, 1, -2, ErrOutOfRange},
		{"span past end of line", 1, 4, 3, ErrInvalidOperation},
		{"span at end column", 1, 6, 1, ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("Hello")
			err := b.Replace(tt.line, tt.col, tt.length, "x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if b.Content() != "Hello" || b.IsModified() {
				t.Error("failed replace must leave buffer untouched")
			}
		})
	}
}

func TestReplaceEmptyBuffer(t *testing.T) {
	b := NewBuffer()
	if err := b.Replace(1, 1, 0, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestShow(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	got := b.Show(1, 2)
	want := []string{"1: one", "2: two"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}
	for _, line := range got {
		if strings.Contains(line, "three") {
			t.Error("show(1, 2) must not include line 3")
		}
	}

	all := b.ShowAll()
	if len(all) != 3 || all[2] != "3: three" {
		t.Errorf("unexpected ShowAll result: %v", all)
	}
}

func TestShowClamping(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"start below one", -5, 2, 2},
		{"end past last", 2, 99, 2},
		{"inverted", 3, 1, 0},
		{"start past end", 5, 10, 0},
		{"single line", 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Show(tt.start, tt.end); len(got) != tt.want {
				t.Errorf("expected %d lines, got %v", tt.want, got)
			}
		})
	}

	if got := NewBuffer().ShowAll(); len(got) != 0 {
		t.Errorf("empty buffer should show nothing, got %v", got)
	}
	if b.IsModified() {
		t.Error("show must not modify the buffer")
	}
}

func TestLine(t *testing.T) {
	b := NewBufferFromString("a\nb")
	if _, err := b.Line(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for line 0, got %v", err)
	}
	if _, err := b.Line(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for line 3, got %v", err)
	}
	if n, err := b.LineLen(2); err != nil || n != 1 {
		t.Errorf("expected LineLen 1, got %d (%v)", n, err)
	}
}

func TestSetContent(t *testing.T) {
	tests := []struct {
		content string
		lines   int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"\n", 1},
		{"a\n\n", 2},
	}

	for _, tt := range tests {
		b := NewBuffer()
		b.SetContent(tt.content)
		if b.LineCount() != tt.lines {
			t.Errorf("SetContent(%q): expected %d lines, got %d", tt.content, tt.lines, b.LineCount())
		}
		if !b.IsModified() {
			t.Errorf("SetContent(%q) should mark modified", tt.content)
		}
	}
}

func TestTruncateLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")
	if err := b.TruncateLines(1); err != nil {
		t.Fatalf("TruncateLines failed: %v", err)
	}
	if b.Content() != "a" {
		t.Errorf("expected %q, got %q", "a", b.Content())
	}
	if err := b.TruncateLines(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if err := b.TruncateLines(0); err != nil || !b.IsEmpty() {
		t.Errorf("truncate to zero should empty the buffer (%v)", err)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	b := NewBufferFromString("a\nb")
	lines := b.Lines()
	lines[0] = "changed"
	if got, _ := b.Line(1); got != "a" {
		t.Error("Lines must return a copy")
	}
}

func TestLoad(t *testing.T) {
	fsys := vfs.NewMemFS()
	_ = fsys.AddFile("/doc.txt", "first\nsecond\n")

	b := NewBuffer(WithFS(fsys))
	b.Append("stale")
	if err := b.Load("/doc.txt"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.LineCount() != 2 {
		t.Fatalf("trailing separator must not add a line, got %d lines", b.LineCount())
	}
	if b.IsModified() {
		t.Error("loaded buffer should not be modified")
	}
	if b.Path() != "/doc.txt" {
		t.Errorf("expected path to be recorded, got %q", b.Path())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	fsys := vfs.NewMemFS()
	_ = fsys.AddFile("/empty.txt", "")

	b := NewBuffer(WithFS(fsys))
	if err := b.Load("/empty.txt"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("empty file should give an empty buffer, got %v", b.Lines())
	}
}

func TestLoadMissingFileCreates(t *testing.T) {
	b := NewBuffer(WithFS(vfs.NewMemFS()))
	b.Append("stale")
	if err := b.Load("/new.txt"); err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if !b.IsEmpty() {
		t.Error("buffer should be empty after loading a missing file")
	}
	if !b.IsModified() {
		t.Error("buffer for a missing file should be marked modified")
	}
	if b.Path() != "/new.txt" {
		t.Errorf("expected path /new.txt, got %q", b.Path())
	}
}

func TestLoadDirectoryFails(t *testing.T) {
	fsys := vfs.NewMemFS()
	_ = fsys.MkdirAll("/dir", 0755)

	b := NewBuffer(WithFS(fsys))
	b.Append("keep")
	err := b.Load("/dir")
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "load" {
		t.Errorf("expected *IOError for load, got %T", err)
	}
	if b.Content() != "keep" {
		t.Error("failed load must leave buffer untouched")
	}
}

func TestSave(t *testing.T) {
	fsys := vfs.NewMemFS()
	b := NewBuffer(WithFS(fsys), WithPath("/out.txt"))
	b.Append("a")
	b.Append("b")

	if err := b.Save(""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := fsys.ReadFile("/out.txt")
	if string(data) != "a\nb" {
		t.Errorf("expected no trailing separator, got %q", data)
	}
	if b.IsModified() {
		t.Error("save should clear the modified flag")
	}

	if err := b.Save("/copy.txt"); err != nil {
		t.Fatalf("Save to explicit path failed: %v", err)
	}
	if b.Path() != "/copy.txt" {
		t.Errorf("expected path to follow save target, got %q", b.Path())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	b := NewBuffer(WithFS(vfs.NewMemFS()))
	b.Append("x")
	if err := b.Save(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
	if !b.IsModified() {
		t.Error("failed save must keep the modified flag")
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	fsys := vfs.NewMemFS()
	_ = fsys.AddFile("/f.txt", "on disk")

	b := NewBuffer(WithFS(fsys))
	if err := b.Load("/f.txt"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b.Append("more")

	fsys.FailWrites(errors.New("disk full"))
	err := b.Save("")
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !b.IsModified() {
		t.Error("failed save must keep the modified flag")
	}
	data, _ := fsys.ReadFile("/f.txt")
	if string(data) != "on disk" {
		t.Errorf("failed save must leave the file unchanged, got %q", data)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fsys := vfs.NewMemFS()
	original := NewBuffer(WithFS(fsys))
	original.Append("alpha")
	original.Append("")
	original.Append("gamma")
	if err := original.Save("/rt.txt"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewBuffer(WithFS(fsys))
	if err := loaded.Load("/rt.txt"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Content() != original.Content() {
		t.Errorf("expected %q, got %q", original.Content(), loaded.Content())
	}
}

func TestRestore(t *testing.T) {
	b := NewBufferFromString("a\nb")
	b.Append("")
	snapshot := b.Lines()

	b.SetContent("something else")
	b.SetModified(false)
	b.Restore(snapshot)

	if b.LineCount() != 3 {
		t.Fatalf("restore must keep the trailing empty line, got %v", b.Lines())
	}
	if !b.IsModified() {
		t.Error("restore should mark the buffer modified")
	}

	snapshot[0] = "changed"
	if got, _ := b.Line(1); got != "a" {
		t.Error("restore must copy the snapshot")
	}

	b.Restore(nil)
	if !b.IsEmpty() {
		t.Error("restoring an empty snapshot should empty the buffer")
	}
}
