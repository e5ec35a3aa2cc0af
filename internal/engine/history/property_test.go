package history

import (
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/linedit/internal/engine/buffer"
)

// drawCommand generates a command whose coordinates are usually, but not
// always, valid for buf.
func drawCommand(t *rapid.T, buf *buffer.Buffer) Command {
	text := rapid.StringMatching(`[a-z ]{0,6}(\n[a-z]{0,3})?`).Draw(t, "text")
	line := rapid.IntRange(1, buf.LineCount()+1).Draw(t, "line")
	maxCol := 1
	if n, err := buf.LineLen(line); err == nil {
		maxCol = n + 1
	}
	col := rapid.IntRange(1, maxCol+1).Draw(t, "col")
	length := rapid.IntRange(0, maxCol).Draw(t, "length")

	switch rapid.IntRange(0, 3).Draw(t, "kind") {
	case 0:
		return NewAppendCommand(buf, text)
	case 1:
		return NewInsertCommand(buf, line, col, text)
	case 2:
		return NewDeleteCommand(buf, line, col, length)
	default:
		return NewReplaceCommand(buf, line, col, length, text)
	}
}

func drawBuffer(t *rapid.T) *buffer.Buffer {
	lines := rapid.SliceOfN(
		rapid.StringMatching(`[a-zA-Z0-9 ]{0,12}`),
		0, 4,
	).Draw(t, "lines")
	buf := buffer.NewBuffer()
	if len(lines) > 0 {
		buf.Restore(lines)
	}
	return buf
}

func TestProperty_ExecuteUndoRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := drawBuffer(t)
		log := NewLog()

		// Run a random prefix so the command under test sees varied history.
		for i := rapid.IntRange(0, 5).Draw(t, "prefix"); i > 0; i-- {
			_ = log.Execute(drawCommand(t, buf))
		}

		before := buf.Lines()
		if err := log.Execute(drawCommand(t, buf)); err != nil {
			if !slices.Equal(before, buf.Lines()) {
				t.Fatalf("failed execute changed buffer: %q -> %q", before, buf.Lines())
			}
			return
		}
		if err := log.Undo(); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if !slices.Equal(before, buf.Lines()) {
			t.Fatalf("undo did not restore: want %q, got %q", before, buf.Lines())
		}
	})
}

func TestProperty_ExecuteUndoRedoReapplies(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := drawBuffer(t)
		log := NewLog()

		if err := log.Execute(drawCommand(t, buf)); err != nil {
			return
		}
		after := buf.Lines()

		if err := log.Undo(); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if err := log.Redo(); err != nil {
			t.Fatalf("Redo failed: %v", err)
		}
		if !slices.Equal(after, buf.Lines()) {
			t.Fatalf("redo did not reapply: want %q, got %q", after, buf.Lines())
		}
	})
}

func TestProperty_UndoAllRedoAll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := drawBuffer(t)
		initial := strings.Join(buf.Lines(), "\n")
		initialCount := buf.LineCount()
		log := NewLog()

		executed := 0
		for i := rapid.IntRange(1, 10).Draw(t, "commands"); i > 0; i-- {
			if err := log.Execute(drawCommand(t, buf)); err == nil {
				executed++
			}
		}
		final := buf.Lines()

		if log.UndoCount() != executed || log.RedoCount() != 0 {
			t.Fatalf("stacks: undo=%d redo=%d, executed=%d", log.UndoCount(), log.RedoCount(), executed)
		}

		for log.CanUndo() {
			if err := log.Undo(); err != nil {
				t.Fatalf("Undo failed: %v", err)
			}
			if log.UndoCount()+log.RedoCount() != executed {
				t.Fatal("a command was lost or duplicated between the stacks")
			}
		}
		if got := strings.Join(buf.Lines(), "\n"); got != initial || buf.LineCount() != initialCount {
			t.Fatalf("undo all: want %q, got %q", initial, got)
		}

		for log.CanRedo() {
			if err := log.Redo(); err != nil {
				t.Fatalf("Redo failed: %v", err)
			}
		}
		if !slices.Equal(final, buf.Lines()) {
			t.Fatalf("redo all: want %q, got %q", final, buf.Lines())
		}
	})
}

func TestProperty_NewCommandClearsRedo(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := drawBuffer(t)
		log := NewLog()

		if err := log.Execute(drawCommand(t, buf)); err != nil {
			return
		}
		if err := log.Undo(); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if err := log.Execute(drawCommand(t, buf)); err != nil {
			// A failed command changes nothing, so redo is still available.
			if !log.CanRedo() {
				t.Fatal("failed execute cleared the redo stack")
			}
			return
		}
		if err := log.Redo(); err != ErrNothingToRedo {
			t.Fatalf("expected ErrNothingToRedo, got %v", err)
		}
	})
}
