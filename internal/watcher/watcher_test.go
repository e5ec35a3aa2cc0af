package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDelay(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) (Event, bool) {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev, true
	case <-time.After(2 * time.Second):
		return Event{}, false
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{0, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_AddRemove(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "a.txt")

	if err := w.Add(path); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if err := w.Add(path); err != nil {
		t.Errorf("second Add error = %v", err)
	}
	if !w.IsWatching(path) {
		t.Error("should be watching path")
	}

	if err := w.Remove(path); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if w.IsWatching(path) {
		t.Error("should not be watching path after Remove")
	}
	if err := w.Remove(path); err != ErrNotWatching {
		t.Errorf("Remove again error = %v, want ErrNotWatching", err)
	}
}

func TestWatcher_AddMissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	if err := w.Add(filepath.Join(t.TempDir(), "missing", "a.txt")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_ReportsWrite(t *testing.T) {
	w := newTestWatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")

	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(path); err != nil {
		t.Fatalf("Add error = %v", err)
	}

	// Unregistered files in the same directory are ignored.
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ev, ok := waitEvent(t, w)
	if !ok {
		t.Fatal("timed out waiting for event")
	}
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("event path = %q, want %q", ev.Path, abs)
	}
	if !ev.Op.Has(OpWrite) {
		t.Errorf("event op = %v, want WRITE", ev.Op)
	}

	select {
	case extra := <-w.Events():
		t.Errorf("rapid writes should coalesce, got extra event %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_Mute(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := w.Add(path); err != nil {
		t.Fatalf("Add error = %v", err)
	}

	w.Mute(path, time.Second)
	if err := os.WriteFile(path, []byte("own save"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("muted write produced event %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("events channel should be closed")
	}
	if err := w.Add("a.txt"); err != ErrWatcherClosed {
		t.Errorf("Add after Close error = %v, want ErrWatcherClosed", err)
	}
}
