package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	unit := filepath.Join(dir, "snake.wasm")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unit, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{unit}, quietLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(unit, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changes():
		if got != unit {
			t.Errorf("Changes() = %q, expected %q", got, unit)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherPendingDedupes(t *testing.T) {
	dir := t.TempDir()
	unit := filepath.Join(dir, "game.so")
	if err := os.WriteFile(unit, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{unit}, quietLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(unit, []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	var got []string
	for len(got) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
		got = w.Pending()
	}
	if len(got) != 1 || got[0] != unit {
		t.Errorf("Pending() = %v, expected [%s]", got, unit)
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := New(nil, quietLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
