package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { callCount.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	d := NewDebouncer(0)
	if d.Duration() != DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDebounceDuration, d.Duration())
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	for _, poll := range []bool{false, true} {
		name := "fsnotify"
		if poll {
			name = "polling"
		}
		t.Run(name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "places.json")
			if err := os.WriteFile(tmpFile, []byte("{}"), 0644); err != nil {
				t.Fatal(err)
			}

			var changes atomic.Int32
			w, err := NewWatcher(tmpFile,
				WithDebounceDuration(20*time.Millisecond),
				WithPollInterval(20*time.Millisecond),
				WithForcePoll(poll),
				WithOnChange(func() { changes.Add(1) }),
			)
			if err != nil {
				t.Fatal(err)
			}
			if err := w.Start(); err != nil {
				t.Fatal(err)
			}
			defer w.Stop()

			if poll && !w.IsPolling() {
				t.Error("expected polling mode")
			}

			time.Sleep(50 * time.Millisecond)
			if err := os.WriteFile(tmpFile, []byte(`{"root":{"kind":"folder"}}`), 0644); err != nil {
				t.Fatal(err)
			}
			waitFor(t, w.Changed(), "change")
			if changes.Load() < 1 {
				t.Error("OnChange was not called")
			}
		})
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
	if !w.IsStarted() {
		t.Error("expected started watcher")
	}
	w.Stop()
	if w.IsStarted() {
		t.Error("expected stopped watcher")
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "places.json")
	if err := os.WriteFile(tmpFile, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	removed := make(chan struct{}, 1)
	w, err := NewWatcher(tmpFile,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithOnError(func(err error) {
			if err == ErrFileRemoved {
				select {
				case removed <- struct{}{}:
				default:
				}
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(tmpFile); err != nil {
		t.Fatal(err)
	}
	waitFor(t, removed, "removal")
}
