package main

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestTracker(t *testing.T) *UsageTracker {
	t.Helper()
	dir, err := os.MkdirTemp("", "nlterm-usage-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	tracker, err := NewUsageTracker(filepath.Join(dir, "usage.db"))
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	t.Cleanup(func() { tracker.Close() })
	return tracker
}

func TestUsageTrackerRecordAndCount(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.Record("ls")
	tracker.Record("ls")
	tracker.Record("mkdir")

	if got := tracker.Count("ls"); got != 2 {
		t.Errorf("Count(ls) = %d, want 2", got)
	}
	if got := tracker.Count("mkdir"); got != 1 {
		t.Errorf("Count(mkdir) = %d, want 1", got)
	}
	if got := tracker.Count("never"); got != 0 {
		t.Errorf("Count(never) = %d, want 0", got)
	}
}

func TestUsageTrackerTop(t *testing.T) {
	tracker := newTestTracker(t)

	for i := 0; i < 3; i++ {
		tracker.Record("ls")
	}
	tracker.Record("pwd")
	tracker.Record("pwd")
	tracker.Record("cd")

	top, err := tracker.Top(2)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Top(2) returned %d rows", len(top))
	}
	if top[0].Command != "ls" || top[0].Count != 3 {
		t.Errorf("Top[0] = %+v, want ls with count 3", top[0])
	}
	if top[1].Command != "pwd" || top[1].Count != 2 {
		t.Errorf("Top[1] = %+v, want pwd with count 2", top[1])
	}
}

func TestUsageTrackerNilSafe(t *testing.T) {
	var tracker *UsageTracker

	tracker.Record("ls")
	if got := tracker.Count("ls"); got != 0 {
		t.Errorf("nil tracker Count = %d, want 0", got)
	}
	if top, err := tracker.Top(5); err != nil || top != nil {
		t.Errorf("nil tracker Top = (%v, %v)", top, err)
	}
	if err := tracker.Close(); err != nil {
		t.Errorf("nil tracker Close = %v", err)
	}
}
