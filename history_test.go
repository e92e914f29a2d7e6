package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestHistory(t *testing.T, maxSize int) (*CommandHistory, string) {
	t.Helper()
	dir, err := os.MkdirTemp("", "nlterm-history-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "history")
	return NewCommandHistory(path, maxSize), path
}

func TestHistoryAddAndList(t *testing.T) {
	h, _ := newTestHistory(t, 50)

	h.Add("ls")
	h.Add("pwd")
	h.Add("cd sub")

	got := h.List(0)
	want := []string{"ls", "pwd", "cd sub"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestHistorySkipsEmptyAndConsecutiveDuplicates(t *testing.T) {
	h, _ := newTestHistory(t, 50)

	h.Add("ls")
	h.Add("ls")
	h.Add("   ")
	h.Add("")
	h.Add("pwd")
	h.Add("ls")

	got := h.List(0)
	want := []string{"ls", "pwd", "ls"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestHistoryDropsOldestAtCapacity(t *testing.T) {
	h, _ := newTestHistory(t, 3)

	for i := 1; i <= 4; i++ {
		h.Add(fmt.Sprintf("cmd%d", i))
	}

	got := h.List(0)
	want := []string{"cmd2", "cmd3", "cmd4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistoryPersistsAcrossInstances(t *testing.T) {
	h, path := newTestHistory(t, 50)
	h.Add("ls")
	h.Add("mkdir test")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read history file: %v", err)
	}
	if string(data) != "ls\nmkdir test\n" {
		t.Errorf("History file = %q, want plain text lines", string(data))
	}

	reloaded := NewCommandHistory(path, 50)
	if !reflect.DeepEqual(reloaded.List(0), []string{"ls", "mkdir test"}) {
		t.Errorf("Reloaded history = %v", reloaded.List(0))
	}
}

func TestHistoryLoadTrimsToCapacity(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-history-load")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "history")
	var sb strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&sb, "cmd%d\n", i)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		t.Fatalf("Failed to seed history file: %v", err)
	}

	h := NewCommandHistory(path, 4)
	got := h.List(0)
	want := []string{"cmd7", "cmd8", "cmd9", "cmd10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() after trimmed load = %v, want %v", got, want)
	}
}

func TestHistoryMissingFileYieldsEmpty(t *testing.T) {
	dir, err := os.MkdirTemp("", "nlterm-history-missing")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	h := NewCommandHistory(filepath.Join(dir, "does-not-exist"), 10)
	if h.Len() != 0 {
		t.Errorf("Len() = %d for missing file, want 0", h.Len())
	}
}

func TestHistoryCursorNavigation(t *testing.T) {
	h, _ := newTestHistory(t, 50)
	h.Add("first")
	h.Add("second")
	h.Add("third")
	h.ResetCursor()

	if got, ok := h.Previous(); !ok || got != "third" {
		t.Errorf("Previous() = (%q, %v), want third", got, ok)
	}
	if got, ok := h.Previous(); !ok || got != "second" {
		t.Errorf("Previous() = (%q, %v), want second", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "third" {
		t.Errorf("Next() = (%q, %v), want third", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "" {
		t.Errorf("Next() past newest = (%q, %v), want empty line", got, ok)
	}

	// Cursor at the oldest entry stays pinned.
	h.ResetCursor()
	for i := 0; i < 10; i++ {
		h.Previous()
	}
	if got, _ := h.Previous(); got != "first" {
		t.Errorf("Previous() pinned at %q, want first", got)
	}
}

func TestHistoryList(t *testing.T) {
	h, _ := newTestHistory(t, 50)
	h.Add("a")
	h.Add("b")
	h.Add("c")

	if got := h.List(2); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("List(2) = %v, want [b c]", got)
	}
	if got := h.List(100); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("List(100) = %v, want all entries", got)
	}
}
