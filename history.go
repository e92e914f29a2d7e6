package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// CommandHistory is a bounded, append-only log of raw input lines.
// Consecutive duplicates collapse to one entry and the oldest entry is
// dropped on overflow. The on-disk form is plain UTF-8 text, one command per
// line, rewritten in full after every accepted append; persistence is
// best-effort and never fatal.
type CommandHistory struct {
	filePath string
	maxSize  int
	entries  []string
	cursor   int
}

// NewCommandHistory loads any existing history file. A missing or unreadable
// file yields an empty history.
func NewCommandHistory(filePath string, maxSize int) *CommandHistory {
	h := &CommandHistory{
		filePath: filePath,
		maxSize:  maxSize,
	}
	h.load()
	h.cursor = len(h.entries)
	return h
}

func (h *CommandHistory) load() {
	file, err := os.Open(h.filePath)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}

	// Keep only the most recent entries.
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

func (h *CommandHistory) save() {
	if h.filePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(h.filePath), 0755); err != nil {
		return
	}
	var sb strings.Builder
	for _, entry := range h.entries {
		sb.WriteString(entry)
		sb.WriteByte('\n')
	}
	// Best-effort: a failed write loses durability, not correctness.
	_ = os.WriteFile(h.filePath, []byte(sb.String()), 0600)
}

// Add appends a command, collapsing consecutive duplicates and trimming to
// the size bound, then persists.
func (h *CommandHistory) Add(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == command {
		return
	}

	h.entries = append(h.entries, command)
	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	h.save()
}

// Previous moves the cursor one entry back and returns it.
func (h *CommandHistory) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves the cursor one entry forward. Past the newest entry it returns
// an empty line, matching shell down-arrow behavior.
func (h *CommandHistory) Next() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}
	h.cursor = len(h.entries)
	return "", true
}

// ResetCursor moves the cursor past the newest entry.
func (h *CommandHistory) ResetCursor() {
	h.cursor = len(h.entries)
}

// List returns up to limit of the most recent entries, oldest first.
func (h *CommandHistory) List(limit int) []string {
	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]string, limit)
	copy(out, h.entries[len(h.entries)-limit:])
	return out
}

// Len reports the number of entries currently held.
func (h *CommandHistory) Len() int {
	return len(h.entries)
}
