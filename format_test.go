package main

import (
	"strings"
	"testing"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tc := range cases {
		if got := formatSize(tc.in); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatList(t *testing.T) {
	if got := formatList(nil, 3, 80); got != "" {
		t.Errorf("formatList(nil) = %q, want empty", got)
	}
	if got := formatList([]string{"only"}, 3, 80); got != "only" {
		t.Errorf("formatList(single) = %q", got)
	}

	got := formatList([]string{"a", "b", "c", "d"}, 3, 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("formatList produced %d lines, want 2: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "a") || !strings.Contains(lines[1], "d") {
		t.Errorf("formatList rows wrong: %q", got)
	}
}

func TestFormatTable(t *testing.T) {
	got := formatTable([][]string{
		{"1", "alpha"},
		{"22", "b"},
	}, []string{"ID", "NAME"})

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("formatTable produced %d lines, want 4: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("Header row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("Separator row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "1 ") {
		t.Errorf("Data row = %q", lines[2])
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("truncateText(short) = %q", got)
	}
	if got := truncateText("a long piece of text", 10); got != "a long ..." {
		t.Errorf("truncateText = %q", got)
	}
}

func TestColorize(t *testing.T) {
	got := colorize("hi", "red")
	if !strings.HasPrefix(got, "\033[31m") || !strings.HasSuffix(got, "\033[0m") {
		t.Errorf("colorize = %q", got)
	}
}
