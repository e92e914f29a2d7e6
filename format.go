package main

import (
	"fmt"
	"strings"
)

// ANSI escape sequences for terminal output.
var ansiColors = map[string]string{
	"reset":   "\033[0m",
	"bold":    "\033[1m",
	"dim":     "\033[2m",
	"red":     "\033[31m",
	"green":   "\033[32m",
	"yellow":  "\033[33m",
	"blue":    "\033[34m",
	"magenta": "\033[35m",
	"cyan":    "\033[36m",
	"white":   "\033[37m",
}

func colorize(text, color string) string {
	code, ok := ansiColors[color]
	if !ok {
		code = ansiColors["reset"]
	}
	return code + text + ansiColors["reset"]
}

// formatSize renders a byte count in human-readable form ("1.5 MB").
func formatSize(sizeBytes uint64) string {
	if sizeBytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", sizeBytes, units[unit])
	}
	return fmt.Sprintf("%.1f %s", size, units[unit])
}

// formatList lays items out in columns, ljust-padded.
func formatList(items []string, columns, maxWidth int) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if columns <= 0 {
		columns = 3
	}

	maxLen := 0
	for _, item := range items {
		if len(item) > maxLen {
			maxLen = len(item)
		}
	}
	colWidth := maxLen + 2
	if maxWidth > 0 && colWidth > maxWidth/columns {
		colWidth = maxWidth / columns
	}

	var lines []string
	for i := 0; i < len(items); i += columns {
		end := i + columns
		if end > len(items) {
			end = len(items)
		}
		var line strings.Builder
		for _, item := range items[i:end] {
			line.WriteString(padRight(item, colWidth))
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// formatTable renders rows as an aligned table with an optional header and
// separator row.
func formatTable(rows [][]string, headers []string) string {
	if len(rows) == 0 && len(headers) == 0 {
		return ""
	}

	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}

	widths := make([]int, len(all[0]))
	for _, row := range all {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var lines []string
	for i, row := range all {
		cells := make([]string, 0, len(row))
		for j, cell := range row {
			if j < len(widths) {
				cells = append(cells, padRight(cell, widths[j]))
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "  "), " "))

		if len(headers) > 0 && i == 0 {
			seps := make([]string, len(widths))
			for j, w := range widths {
				seps[j] = strings.Repeat("-", w)
			}
			lines = append(lines, strings.Join(seps, "  "))
		}
	}
	return strings.Join(lines, "\n")
}

// truncateText caps text at maxLength, appending an ellipsis when cut.
func truncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return text[:maxLength]
	}
	return text[:maxLength-3] + "..."
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
