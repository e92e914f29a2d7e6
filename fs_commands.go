package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Filesystem command handlers. Every path a user supplies goes through the
// jail before any filesystem call; the handlers keep "outside the jail" and
// "does not exist" strictly separate in their messages.

// validateFilename rejects empty names and characters that are unsafe on at
// least one supported platform.
func validateFilename(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, `<>:"|?*`) {
		return false
	}
	reserved := map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
		"COM6": true, "COM7": true, "COM8": true, "COM9": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
		"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
	}
	return !reserved[strings.ToUpper(name)]
}

// wrapPathErr maps an OS error to the matching typed error for path.
func wrapPathErr(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return notFoundError(path)
	case os.IsPermission(err):
		return permissionError(path)
	default:
		return &TermError{Kind: ErrUnexpected, Path: path, Message: err.Error()}
	}
}

// splitFlags separates single-dash flags from positional arguments.
func splitFlags(args []string) (map[string]bool, []string) {
	flags := make(map[string]bool)
	var positional []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			flags[arg] = true
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func (c *CLI) cmdLs(args []string) (string, error) {
	showHidden := false
	longFormat := false
	target := c.workDir

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "a") {
				showHidden = true
			}
			if strings.Contains(arg, "l") {
				longFormat = true
			}
		} else {
			resolved, err := c.resolvePath(arg)
			if err != nil {
				return "", err
			}
			target = resolved
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", wrapPathErr(target, err)
	}
	if !info.IsDir() {
		return "", invalidArgError("Not a directory: %s", target)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return "", wrapPathErr(target, err)
	}

	var items []os.DirEntry
	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		items = append(items, entry)
	}

	// Directories first, then case-insensitive by name.
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsDir() != items[j].IsDir() {
			return items[i].IsDir()
		}
		return strings.ToLower(items[i].Name()) < strings.ToLower(items[j].Name())
	})

	if len(items) == 0 {
		return "Directory is empty.", nil
	}

	if longFormat {
		var lines []string
		for _, item := range items {
			fi, err := item.Info()
			if err != nil {
				continue
			}
			typeChar := "-"
			if fi.IsDir() {
				typeChar = "d"
			}
			name := c.colorName(item.Name(), fi)
			lines = append(lines, fmt.Sprintf("%s%s %8s %s", typeChar, fi.Mode().Perm().String()[1:], formatSize(uint64(fi.Size())), name))
		}
		return strings.Join(lines, "\n"), nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		fi, err := item.Info()
		if err != nil {
			names = append(names, item.Name())
			continue
		}
		names = append(names, c.colorName(item.Name(), fi))
	}
	return formatList(names, 3, 80), nil
}

func (c *CLI) colorName(name string, fi os.FileInfo) string {
	if fi.IsDir() {
		return c.color(name, "blue")
	}
	if fi.Mode().Perm()&0111 != 0 {
		return c.color(name, "green")
	}
	return name
}

func (c *CLI) cmdMkdir(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: mkdir [options] <directory>...\nUse -p to create parent directories.", nil
	}

	flags, directories := splitFlags(args)
	createParents := flags["-p"]

	if len(directories) == 0 {
		return "", invalidArgError("No directories specified")
	}

	var results []string
	for _, directory := range directories {
		if !validateFilename(filepath.Base(directory)) {
			results = append(results, fmt.Sprintf("Invalid path: %s", directory))
			continue
		}

		path, err := c.resolvePath(directory)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		if createParents {
			err = os.MkdirAll(path, 0755)
		} else {
			err = os.Mkdir(path, 0755)
		}
		switch {
		case err == nil:
			results = append(results, fmt.Sprintf("Directory '%s' created successfully", path))
		case os.IsExist(err):
			results = append(results, fmt.Sprintf("Directory '%s' already exists.", directory))
		default:
			results = append(results, c.renderError(wrapPathErr(path, err)))
		}
	}
	return strings.Join(results, "\n"), nil
}

func (c *CLI) cmdRm(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: rm [options] <file>...\nUse -r for directories, -f to force.", nil
	}

	flags, targets := splitFlags(args)
	recursive := flags["-r"]
	force := flags["-f"]

	if len(targets) == 0 {
		return "", invalidArgError("No files or directories specified")
	}

	var results []string
	for _, target := range targets {
		path, err := c.resolvePath(target)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) && force {
				continue
			}
			results = append(results, c.renderError(wrapPathErr(path, err)))
			continue
		}

		if info.IsDir() {
			if !recursive {
				results = append(results, fmt.Sprintf("Cannot remove directory '%s': use -r for recursive removal", target))
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				results = append(results, c.renderError(wrapPathErr(path, err)))
				continue
			}
			results = append(results, fmt.Sprintf("Directory '%s' deleted successfully", path))
		} else {
			if err := os.Remove(path); err != nil {
				results = append(results, c.renderError(wrapPathErr(path, err)))
				continue
			}
			results = append(results, fmt.Sprintf("File '%s' deleted successfully", path))
		}
	}
	if len(results) == 0 {
		return "", nil
	}
	return strings.Join(results, "\n"), nil
}

func (c *CLI) cmdTouch(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: touch <file>...", nil
	}

	var results []string
	for _, filename := range args {
		if !validateFilename(filepath.Base(filename)) {
			results = append(results, fmt.Sprintf("Invalid path: %s", filename))
			continue
		}

		path, err := c.resolvePath(filename)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		if _, err := os.Stat(path); err == nil {
			now := time.Now()
			if err := os.Chtimes(path, now, now); err != nil {
				results = append(results, c.renderError(wrapPathErr(path, err)))
				continue
			}
		} else {
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				results = append(results, c.renderError(wrapPathErr(path, err)))
				continue
			}
			file.Close()
		}
		results = append(results, fmt.Sprintf("Touched '%s'", filename))
	}
	return strings.Join(results, "\n"), nil
}

func (c *CLI) cmdCat(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: cat [options] <file>...\nUse -n to number lines.", nil
	}

	flags, files := splitFlags(args)
	numberLines := flags["-n"]

	if len(files) == 0 {
		return "", invalidArgError("No files specified")
	}

	var results []string
	for _, filename := range files {
		path, err := c.resolvePath(filename)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			results = append(results, c.renderError(wrapPathErr(path, err)))
			continue
		}
		if info.IsDir() {
			results = append(results, fmt.Sprintf("Invalid path: %s", path))
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, c.renderError(wrapPathErr(path, err)))
			continue
		}
		if !utf8.Valid(data) {
			results = append(results, fmt.Sprintf("Cannot read '%s': file contains binary data", filename))
			continue
		}
		if len(data) == 0 {
			results = append(results, fmt.Sprintf("'%s' is empty", filename))
			continue
		}

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if numberLines {
			for i, line := range lines {
				results = append(results, fmt.Sprintf("%6d: %s", i+1, line))
			}
		} else {
			results = append(results, lines...)
		}
		if len(files) > 1 {
			results = append(results, "")
		}
	}
	return strings.TrimRight(strings.Join(results, "\n"), "\n"), nil
}

func (c *CLI) cmdCp(args []string) (string, error) {
	flags, paths := splitFlags(args)
	recursive := flags["-r"]

	if len(paths) < 2 {
		return "Usage: cp [options] <source>... <destination>\nUse -r for directories.", nil
	}

	sources := paths[:len(paths)-1]
	destination := paths[len(paths)-1]

	destPath, err := c.resolvePath(destination)
	if err != nil {
		return "", err
	}

	destInfo, destErr := os.Stat(destPath)
	destIsDir := destErr == nil && destInfo.IsDir()
	if len(sources) > 1 && !destIsDir {
		return "", invalidArgError("Multiple sources require destination to be a directory")
	}

	var results []string
	for _, source := range sources {
		srcPath, err := c.resolvePath(source)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		srcInfo, err := os.Stat(srcPath)
		if err != nil {
			results = append(results, c.renderError(wrapPathErr(srcPath, err)))
			continue
		}

		target := destPath
		if destIsDir {
			target = filepath.Join(destPath, filepath.Base(srcPath))
		}

		if srcInfo.IsDir() {
			if !recursive {
				results = append(results, fmt.Sprintf("Cannot copy directory '%s': use -r for recursive copy", source))
				continue
			}
			if err := copyDir(srcPath, target); err != nil {
				results = append(results, c.renderError(wrapPathErr(srcPath, err)))
				continue
			}
		} else {
			if err := copyFile(srcPath, target, srcInfo.Mode()); err != nil {
				results = append(results, c.renderError(wrapPathErr(srcPath, err)))
				continue
			}
		}
		results = append(results, fmt.Sprintf("Copied '%s' to '%s'", source, target))
	}
	return strings.Join(results, "\n"), nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func (c *CLI) cmdMv(args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: mv <source> <destination>", nil
	}

	srcPath, err := c.resolvePath(args[0])
	if err != nil {
		return "", err
	}
	destPath, err := c.resolvePath(args[1])
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(srcPath); err != nil {
		return "", wrapPathErr(srcPath, err)
	}

	// Moving onto an existing directory nests the source inside it.
	if info, err := os.Stat(destPath); err == nil && info.IsDir() {
		destPath = filepath.Join(destPath, filepath.Base(srcPath))
	}

	if err := os.Rename(srcPath, destPath); err != nil {
		return "", wrapPathErr(srcPath, err)
	}
	return fmt.Sprintf("Moved '%s' to '%s'", args[0], args[1]), nil
}

func (c *CLI) cmdFind(args []string) (string, error) {
	searchPath := "."
	pattern := ""

	switch {
	case len(args) >= 2 && args[0] == "-name":
		pattern = args[1]
	case len(args) >= 3 && args[1] == "-name":
		searchPath = args[0]
		pattern = args[2]
	default:
		return "Usage: find [path] -name <pattern>", nil
	}

	root, err := c.resolvePath(searchPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", wrapPathErr(root, err)
	}
	if !info.IsDir() {
		return "", invalidArgError("Not a directory: %s", root)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if path != root && strings.Contains(d.Name(), pattern) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", wrapPathErr(root, err)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No files or directories found matching '%s'", pattern), nil
	}
	sort.Strings(matches)
	return strings.Join(matches, "\n"), nil
}

func (c *CLI) cmdWc(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: wc [options] <file>...\nOptions: -l (lines), -w (words), -c (characters)", nil
	}

	flags, files := splitFlags(args)
	countLines := flags["-l"]
	countWords := flags["-w"]
	countChars := flags["-c"]
	if !countLines && !countWords && !countChars {
		countLines, countWords, countChars = true, true, true
	}

	if len(files) == 0 {
		return "", invalidArgError("No files specified")
	}

	var results []string
	var totalLines, totalWords, totalChars int

	for _, filename := range files {
		path, err := c.resolvePath(filename)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			results = append(results, fmt.Sprintf("wc: '%s': No such file", filename))
			continue
		}
		if info.IsDir() {
			results = append(results, fmt.Sprintf("wc: '%s': Is a directory", filename))
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, c.renderError(wrapPathErr(path, err)))
			continue
		}
		if !utf8.Valid(data) {
			results = append(results, fmt.Sprintf("wc: '%s': Cannot read binary file", filename))
			continue
		}

		content := string(data)
		lines := strings.Count(content, "\n")
		words := len(strings.Fields(content))
		chars := len(content)

		var parts []string
		if countLines {
			parts = append(parts, fmt.Sprintf("%8d", lines))
		}
		if countWords {
			parts = append(parts, fmt.Sprintf("%8d", words))
		}
		if countChars {
			parts = append(parts, fmt.Sprintf("%8d", chars))
		}
		parts = append(parts, filename)
		results = append(results, strings.Join(parts, " "))

		totalLines += lines
		totalWords += words
		totalChars += chars
	}

	if len(files) > 1 {
		var parts []string
		if countLines {
			parts = append(parts, fmt.Sprintf("%8d", totalLines))
		}
		if countWords {
			parts = append(parts, fmt.Sprintf("%8d", totalWords))
		}
		if countChars {
			parts = append(parts, fmt.Sprintf("%8d", totalChars))
		}
		parts = append(parts, "total")
		results = append(results, strings.Join(parts, " "))
	}
	return strings.Join(results, "\n"), nil
}

func (c *CLI) cmdHead(args []string) (string, error) {
	return c.headTail(args, "head", false)
}

func (c *CLI) cmdTail(args []string) (string, error) {
	return c.headTail(args, "tail", true)
}

func (c *CLI) headTail(args []string, name string, fromEnd bool) (string, error) {
	if len(args) == 0 {
		return fmt.Sprintf("Usage: %s [options] <file>...\nUse -n <num> to specify number of lines.", name), nil
	}

	numLines := 10
	var files []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" {
			if i+1 >= len(args) {
				return "", invalidArgError("Missing value for -n")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return "", invalidArgError("Invalid number of lines: %s", args[i+1])
			}
			numLines = n
			i++
		} else if !strings.HasPrefix(args[i], "-") {
			files = append(files, args[i])
		}
	}

	if len(files) == 0 {
		return "", invalidArgError("No files specified")
	}

	var results []string
	for _, filename := range files {
		path, err := c.resolvePath(filename)
		if err != nil {
			results = append(results, c.renderError(err))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			results = append(results, fmt.Sprintf("%s: '%s': No such file", name, filename))
			continue
		}
		if info.IsDir() {
			results = append(results, fmt.Sprintf("%s: '%s': Is a directory", name, filename))
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, c.renderError(wrapPathErr(path, err)))
			continue
		}
		if !utf8.Valid(data) {
			results = append(results, fmt.Sprintf("%s: '%s': Cannot read binary file", name, filename))
			continue
		}

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if fromEnd {
			if len(lines) > numLines {
				lines = lines[len(lines)-numLines:]
			}
		} else if len(lines) > numLines {
			lines = lines[:numLines]
		}
		results = append(results, lines...)
		if len(files) > 1 {
			results = append(results, "")
		}
	}
	return strings.TrimRight(strings.Join(results, "\n"), "\n"), nil
}
