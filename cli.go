package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
)

// CLI owns the REPL: it reads lines, resolves them to registered commands
// (directly or through the natural-language resolver) and renders handler
// results and errors. Everything is single-threaded and synchronous; one
// command runs to completion before the next line is read.
type CLI struct {
	cfg      *Config
	registry *CommandRegistry
	history  *CommandHistory
	resolver *NaturalLanguageResolver
	jail     *PathJail
	usage    *UsageTracker
	codemate *CodeMateClient
	workDir  string
	running  bool
}

// NewCLI wires the registry, history, resolver and path jail from an
// explicit configuration. Only an unusable jail root is fatal; a failed
// usage database degrades to no statistics.
func NewCLI(cfg *Config) (*CLI, error) {
	jail, err := NewPathJail(cfg.RootDir, cfg.MaxPathDepth)
	if err != nil {
		return nil, err
	}

	c := &CLI{
		cfg:      cfg,
		registry: NewCommandRegistry(),
		history:  NewCommandHistory(cfg.HistoryFile, cfg.MaxHistorySize),
		resolver: NewNaturalLanguageResolver(),
		jail:     jail,
		codemate: NewCodeMateClient(cfg.CodeMateURL, os.Getenv("CODEMATE_API_KEY")),
		workDir:  jail.Root(),
		running:  true,
	}

	if cfg.UsageDBPath != "" {
		usage, err := NewUsageTracker(cfg.UsageDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: usage statistics disabled: %v\n", err)
		} else {
			c.usage = usage
		}
	}

	c.registerBuiltins()
	return c, nil
}

// Close releases resources held across the loop.
func (c *CLI) Close() {
	if c.usage != nil {
		c.usage.Close()
	}
}

func (c *CLI) registerBuiltins() {
	r := c.registry

	// Utility commands
	r.Register("help", c.cmdHelp, "Show help information", "utility")
	r.Register("exit", c.cmdExit, "Exit the shell", "utility")
	r.Register("quit", c.cmdExit, "Exit the shell", "utility")
	r.Register("clear", c.cmdClear, "Clear the screen", "utility")
	r.Register("history", c.cmdHistory, "Show command history", "utility")
	r.Register("stats", c.cmdStats, "Show command usage statistics", "utility")

	// Filesystem commands
	r.Register("pwd", c.cmdPwd, "Print working directory", "filesystem")
	r.Register("cd", c.cmdCd, "Change directory", "filesystem")
	r.Register("ls", c.cmdLs, "List directory contents", "filesystem")
	r.Register("mkdir", c.cmdMkdir, "Create directories", "filesystem")
	r.Register("rm", c.cmdRm, "Remove files and directories", "filesystem")
	r.Register("touch", c.cmdTouch, "Create empty files or update timestamps", "filesystem")
	r.Register("cat", c.cmdCat, "Display file contents", "filesystem")
	r.Register("cp", c.cmdCp, "Copy files and directories", "filesystem")
	r.Register("mv", c.cmdMv, "Move or rename files and directories", "filesystem")
	r.Register("find", c.cmdFind, "Find files and directories", "filesystem")
	r.Register("wc", c.cmdWc, "Count lines, words, and characters", "filesystem")
	r.Register("head", c.cmdHead, "Display first lines of files", "filesystem")
	r.Register("tail", c.cmdTail, "Display last lines of files", "filesystem")

	// System monitoring commands
	r.Register("cpu", c.cmdCPU, "Display CPU usage information", "system")
	r.Register("mem", c.cmdMem, "Display memory usage information", "system")
	r.Register("ps", c.cmdPs, "Display running processes", "system")
	r.Register("disk", c.cmdDisk, "Display disk usage information", "system")
	r.Register("uptime", c.cmdUptime, "Display system uptime", "system")
	r.Register("net", c.cmdNet, "Display network information", "system")

	// Natural language processing
	r.Register("nlc", c.cmdNlc, "Process natural language commands", "natural")

	// CodeMate integration
	r.Register("compile", c.cmdCompile, "Compile and analyze code with CodeMate", "codemate")
	r.Register("analyze", c.cmdAnalyze, "Analyze code for issues and improvements", "codemate")
	r.Register("optimize", c.cmdOptimize, "Optimize code for better performance", "codemate")
	r.Register("debug", c.cmdDebug, "Debug code issues with AI assistance", "codemate")
	r.Register("generate", c.cmdGenerate, "Generate code using AI", "codemate")
	r.Register("refactor", c.cmdRefactor, "Refactor code for better maintainability", "codemate")
}

func (c *CLI) color(text, color string) string {
	if c.cfg.DisableColor {
		return text
	}
	return colorize(text, color)
}

// tokenize splits a raw line into shell words. Single- or double-quoted
// substrings form single tokens; an unterminated quote is a parse error.
func tokenize(line string) ([]string, error) {
	var tokens []string
	var cur []rune
	var quote rune
	quoted := false

	flush := func() {
		if len(cur) > 0 || quoted {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			quoted = false
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur = append(cur, r)
			}
		case r == '\'' || r == '"':
			quote = r
			quoted = true
		case unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
		}
	}

	if quote != 0 {
		return nil, invalidArgError("Invalid command syntax: unterminated quote")
	}
	flush()
	return tokens, nil
}

// Dispatch resolves one raw input line to a command and runs it, returning
// the text to display. Handler failures of any kind come back as rendered
// error lines, never as a dead loop.
func (c *CLI) Dispatch(line string) string {
	tokens, err := tokenize(line)
	if err != nil {
		return c.renderError(err)
	}
	if len(tokens) == 0 {
		return ""
	}

	name := strings.ToLower(tokens[0])
	cmd, ok := c.registry.Lookup(name)
	if !ok {
		// The whole original line goes to the resolver, not just the
		// unrecognized first token.
		return c.dispatchNatural(line, name)
	}
	return c.invoke(cmd, tokens[1:])
}

func (c *CLI) dispatchNatural(line, name string) string {
	nlCommand, nlArgs := c.resolver.Resolve(line)
	if nlCommand == "" {
		msg := c.renderError(commandNotFoundError(name))
		if suggestions := c.suggestFor(line); len(suggestions) > 0 {
			msg += "\nDid you mean: " + strings.Join(suggestions, ", ") + "?"
		}
		return msg
	}

	cmd, ok := c.registry.Lookup(nlCommand)
	if !ok {
		// Resolution nominally succeeded but named an unregistered command.
		return fmt.Sprintf("Command '%s' not found.", nlCommand)
	}

	header := c.color(c.resolver.ExplainTranslation(line, nlCommand, nlArgs), "green")
	out := c.invoke(cmd, nlArgs)
	if out == "" {
		return header
	}
	return header + "\n" + out
}

func (c *CLI) invoke(cmd *Command, args []string) string {
	out, err := c.safeCall(cmd, args)
	if c.usage != nil {
		c.usage.Record(cmd.Name)
	}
	if err != nil {
		return c.renderError(err)
	}
	return out
}

// safeCall is the dispatcher's backstop: a panicking handler becomes an
// unexpected error instead of taking down the loop.
func (c *CLI) safeCall(cmd *Command, args []string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TermError{Kind: ErrUnexpected, Message: fmt.Sprintf("%v", r)}
		}
	}()
	return cmd.Handler(args)
}

// renderError turns any error into a display line, once, at the boundary.
func (c *CLI) renderError(err error) string {
	var te *TermError
	if errors.As(err, &te) {
		switch te.Kind {
		case ErrSecurity:
			return c.color("Security violation: "+strings.TrimPrefix(te.Error(), "security violation: "), "red")
		case ErrNotFound, ErrInvalidArgument, ErrPermission:
			return c.color("Error: "+te.Error(), "red")
		}
	}
	return c.color(fmt.Sprintf("Unexpected error: %v", err), "red")
}

// resolvePath validates a user-supplied path against the jail, relative to
// the current working directory.
func (c *CLI) resolvePath(path string) (string, error) {
	return c.jail.ResolveFrom(c.workDir, path)
}

// prompt reflects the working directory relative to the jail root, falling
// back to the absolute path outside it.
func (c *CLI) prompt() string {
	rel, err := filepath.Rel(c.jail.Root(), c.workDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return c.color(c.workDir+" "+c.cfg.PromptSymbol, "cyan")
	}
	if rel == "." {
		return c.color(c.cfg.PromptSymbol, "cyan")
	}
	return c.color(rel+" "+c.cfg.PromptSymbol, "cyan")
}

// Run is the REPL loop. It stops when the exit handler clears the running
// flag or the input stream ends.
func (c *CLI) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            c.prompt(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryLimit:      c.cfg.MaxHistorySize,
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize input: %v", err)
	}
	defer rl.Close()

	// Make loaded history reachable with the arrow keys.
	for _, entry := range c.history.List(0) {
		rl.SaveHistory(entry)
	}

	fmt.Println(c.color("nlterm - Natural Language Command Terminal", "bold"))
	fmt.Printf("Type %s for available commands or %s to quit.\n", c.color("help", "cyan"), c.color("exit", "cyan"))
	fmt.Println(strings.Repeat("=", 50))

	for c.running {
		rl.SetPrompt(c.prompt())

		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(c.color("Press Ctrl+D or type exit to quit.", "yellow"))
				continue
			}
			if err == io.EOF {
				fmt.Println(c.color("Goodbye!", "green"))
				return nil
			}
			fmt.Println(c.renderError(err))
			continue
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}

		c.history.Add(line)
		c.history.ResetCursor()

		if out := c.Dispatch(line); out != "" {
			fmt.Println(out)
		}
	}

	return nil
}

// --- utility command handlers ---

func (c *CLI) cmdExit(args []string) (string, error) {
	c.running = false
	return "Goodbye!", nil
}

func (c *CLI) cmdClear(args []string) (string, error) {
	fmt.Print("\033[2J\033[H")
	return "", nil
}

func (c *CLI) cmdHistory(args []string) (string, error) {
	limit := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", invalidArgError("Invalid history limit: %s", args[0])
		}
		limit = n
	}

	entries := c.history.List(limit)
	if len(entries) == 0 {
		return "No command history available.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Command history (last %d commands):\n", len(entries))
	for i, entry := range entries {
		fmt.Fprintf(&sb, "  %3d: %s\n", i+1, entry)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *CLI) cmdPwd(args []string) (string, error) {
	return c.workDir, nil
}

func (c *CLI) cmdCd(args []string) (string, error) {
	if len(args) == 0 {
		c.workDir = c.jail.Root()
		return fmt.Sprintf("Changed directory to '%s'", c.workDir), nil
	}

	target, err := c.resolvePath(args[0])
	if err != nil {
		return "", err
	}

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFoundError(target)
		}
		return "", permissionError(target)
	}
	if !info.IsDir() {
		return "", invalidArgError("Not a directory: %s", target)
	}

	c.workDir = target
	return fmt.Sprintf("Changed directory to '%s'", target), nil
}

func (c *CLI) cmdNlc(args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: nlc <natural language command>\nExample: nlc 'create folder test'", nil
	}

	input := strings.Join(args, " ")
	command, cmdArgs := c.resolver.Resolve(input)
	if command == "" {
		if suggestions := c.resolver.Suggest(input); len(suggestions) > 0 {
			return fmt.Sprintf("I didn't understand '%s'. Did you mean: %s?", input, strings.Join(suggestions, ", ")), nil
		}
		return fmt.Sprintf("I didn't understand '%s'. Try using specific commands like 'ls', 'mkdir', 'cpu', etc.", input), nil
	}

	full := command
	if len(cmdArgs) > 0 {
		full += " " + strings.Join(cmdArgs, " ")
	}
	out := fmt.Sprintf("Understood '%s' as: %s", input, c.color(full, "green"))
	if context := translationContext(command); context != "" {
		out += "\n" + context
	}
	return out, nil
}

// translationContext adds a one-line description for common targets of
// natural-language translation.
func translationContext(command string) string {
	switch command {
	case "mkdir":
		return "This will create a new directory."
	case "rm":
		return "This will remove files or directories."
	case "ls":
		return "This will list directory contents."
	case "cd":
		return "This will change to the specified directory."
	case "cpu":
		return "This will show CPU usage information."
	case "mem":
		return "This will show memory usage information."
	case "ps":
		return "This will show running processes."
	}
	return ""
}
