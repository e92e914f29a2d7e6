package main

import (
	"fmt"
	"strings"
)

var categoryTitles = map[string]string{
	"utility":    "Utility",
	"filesystem": "File System",
	"system":     "System Monitoring",
	"natural":    "Natural Language",
	"codemate":   "CodeMate",
}

func (c *CLI) cmdHelp(args []string) (string, error) {
	if len(args) > 0 {
		return c.helpFor(args[0])
	}

	var sb strings.Builder
	sb.WriteString(c.color("Available commands:", "bold") + "\n")

	for _, category := range c.registry.Categories() {
		title, ok := categoryTitles[category]
		if !ok {
			title = category
		}
		sb.WriteString("\n" + c.color(title+":", "cyan") + "\n")
		for _, name := range c.registry.ListByCategory(category) {
			fmt.Fprintf(&sb, "  %-10s %s\n", name, c.registry.Help(name))
		}
	}

	sb.WriteString("\nYou can also type plain English, for example: ")
	sb.WriteString(c.color("create folder projects", "green"))
	sb.WriteString("\nUse 'help <command>' for details on a specific command.")
	return sb.String(), nil
}

func (c *CLI) helpFor(name string) (string, error) {
	name = strings.ToLower(name)
	cmd, ok := c.registry.Lookup(name)
	if !ok {
		return fmt.Sprintf("No help available for '%s'. Type 'help' for the command list.", name), nil
	}

	out := fmt.Sprintf("%s - %s", c.color(cmd.Name, "bold"), cmd.HelpText)
	if usage := commandUsageText(cmd.Name); usage != "" {
		out += "\n" + usage
	}
	return out, nil
}

// commandUsageText holds per-command usage lines for the detailed help view.
func commandUsageText(name string) string {
	switch name {
	case "ls":
		return "Usage: ls [-a] [-l] [path]\n  -a  include hidden entries\n  -l  long format with sizes"
	case "mkdir":
		return "Usage: mkdir [-p] <directory>...\n  -p  create parent directories as needed"
	case "rm":
		return "Usage: rm [-r] [-f] <target>...\n  -r  remove directories recursively\n  -f  ignore missing targets"
	case "cat":
		return "Usage: cat [-n] <file>...\n  -n  number output lines"
	case "cp":
		return "Usage: cp [-r] <source>... <destination>\n  -r  copy directories recursively"
	case "mv":
		return "Usage: mv <source> <destination>"
	case "find":
		return "Usage: find [path] -name <pattern>"
	case "wc":
		return "Usage: wc [-l] [-w] [-c] <file>..."
	case "head", "tail":
		return fmt.Sprintf("Usage: %s [-n <num>] <file>...", name)
	case "cpu":
		return "Usage: cpu [-i <seconds>] [-c <count>] [-p]\n  -i  sampling interval\n  -c  number of samples\n  -p  per-core breakdown"
	case "mem":
		return "Usage: mem [-s] [-d]\n  -s  include swap\n  -d  detailed breakdown"
	case "ps":
		return "Usage: ps [-a] [-n <count>] [-m] [-u <user>] [-p <pattern>]"
	case "disk":
		return "Usage: disk [-a]\n  -a  include all partitions"
	case "net":
		return "Usage: net [-i] [-s]\n  -i  interfaces only\n  -s  statistics only"
	case "nlc":
		return "Usage: nlc <natural language command>\nTranslates plain English without executing it."
	case "history":
		return "Usage: history [count]"
	case "stats":
		return "Usage: stats [count]"
	}
	return ""
}
