package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// resolutionRule is an ordered (pattern, command template) pair. Rules are
// scanned in table order with search semantics and the first match wins, so
// more specific patterns must appear before general ones that could also
// match; table order is the entire disambiguation mechanism.
type resolutionRule struct {
	pattern  *regexp.Regexp
	template string
}

type rawRule struct {
	pattern  string
	template string
}

// basePatterns is the original small vocabulary. It is always scanned before
// the extended table below, so a base rule pre-empts any extended rule that
// could match the same input.
var basePatterns = []rawRule{
	{`show\s+(?:me\s+)?(?:the\s+)?files?`, "ls"},
	{`list\s+(?:the\s+)?(?:files?|directory)`, "ls"},
	{`go\s+to\s+(.+)`, "cd"},
	{`where\s+am\s+i`, "pwd"},
	{`create\s+(?:a\s+)?(?:directory|folder)\s+(.+)`, "mkdir"},
	{`delete\s+(?:the\s+)?(?:file|directory)\s+(.+)`, "rm"},
	{`how\s+(?:much\s+)?(?:cpu|memory|ram)`, "cpu"},
	{`show\s+(?:me\s+)?(?:running\s+)?processes?`, "ps"},
}

// extendedPatterns covers the full vocabulary. Templates may carry canonical
// flags ("rm -r"); the template is split into command plus leading args at
// resolution time.
var extendedPatterns = []rawRule{
	// Directory operations
	{`create\s+(?:a\s+)?(?:new\s+)?(?:directory|folder|dir)\s+(.+)`, "mkdir"},
	{`make\s+(?:a\s+)?(?:new\s+)?(?:directory|folder|dir)\s+(.+)`, "mkdir"},
	{`new\s+(?:directory|folder|dir)\s+(.+)`, "mkdir"},

	{`remove\s+(?:the\s+)?(?:directory|folder|dir)\s+(.+)`, "rm -r"},
	{`delete\s+(?:the\s+)?(?:directory|folder|dir)\s+(.+)`, "rm -r"},
	{`erase\s+(?:the\s+)?(?:directory|folder|dir)\s+(.+)`, "rm -r"},

	// File operations
	{`create\s+(?:a\s+)?(?:new\s+)?file\s+(.+)`, "touch"},
	{`make\s+(?:a\s+)?(?:new\s+)?file\s+(.+)`, "touch"},
	{`new\s+file\s+(.+)`, "touch"},

	{`remove\s+(?:the\s+)?file\s+(.+)`, "rm"},
	{`delete\s+(?:the\s+)?file\s+(.+)`, "rm"},
	{`erase\s+(?:the\s+)?file\s+(.+)`, "rm"},

	// Navigation
	{`go\s+to\s+(.+)`, "cd"},
	{`navigate\s+to\s+(.+)`, "cd"},
	{`enter\s+(.+)`, "cd"},
	{`open\s+(.+)`, "cd"},

	{`where\s+am\s+i`, "pwd"},
	{`current\s+directory`, "pwd"},
	{`show\s+current\s+path`, "pwd"},
	{`what\s+directory\s+am\s+i\s+in`, "pwd"},

	// Listing
	{`show\s+(?:me\s+)?(?:the\s+)?files?`, "ls"},
	{`list\s+(?:the\s+)?(?:files?|directory)`, "ls"},
	{`what\s+files\s+are\s+here`, "ls"},
	{`display\s+(?:the\s+)?files?`, "ls"},
	{`see\s+(?:the\s+)?files?`, "ls"},

	{`show\s+(?:me\s+)?(?:all\s+)?files?`, "ls -a"},
	{`list\s+(?:all\s+)?files?`, "ls -a"},
	{`show\s+hidden\s+files?`, "ls -a"},

	// File content
	{`show\s+(?:me\s+)?(?:the\s+)?contents?\s+of\s+(.+)`, "cat"},
	{`display\s+(?:the\s+)?contents?\s+of\s+(.+)`, "cat"},
	{`read\s+(?:the\s+)?file\s+(.+)`, "cat"},
	{`view\s+(?:the\s+)?file\s+(.+)`, "cat"},
	{`open\s+(?:the\s+)?file\s+(.+)`, "cat"},

	// Copy and move
	{`copy\s+(.+)`, "cp"},
	{`duplicate\s+(.+)`, "cp"},
	{`backup\s+(.+)`, "cp"},

	{`move\s+(.+)`, "mv"},
	{`rename\s+(.+)`, "mv"},
	{`relocate\s+(.+)`, "mv"},

	// Search
	{`find\s+(?:files?\s+)?(?:named\s+)?(.+)`, "find -name"},
	{`search\s+for\s+(.+)`, "find -name"},
	{`look\s+for\s+(.+)`, "find -name"},
	{`locate\s+(.+)`, "find -name"},

	// System monitoring
	{`how\s+(?:much\s+)?(?:cpu|processor)\s+(?:usage|load)`, "cpu"},
	{`cpu\s+(?:usage|load|performance)`, "cpu"},
	{`processor\s+(?:usage|load)`, "cpu"},
	{`show\s+(?:me\s+)?(?:the\s+)?cpu`, "cpu"},

	{`how\s+(?:much\s+)?(?:memory|ram)\s+(?:usage|used)`, "mem"},
	{`memory\s+(?:usage|used|consumption)`, "mem"},
	{`ram\s+(?:usage|used|consumption)`, "mem"},
	{`show\s+(?:me\s+)?(?:the\s+)?memory`, "mem"},

	{`show\s+(?:me\s+)?(?:running\s+)?processes?`, "ps"},
	{`list\s+(?:running\s+)?processes?`, "ps"},
	{`what\s+processes?\s+are\s+running`, "ps"},
	{`running\s+programs?`, "ps"},
	{`active\s+processes?`, "ps"},

	{`disk\s+(?:usage|space|free)`, "disk"},
	{`how\s+much\s+disk\s+space`, "disk"},
	{`storage\s+(?:usage|space)`, "disk"},
	{`show\s+(?:me\s+)?(?:the\s+)?disk`, "disk"},

	{`uptime`, "uptime"},
	{`how\s+long\s+has\s+(?:the\s+)?system\s+been\s+running`, "uptime"},
	{`system\s+uptime`, "uptime"},

	{`network\s+(?:info|status|statistics)`, "net"},
	{`show\s+(?:me\s+)?(?:the\s+)?network`, "net"},
	{`internet\s+(?:info|status)`, "net"},

	// Help and utility
	{`help\s+me`, "help"},
	{`what\s+can\s+i\s+do`, "help"},
	{`show\s+(?:me\s+)?(?:the\s+)?help`, "help"},
	{`commands?`, "help"},
	{`available\s+commands?`, "help"},

	{`clear\s+(?:the\s+)?screen`, "clear"},
	{`clean\s+(?:the\s+)?screen`, "clear"},
	{`wipe\s+(?:the\s+)?screen`, "clear"},

	{`exit\s+(?:the\s+)?program`, "exit"},
	{`quit\s+(?:the\s+)?program`, "exit"},
	{`close\s+(?:the\s+)?terminal`, "exit"},
	{`bye`, "exit"},
	{`goodbye`, "exit"},
}

// keywordMap backs the fallback scan when no pattern matches: the first
// recognized token picks the command, everything after it becomes arguments.
var keywordMap = map[string]string{
	// File operations
	"create": "mkdir",
	"make":   "mkdir",
	"new":    "mkdir",
	"remove": "rm",
	"delete": "rm",
	"erase":  "rm",

	// Navigation
	"go":       "cd",
	"navigate": "cd",
	"enter":    "cd",
	"open":     "cd",
	"where":    "pwd",
	"current":  "pwd",

	// Listing
	"show":    "ls",
	"list":    "ls",
	"display": "ls",
	"see":     "ls",
	"files":   "ls",

	// File content
	"read":     "cat",
	"view":     "cat",
	"contents": "cat",

	// System
	"cpu":       "cpu",
	"memory":    "mem",
	"ram":       "mem",
	"processes": "ps",
	"disk":      "disk",
	"uptime":    "uptime",
	"network":   "net",

	// Utility
	"help":  "help",
	"clear": "clear",
	"exit":  "exit",
	"quit":  "exit",
}

// suggestionPrefixes maps partial first words to likely commands for
// "did you mean" hints.
var suggestionPrefixes = map[string]string{
	"cre": "mkdir",
	"mak": "mkdir",
	"new": "mkdir",
	"rem": "rm",
	"del": "rm",
	"go":  "cd",
	"sho": "ls",
	"lis": "ls",
	"rea": "cat",
	"cpu": "cpu",
	"mem": "mem",
	"pro": "ps",
	"dis": "disk",
	"net": "net",
	"hel": "help",
	"cle": "clear",
	"exi": "exit",
}

// NaturalLanguageResolver maps free text to a (command, args) pair using the
// ordered rule tables above. It holds no mutable state after construction;
// resolving the same text twice always yields the same result.
type NaturalLanguageResolver struct {
	rules []resolutionRule
}

func NewNaturalLanguageResolver() *NaturalLanguageResolver {
	r := &NaturalLanguageResolver{}
	r.compile(basePatterns)
	r.compile(extendedPatterns)
	return r
}

func (r *NaturalLanguageResolver) compile(raw []rawRule) {
	for _, rr := range raw {
		r.rules = append(r.rules, resolutionRule{
			pattern:  regexp.MustCompile(rr.pattern),
			template: rr.template,
		})
	}
}

// Resolve normalizes the input, scans the rule table in order (a match
// anywhere in the text counts) and falls back to the keyword scan. An empty
// command means the input was not understood.
func (r *NaturalLanguageResolver) Resolve(text string) (string, []string) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", nil
	}

	for _, rule := range r.rules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var args []string
		if len(m) > 1 {
			args = strings.Fields(strings.TrimSpace(m[1]))
		}
		command, leading := splitTemplate(rule.template)
		return command, append(leading, args...)
	}

	return r.keywordResolve(text)
}

func (r *NaturalLanguageResolver) keywordResolve(text string) (string, []string) {
	words := strings.Fields(text)
	for i, word := range words {
		if command, ok := keywordMap[word]; ok {
			return command, words[i+1:]
		}
	}
	return "", nil
}

// Suggest returns candidate command names for partial input. Candidates are
// hints only, they are never executed on the caller's behalf.
func (r *NaturalLanguageResolver) Suggest(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	for _, rule := range r.rules {
		if rule.pattern.FindStringIndex(text) != nil {
			command, _ := splitTemplate(rule.template)
			seen[command] = true
		}
	}

	if words := strings.Fields(text); len(words) > 0 {
		for prefix, command := range suggestionPrefixes {
			if strings.HasPrefix(words[0], prefix) {
				seen[command] = true
			}
		}
	}

	suggestions := make([]string, 0, len(seen))
	for command := range seen {
		suggestions = append(suggestions, command)
	}
	sort.Strings(suggestions)
	return suggestions
}

// ExplainTranslation renders the "interpreted as" line shown when free text
// was resolved into a command.
func (r *NaturalLanguageResolver) ExplainTranslation(input, command string, args []string) string {
	if command == "" {
		return fmt.Sprintf("I didn't understand '%s'. Try using specific commands like 'ls', 'mkdir', 'cpu', etc.", input)
	}
	full := command
	if len(args) > 0 {
		full += " " + strings.Join(args, " ")
	}
	return fmt.Sprintf("interpreted as: %s", full)
}

// splitTemplate splits a command template into the registry name and any
// canonical leading arguments ("rm -r" -> "rm", ["-r"]).
func splitTemplate(template string) (string, []string) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
