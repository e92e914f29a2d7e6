package main

// HandlerFunc is the uniform contract every command implements: ordered
// arguments in, output text out. Handlers report failures through typed
// errors; the dispatcher renders them.
type HandlerFunc func(args []string) (string, error)

// Command binds a name to its handler, help text and category.
type Command struct {
	Name     string
	Handler  HandlerFunc
	HelpText string
	Category string
}

// CommandRegistry maps command names to handlers. It is built once at
// startup; Register overwrites an existing binding by name and there is no
// removal. Lookups are case-sensitive on the stored key, the dispatcher
// lowercases candidate names before lookup.
type CommandRegistry struct {
	commands      map[string]*Command
	categories    map[string][]string
	categoryOrder []string
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands:   make(map[string]*Command),
		categories: make(map[string][]string),
	}
}

// Register binds name to handler, overwriting any previous binding. The
// category listing is deduplicated: re-registering a name into a category it
// already occupies does not append a second entry.
func (r *CommandRegistry) Register(name string, handler HandlerFunc, helpText, category string) {
	r.commands[name] = &Command{
		Name:     name,
		Handler:  handler,
		HelpText: helpText,
		Category: category,
	}

	if _, seen := r.categories[category]; !seen {
		r.categoryOrder = append(r.categoryOrder, category)
	}
	for _, existing := range r.categories[category] {
		if existing == name {
			return
		}
	}
	r.categories[category] = append(r.categories[category], name)
}

// Lookup returns the command registered under name, if any.
func (r *CommandRegistry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// ListByCategory returns the command names in a category, in registration
// order. Unknown categories yield nil.
func (r *CommandRegistry) ListByCategory(category string) []string {
	return r.categories[category]
}

// Categories returns the category names in first-registration order.
func (r *CommandRegistry) Categories() []string {
	return r.categoryOrder
}

// Names returns every registered command name in unspecified order.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Help returns the help text for name, or a placeholder.
func (r *CommandRegistry) Help(name string) string {
	if cmd, ok := r.commands[name]; ok && cmd.HelpText != "" {
		return cmd.HelpText
	}
	return "No help available"
}
