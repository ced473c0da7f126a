package types

import "unicode/utf8"

// Maximum field lengths enforced when rows are written to the store.
const (
	MaxIDLen          = 36
	MaxNameLen        = 50
	MaxShortNameLen   = 5
	MaxArgTypeLen     = 20
	MaxDescriptionLen = 200
)

// Command is a node in the grammar tree: a root command such as "kubectl" or
// one of its sub-commands such as "get".
type Command struct {
	ID          string
	Name        string        // Unique among siblings sharing the same parent.
	ParentID    string        // Empty for a root command.
	Aliases     []*Alias      // Owned; ordered by name when loaded.
	SubCommands []*Command    // Owned; ordered by name when loaded.
	Args        []*CommandArg // Owned; ordered by long (or short) name when loaded.

	// PresentOnCmdline is computed per request by pruning and never persisted.
	PresentOnCmdline bool
}

// Alias is an alternate name for a Command.
type Alias struct {
	ID        string
	CommandID string
	Name      string
}

// CommandArg is a flag accepted by a Command. At least one of LongName and
// ShortName is non-empty.
type CommandArg struct {
	ID          string
	CommandID   string
	ArgType     ArgType
	Description string
	LongName    string
	ShortName   string
	Opts        []*CommandOpt // Owned; ordered by name when loaded.

	// PresentOnCmdline is computed per request by pruning and never persisted.
	PresentOnCmdline bool
}

// CommandOpt is one allowed value of an Option-typed CommandArg.
type CommandOpt struct {
	ID    string
	ArgID string
	Name  string
}

// AliasNames returns the alias names in their stored order.
func (c *Command) AliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		names = append(names, a.Name)
	}
	return names
}

// ShortestAlias returns the alias with the fewest characters. The first
// alias wins among aliases of equal length. Returns false when the command has no aliases.
func (c *Command) ShortestAlias() (string, bool) {
	if len(c.Aliases) == 0 {
		return "", false
	}
	best := c.Aliases[0].Name
	for _, a := range c.Aliases[1:] {
		if utf8.RuneCountInString(a.Name) < utf8.RuneCountInString(best) {
			best = a.Name
		}
	}
	return best, true
}

// Leaf reports whether the command has neither sub-commands nor arguments.
func (c *Command) Leaf() bool {
	return len(c.SubCommands) == 0 && len(c.Args) == 0
}

// Walk calls fn for c and every descendant in depth-first pre-order. Walk
// stops early when fn returns false.
func (c *Command) Walk(fn func(*Command) bool) bool {
	if !fn(c) {
		return false
	}
	for _, sub := range c.SubCommands {
		if !sub.Walk(fn) {
			return false
		}
	}
	return true
}

// Name returns the long name when set, otherwise the short name.
func (a *CommandArg) Name() string {
	if a.LongName != "" {
		return a.LongName
	}
	return a.ShortName
}

// OptNames returns the option names in their stored order.
func (a *CommandArg) OptNames() []string {
	names := make([]string, 0, len(a.Opts))
	for _, o := range a.Opts {
		names = append(names, o.Name)
	}
	return names
}
