// Package complete prunes a loaded grammar tree against the words already
// typed and recommends what can come next.
package complete

import (
	"strings"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// tokenSet holds the typed words for exact matching. A single trailing '='
// is dropped so "--output=" matches the argument "--output".
type tokenSet map[string]struct{}

func newTokenSet(tokens []string) tokenSet {
	set := make(tokenSet, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSuffix(tok, "=")
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// has reports whether name was typed. Empty names never match.
func (s tokenSet) has(name string) bool {
	if name == "" {
		return false
	}
	_, ok := s[name]
	return ok
}

// Prune marks the args and sub-commands of root that appear in tokens and
// removes what the user has already fully typed. Tokens should not include
// the root command name itself.
func Prune(root *types.Command, tokens []string) {
	set := newTokenSet(tokens)
	pruneArguments(root, set)
	pruneSubCommands(root, set)
}

// pruneArguments marks each of cmd's args that was typed. A typed arg is
// dropped when it takes no options or one of its options was typed too;
// otherwise it is kept, still waiting for its value.
func pruneArguments(cmd *types.Command, set tokenSet) {
	kept := make([]*types.CommandArg, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		if !set.has(arg.LongName) && !set.has(arg.ShortName) {
			kept = append(kept, arg)
			continue
		}
		arg.PresentOnCmdline = true
		if len(arg.Opts) == 0 || anyOptTyped(arg, set) {
			continue
		}
		kept = append(kept, arg)
	}
	cmd.Args = kept
}

func anyOptTyped(arg *types.CommandArg, set tokenSet) bool {
	for _, opt := range arg.Opts {
		if set.has(opt.Name) {
			return true
		}
	}
	return false
}

// pruneSubCommands marks each sub-command typed by name or alias. The first
// typed sub-command eliminates all of its siblings. Remaining sub-commands
// are pruned recursively, and a typed sub-command left with nothing to offer
// is removed.
func pruneSubCommands(cmd *types.Command, set tokenSet) {
	var chosen *types.Command
	for _, sub := range cmd.SubCommands {
		sub.PresentOnCmdline = typed(sub, set)
		if sub.PresentOnCmdline && chosen == nil {
			chosen = sub
		}
	}
	remaining := cmd.SubCommands
	if chosen != nil {
		remaining = []*types.Command{chosen}
	}

	kept := make([]*types.Command, 0, len(remaining))
	for _, sub := range remaining {
		pruneArguments(sub, set)
		pruneSubCommands(sub, set)
		if sub.PresentOnCmdline && sub.Leaf() {
			continue
		}
		kept = append(kept, sub)
	}
	cmd.SubCommands = kept
}

// typed reports whether cmd's name or one of its aliases was typed.
func typed(cmd *types.Command, set tokenSet) bool {
	if set.has(cmd.Name) {
		return true
	}
	for _, a := range cmd.Aliases {
		if set.has(a.Name) {
			return true
		}
	}
	return false
}
