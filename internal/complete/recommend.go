package complete

import (
	"strings"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// Recommend returns the completion candidates for a pruned tree.
//
// When the word being completed, or the previous word if the current one is
// empty, names a typed argument that takes a value, only that argument's
// options are returned. Otherwise every remaining sub-command and argument
// of the tree is offered, along with the options of typed arguments still
// waiting for a value. The result has no duplicates and keeps first-seen
// order.
func Recommend(root *types.Command, current, previous string) []string {
	key := current
	if key == "" {
		key = previous
	}
	key = strings.TrimSuffix(key, "=")

	if arg := findRequired(root, key); arg != nil && arg.ArgType != types.ArgNone {
		return arg.OptNames()
	}

	c := newCollector()
	collectOptional(root, c)
	return c.items
}

// findRequired walks cmd depth-first, each command's args before its
// sub-commands, for a present argument named key.
func findRequired(cmd *types.Command, key string) *types.CommandArg {
	if key == "" {
		return nil
	}
	var found *types.CommandArg
	cmd.Walk(func(c *types.Command) bool {
		for _, arg := range c.Args {
			if arg.PresentOnCmdline && (arg.LongName == key || arg.ShortName == key) {
				found = arg
				return false
			}
		}
		return true
	})
	return found
}

func collectOptional(cmd *types.Command, c *collector) {
	for _, sub := range cmd.SubCommands {
		if sub.PresentOnCmdline {
			continue
		}
		if alias, ok := sub.ShortestAlias(); ok {
			c.add(sub.Name + " (" + alias + ")")
		} else {
			c.add(sub.Name)
		}
	}
	for _, arg := range cmd.Args {
		if arg.PresentOnCmdline {
			for _, opt := range arg.Opts {
				c.add(opt.Name)
			}
			continue
		}
		c.add(argLabel(arg))
	}
	for _, sub := range cmd.SubCommands {
		collectOptional(sub, c)
	}
}

// argLabel renders an argument as "--long (-s)", or whichever name it has.
func argLabel(arg *types.CommandArg) string {
	if arg.LongName != "" && arg.ShortName != "" {
		return arg.LongName + " (" + arg.ShortName + ")"
	}
	return arg.Name()
}

// collector accumulates unique candidates in insertion order.
type collector struct {
	seen  map[string]struct{}
	items []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{}), items: []string{}}
}

func (c *collector) add(s string) {
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	c.items = append(c.items, s)
}
