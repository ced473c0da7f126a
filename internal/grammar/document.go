// Package grammar converts grammar trees to and from JSON, YAML, and TOML
// documents.
package grammar

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// DocumentVersion is the document layout this package reads and writes.
// Documents without a version are read as this version.
const DocumentVersion = 1

// document is the on-disk layout.
type document struct {
	Version  int       `json:"version" yaml:"version" toml:"version"`
	Commands []command `json:"commands" yaml:"commands" toml:"commands"`
}

type command struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Aliases     []alias   `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Args        []arg     `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	SubCommands []command `json:"sub_commands,omitempty" yaml:"sub_commands,omitempty" toml:"sub_commands,omitempty"`
}

type alias struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

type arg struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	ArgType     string `json:"arg_type,omitempty" yaml:"arg_type,omitempty" toml:"arg_type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	LongName    string `json:"long_name,omitempty" yaml:"long_name,omitempty" toml:"long_name,omitempty"`
	ShortName   string `json:"short_name,omitempty" yaml:"short_name,omitempty" toml:"short_name,omitempty"`
	Opts        []opt  `json:"opts,omitempty" yaml:"opts,omitempty" toml:"opts,omitempty"`
}

type opt struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// toTree validates the document and builds command trees. Missing IDs get a
// UUID v7 and owner keys are linked from the enclosing node.
func (d *document) toTree() ([]*types.Command, error) {
	switch d.Version {
	case 0, DocumentVersion:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	cmds := make([]*types.Command, 0, len(d.Commands))
	for i := range d.Commands {
		cmd, err := d.Commands[i].toTree("", fmt.Sprintf("commands[%d]", i))
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (c *command) toTree(parentID, where string) (*types.Command, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%s: %w: command name is empty", where, types.ErrInvalidName)
	}
	where = where + " (" + c.Name + ")"
	out := &types.Command{ID: idOrNew(c.ID), Name: c.Name, ParentID: parentID}

	for _, a := range c.Aliases {
		if a.Name == "" {
			return nil, fmt.Errorf("%s: %w: alias name is empty", where, types.ErrInvalidName)
		}
		out.Aliases = append(out.Aliases, &types.Alias{ID: idOrNew(a.ID), CommandID: out.ID, Name: a.Name})
	}

	for _, a := range c.Args {
		if a.LongName == "" && a.ShortName == "" {
			return nil, fmt.Errorf("%s: %w", where, types.ErrInvalidArg)
		}
		argType, err := types.ParseArgType(a.ArgType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %q", where, err, a.ArgType)
		}
		ca := &types.CommandArg{
			ID:          idOrNew(a.ID),
			CommandID:   out.ID,
			ArgType:     argType,
			Description: a.Description,
			LongName:    a.LongName,
			ShortName:   a.ShortName,
		}
		for _, o := range a.Opts {
			if o.Name == "" {
				return nil, fmt.Errorf("%s: %w: option name is empty", where, types.ErrInvalidName)
			}
			ca.Opts = append(ca.Opts, &types.CommandOpt{ID: idOrNew(o.ID), ArgID: ca.ID, Name: o.Name})
		}
		out.Args = append(out.Args, ca)
	}

	for i := range c.SubCommands {
		sub, err := c.SubCommands[i].toTree(out.ID, fmt.Sprintf("%s.sub_commands[%d]", where, i))
		if err != nil {
			return nil, err
		}
		out.SubCommands = append(out.SubCommands, sub)
	}
	return out, nil
}

// fromTree builds a document from command trees.
func fromTree(cmds []*types.Command) *document {
	d := &document{Version: DocumentVersion, Commands: make([]command, 0, len(cmds))}
	for _, c := range cmds {
		d.Commands = append(d.Commands, commandFromTree(c))
	}
	return d
}

func commandFromTree(c *types.Command) command {
	out := command{ID: c.ID, Name: c.Name}
	for _, a := range c.Aliases {
		out.Aliases = append(out.Aliases, alias{ID: a.ID, Name: a.Name})
	}
	for _, a := range c.Args {
		da := arg{
			ID:          a.ID,
			Description: a.Description,
			LongName:    a.LongName,
			ShortName:   a.ShortName,
		}
		if a.ArgType != types.ArgNone {
			da.ArgType = a.ArgType.String()
		}
		for _, o := range a.Opts {
			da.Opts = append(da.Opts, opt{ID: o.ID, Name: o.Name})
		}
		out.Args = append(out.Args, da)
	}
	for _, sub := range c.SubCommands {
		out.SubCommands = append(out.SubCommands, commandFromTree(sub))
	}
	return out
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.Must(uuid.NewV7()).String()
}
