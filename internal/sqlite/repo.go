package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// Tree queries. Each runs once per node, so they are cached on the Tx.
const (
	// A name match is preferred over an alias match when both exist.
	queryFindRoot = `SELECT c.id, c.name FROM command c
LEFT JOIN command_alias a ON a.command_id = c.id
WHERE c.parent_id IS NULL AND (c.name = ? OR a.name = ?)
ORDER BY (c.name = ?) DESC, c.name
LIMIT 1`
	queryAliases     = `SELECT id, name FROM command_alias WHERE command_id = ? ORDER BY name`
	querySubCommands = `SELECT id, name FROM command WHERE parent_id = ? ORDER BY name`
	queryArgs        = `SELECT id, arg_type, IFNULL(description, ''), IFNULL(long_name, ''), IFNULL(short_name, '')
FROM command_arg WHERE command_id = ? ORDER BY COALESCE(long_name, short_name), short_name`
	queryOpts      = `SELECT id, name FROM command_opt WHERE cmd_arg_id = ? ORDER BY name`
	queryRootNames = `SELECT name FROM command WHERE parent_id IS NULL ORDER BY name`

	insertCommand = `INSERT INTO command (id, name, parent_id) VALUES (?, ?, ?)`
	insertAlias   = `INSERT INTO command_alias (id, command_id, name) VALUES (?, ?, ?)`
	insertArg     = `INSERT INTO command_arg (id, command_id, arg_type, description, long_name, short_name) VALUES (?, ?, ?, ?, ?, ?)`
	insertOpt     = `INSERT INTO command_opt (id, cmd_arg_id, name) VALUES (?, ?, ?)`

	deleteRoot = `DELETE FROM command WHERE name = ? AND parent_id IS NULL`
)

// FindRoot returns the top-level command whose name or one of whose aliases
// equals nameOrAlias. The returned command is not populated.
// Returns types.ErrNotFound when nothing matches.
func (t *Tx) FindRoot(ctx context.Context, nameOrAlias string) (*types.Command, error) {
	if nameOrAlias == "" {
		return nil, types.ErrNotFound
	}
	stmt, err := t.stmt(ctx, queryFindRoot)
	if err != nil {
		return nil, err
	}
	cmd := &types.Command{}
	err = stmt.QueryRowContext(ctx, nameOrAlias, nameOrAlias, nameOrAlias).Scan(&cmd.ID, &cmd.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding root %s: %w", nameOrAlias, err)
	}
	return cmd, nil
}

// LoadTree finds the root for nameOrAlias and populates its whole subtree.
func (t *Tx) LoadTree(ctx context.Context, nameOrAlias string) (*types.Command, error) {
	root, err := t.FindRoot(ctx, nameOrAlias)
	if err != nil {
		return nil, err
	}
	if err := t.LoadSubtree(ctx, root); err != nil {
		return nil, err
	}
	t.logger.Debug("loaded tree", "command", root.Name)
	return root, nil
}

// LoadSubtree populates cmd's aliases, then its args with their options,
// then its sub-commands, each fully populated. cmd.ID must be set.
func (t *Tx) LoadSubtree(ctx context.Context, cmd *types.Command) error {
	aliases, err := t.loadAliases(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("loading aliases of %s: %w", cmd.Name, err)
	}
	cmd.Aliases = aliases

	args, err := t.loadArgs(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("loading args of %s: %w", cmd.Name, err)
	}
	cmd.Args = args

	subs, err := t.loadSubCommands(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("loading sub-commands of %s: %w", cmd.Name, err)
	}
	for _, sub := range subs {
		if err := t.LoadSubtree(ctx, sub); err != nil {
			return err
		}
	}
	cmd.SubCommands = subs
	return nil
}

func (t *Tx) loadAliases(ctx context.Context, cmdID string) ([]*types.Alias, error) {
	stmt, err := t.stmt(ctx, queryAliases)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, cmdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []*types.Alias
	for rows.Next() {
		a := &types.Alias{CommandID: cmdID}
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// loadSubCommands reads one level only. Rows are closed before the caller
// recurses, since the single connection cannot interleave result sets.
func (t *Tx) loadSubCommands(ctx context.Context, parentID string) ([]*types.Command, error) {
	stmt, err := t.stmt(ctx, querySubCommands)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*types.Command
	for rows.Next() {
		c := &types.Command{ParentID: parentID}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		subs = append(subs, c)
	}
	return subs, rows.Err()
}

func (t *Tx) loadArgs(ctx context.Context, cmdID string) ([]*types.CommandArg, error) {
	stmt, err := t.stmt(ctx, queryArgs)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, cmdID)
	if err != nil {
		return nil, err
	}

	var args []*types.CommandArg
	for rows.Next() {
		a := &types.CommandArg{CommandID: cmdID}
		var argType string
		if err := rows.Scan(&a.ID, &argType, &a.Description, &a.LongName, &a.ShortName); err != nil {
			rows.Close()
			return nil, err
		}
		if a.ArgType, err = types.ParseArgType(argType); err != nil {
			rows.Close()
			return nil, fmt.Errorf("arg %s: %w", a.ID, err)
		}
		args = append(args, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, a := range args {
		opts, err := t.loadOpts(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("loading options of %s: %w", a.Name(), err)
		}
		a.Opts = opts
	}
	return args, nil
}

func (t *Tx) loadOpts(ctx context.Context, argID string) ([]*types.CommandOpt, error) {
	stmt, err := t.stmt(ctx, queryOpts)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, argID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []*types.CommandOpt
	for rows.Next() {
		o := &types.CommandOpt{ArgID: argID}
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// RootNames returns the names of all top-level commands in ascending order.
func (t *Tx) RootNames(ctx context.Context) ([]string, error) {
	stmt, err := t.stmt(ctx, queryRootNames)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing roots: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// StoreSubtree inserts cmd as a root together with everything it owns:
// the command row, its aliases, its sub-commands recursively, then its args
// each followed by their options. Owner keys (ParentID, CommandID, ArgID)
// are taken from the owning node and written back; missing IDs receive a
// new UUID v7.
func (t *Tx) StoreSubtree(ctx context.Context, cmd *types.Command) error {
	cmd.ParentID = ""
	if err := t.storeCommand(ctx, cmd); err != nil {
		return err
	}
	t.logger.Debug("stored tree", "command", cmd.Name)
	return nil
}

func (t *Tx) storeCommand(ctx context.Context, cmd *types.Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("%w: command name is empty", types.ErrInvalidName)
	}
	assignID(&cmd.ID)
	if err := checkLen("command id", cmd.ID, types.MaxIDLen); err != nil {
		return err
	}
	if err := checkLen("command name", cmd.Name, types.MaxNameLen); err != nil {
		return err
	}

	stmt, err := t.stmt(ctx, insertCommand)
	if err != nil {
		return err
	}
	if _, err := stmt.ExecContext(ctx, cmd.ID, cmd.Name, nullString(cmd.ParentID)); err != nil {
		return fmt.Errorf("inserting command %s: %w", cmd.Name, err)
	}

	for _, a := range cmd.Aliases {
		a.CommandID = cmd.ID
		if err := t.storeAlias(ctx, a); err != nil {
			return fmt.Errorf("command %s: %w", cmd.Name, err)
		}
	}
	for _, sub := range cmd.SubCommands {
		sub.ParentID = cmd.ID
		if err := t.storeCommand(ctx, sub); err != nil {
			return err
		}
	}
	for _, a := range cmd.Args {
		a.CommandID = cmd.ID
		if err := t.storeArg(ctx, a); err != nil {
			return fmt.Errorf("command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

func (t *Tx) storeAlias(ctx context.Context, a *types.Alias) error {
	if a.Name == "" {
		return fmt.Errorf("%w: alias name is empty", types.ErrInvalidName)
	}
	assignID(&a.ID)
	if err := checkLen("alias id", a.ID, types.MaxIDLen); err != nil {
		return err
	}
	if err := checkLen("alias name", a.Name, types.MaxNameLen); err != nil {
		return err
	}
	stmt, err := t.stmt(ctx, insertAlias)
	if err != nil {
		return err
	}
	if _, err := stmt.ExecContext(ctx, a.ID, a.CommandID, a.Name); err != nil {
		return fmt.Errorf("inserting alias %s: %w", a.Name, err)
	}
	return nil
}

func (t *Tx) storeArg(ctx context.Context, a *types.CommandArg) error {
	if a.LongName == "" && a.ShortName == "" {
		return types.ErrInvalidArg
	}
	assignID(&a.ID)
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"arg id", a.ID, types.MaxIDLen},
		{"arg long name", a.LongName, types.MaxNameLen},
		{"arg short name", a.ShortName, types.MaxShortNameLen},
		{"arg type", a.ArgType.String(), types.MaxArgTypeLen},
		{"arg description", a.Description, types.MaxDescriptionLen},
	}
	for _, c := range checks {
		if err := checkLen(c.field, c.value, c.max); err != nil {
			return err
		}
	}

	stmt, err := t.stmt(ctx, insertArg)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, a.ID, a.CommandID, a.ArgType.String(),
		nullString(a.Description), nullString(a.LongName), nullString(a.ShortName))
	if err != nil {
		return fmt.Errorf("inserting arg %s: %w", a.Name(), err)
	}

	for _, o := range a.Opts {
		o.ArgID = a.ID
		if err := t.storeOpt(ctx, o); err != nil {
			return fmt.Errorf("arg %s: %w", a.Name(), err)
		}
	}
	return nil
}

func (t *Tx) storeOpt(ctx context.Context, o *types.CommandOpt) error {
	if o.Name == "" {
		return fmt.Errorf("%w: option name is empty", types.ErrInvalidName)
	}
	assignID(&o.ID)
	if err := checkLen("option id", o.ID, types.MaxIDLen); err != nil {
		return err
	}
	if err := checkLen("option name", o.Name, types.MaxNameLen); err != nil {
		return err
	}
	stmt, err := t.stmt(ctx, insertOpt)
	if err != nil {
		return err
	}
	if _, err := stmt.ExecContext(ctx, o.ID, o.ArgID, o.Name); err != nil {
		return fmt.Errorf("inserting option %s: %w", o.Name, err)
	}
	return nil
}

// DeleteSubtree removes the root named name; the database cascades the
// delete to every descendant row. Deleting a missing root is not an error.
func (t *Tx) DeleteSubtree(ctx context.Context, name string) error {
	stmt, err := t.stmt(ctx, deleteRoot)
	if err != nil {
		return err
	}
	res, err := stmt.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		t.logger.Debug("deleted tree", "command", name)
	}
	return nil
}

// ReplaceSubtree deletes any root named cmd.Name and stores cmd in its place.
func (t *Tx) ReplaceSubtree(ctx context.Context, cmd *types.Command) error {
	if err := t.DeleteSubtree(ctx, cmd.Name); err != nil {
		return err
	}
	return t.StoreSubtree(ctx, cmd)
}

// assignID fills an empty id with a new UUID v7.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.Must(uuid.NewV7()).String()
	}
}

func checkLen(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s %q has %d characters, limit %d", types.ErrFieldTooLong, field, value, n, limit)
	}
	return nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
