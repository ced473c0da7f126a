// Package sqlite implements the persistent grammar store for bce on top of
// modernc.org/sqlite. A grammar is a tree of commands with their aliases,
// arguments, and argument options, stored one row per node.
package sqlite

// SchemaVersion is the PRAGMA user_version this package reads and writes.
// A database reporting 0 is empty and receives the schema on open.
const SchemaVersion = 1

// Schema DDL for all tables.
const (
	createCommand = `CREATE TABLE IF NOT EXISTS command (
    id TEXT PRIMARY KEY NOT NULL,
    name TEXT NOT NULL,
    parent_id TEXT REFERENCES command(id) ON DELETE CASCADE
);`

	createCommandAlias = `CREATE TABLE IF NOT EXISTS command_alias (
    id TEXT PRIMARY KEY NOT NULL,
    command_id TEXT NOT NULL REFERENCES command(id) ON DELETE CASCADE,
    name TEXT NOT NULL
);`

	createCommandArg = `CREATE TABLE IF NOT EXISTS command_arg (
    id TEXT PRIMARY KEY NOT NULL,
    command_id TEXT NOT NULL REFERENCES command(id) ON DELETE CASCADE,
    arg_type TEXT NOT NULL DEFAULT 'NONE' CHECK (arg_type IN ('NONE', 'OPTION', 'FILE', 'TEXT')),
    description TEXT,
    long_name TEXT,
    short_name TEXT,
    CHECK (long_name IS NOT NULL OR short_name IS NOT NULL)
);`

	createCommandOpt = `CREATE TABLE IF NOT EXISTS command_opt (
    id TEXT PRIMARY KEY NOT NULL,
    cmd_arg_id TEXT NOT NULL REFERENCES command_arg(id) ON DELETE CASCADE,
    name TEXT NOT NULL
);`
)

// Index DDL. Root commands have a NULL parent, so the sibling index keys on
// IFNULL(parent_id, '') to make two roots with the same name collide.
const (
	idxCommandSibling = `CREATE UNIQUE INDEX IF NOT EXISTS idx_command_sibling ON command(IFNULL(parent_id, ''), name);`
	idxCommandParent  = `CREATE INDEX IF NOT EXISTS idx_command_parent ON command(parent_id);`
	idxAliasName      = `CREATE UNIQUE INDEX IF NOT EXISTS idx_command_alias_name ON command_alias(command_id, name);`
	idxAliasLookup    = `CREATE INDEX IF NOT EXISTS idx_command_alias_lookup ON command_alias(name);`
	idxArgLongName    = `CREATE UNIQUE INDEX IF NOT EXISTS idx_command_arg_long ON command_arg(command_id, long_name);`
	idxOptName        = `CREATE UNIQUE INDEX IF NOT EXISTS idx_command_opt_name ON command_opt(cmd_arg_id, name);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCommand,
	createCommandAlias,
	createCommandArg,
	createCommandOpt,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCommandSibling,
	idxCommandParent,
	idxAliasName,
	idxAliasLookup,
	idxArgLongName,
	idxOptName,
}
