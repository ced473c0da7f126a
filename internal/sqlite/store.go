package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// dsnFormat enables WAL so concurrent shells do not block each other, waits on
// a busy database instead of failing, and turns on cascading foreign keys.
const dsnFormat = "file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Options tune an opened Store.
type Options struct {
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Store is an open grammar database.
type Store struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// Open opens or creates the grammar database at path. The parent directory
// is created when missing. An empty database receives the schema; a database
// written by an incompatible version fails with types.ErrSchemaMismatch.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", types.ErrStoreOpen, dir, err)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf(dsnFormat, path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStoreOpen, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", types.ErrStoreOpen, path, err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("opened store", "path", path)
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UserVersion reports the schema version recorded in the database.
func (s *Store) UserVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading user_version: %w", err)
	}
	return v, nil
}

// ensureSchema creates tables on an empty database and rejects databases
// carrying any other version.
func (s *Store) ensureSchema(ctx context.Context) error {
	v, err := s.UserVersion(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStoreOpen, err)
	}
	switch v {
	case SchemaVersion:
		return nil
	case 0:
	default:
		return fmt.Errorf("%w: database has version %d, want %d", types.ErrSchemaMismatch, v, SchemaVersion)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("setting user_version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	s.logger.Debug("created schema", "version", SchemaVersion)
	return nil
}

// Read runs fn inside one transaction that is always rolled back.
func (s *Store) Read(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning read transaction: %w", err)
	}
	tx := newTx(sqlTx, s.logger)
	defer tx.rollback()

	return fn(tx)
}

// Write runs fn inside one transaction. The transaction commits only when fn
// returns nil; otherwise every change fn made is discarded.
func (s *Store) Write(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning write transaction: %w", err)
	}
	tx := newTx(sqlTx, s.logger)
	defer tx.rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// LoadTree returns the fully populated grammar tree whose root is named, or
// aliased, nameOrAlias. Returns types.ErrNotFound when no root matches.
func (s *Store) LoadTree(ctx context.Context, nameOrAlias string) (*types.Command, error) {
	var root *types.Command
	err := s.Read(ctx, func(tx *Tx) error {
		var err error
		root, err = tx.LoadTree(ctx, nameOrAlias)
		return err
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Import replaces each root in cmds in a single transaction. Either all
// roots are replaced or the store is left unchanged.
func (s *Store) Import(ctx context.Context, cmds []*types.Command) error {
	return s.Write(ctx, func(tx *Tx) error {
		for _, cmd := range cmds {
			if err := tx.ReplaceSubtree(ctx, cmd); err != nil {
				return err
			}
		}
		return nil
	})
}

// Export loads the named roots, or every root when names is empty.
func (s *Store) Export(ctx context.Context, names []string) ([]*types.Command, error) {
	var cmds []*types.Command
	err := s.Read(ctx, func(tx *Tx) error {
		if len(names) == 0 {
			var err error
			if names, err = tx.RootNames(ctx); err != nil {
				return err
			}
		}
		for _, name := range names {
			root, err := tx.LoadTree(ctx, name)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", name, err)
			}
			cmds = append(cmds, root)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

// RootNames returns the sorted names of all stored roots.
func (s *Store) RootNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.Read(ctx, func(tx *Tx) error {
		var err error
		names, err = tx.RootNames(ctx)
		return err
	})
	return names, err
}

// Delete removes the named root and everything beneath it.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.Write(ctx, func(tx *Tx) error {
		return tx.DeleteSubtree(ctx, name)
	})
}

// Copy moves the named roots (all roots when names is empty) from src into
// dst, replacing any roots of the same name in dst.
func Copy(ctx context.Context, src, dst *Store, names []string) (int, error) {
	cmds, err := src.Export(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", src.Path(), err)
	}
	if err := dst.Import(ctx, cmds); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dst.Path(), err)
	}
	return len(cmds), nil
}

// CopyToFile writes the named roots (all roots when names is empty) from src
// into a new database that replaces path. The database is built in a temp
// file beside path and renamed over it, so path never holds a partial copy
// and nothing already at path survives.
func CopyToFile(ctx context.Context, src *Store, path string, names []string) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("%w: creating %s: %v", types.ErrStoreOpen, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".bce-*.db")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrStoreOpen, err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	cleanup := func() {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			os.Remove(tmpName + suffix)
		}
	}

	dst, err := Open(ctx, tmpName, Options{Logger: src.logger})
	if err != nil {
		cleanup()
		return 0, err
	}
	n, err := Copy(ctx, src, dst, names)
	if err != nil {
		dst.Close()
		cleanup()
		return 0, err
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return 0, fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(path + suffix)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return 0, fmt.Errorf("renaming %s: %w", tmpName, err)
	}
	src.logger.Debug("copied database", "path", path, "commands", n)
	return n, nil
}
