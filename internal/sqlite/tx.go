package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// Tx is one read or write transaction. Statements are prepared on first use
// and reused for the rest of the transaction, so a recursive tree walk
// prepares each query once.
type Tx struct {
	tx     *sql.Tx
	stmts  map[string]*sql.Stmt
	logger *log.Logger
	done   bool
}

func newTx(tx *sql.Tx, logger *log.Logger) *Tx {
	return &Tx{tx: tx, stmts: make(map[string]*sql.Stmt), logger: logger}
}

// stmt returns the prepared statement for query, preparing it if needed.
func (t *Tx) stmt(ctx context.Context, query string) (*sql.Stmt, error) {
	if s, ok := t.stmts[query]; ok {
		return s, nil
	}
	s, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	t.stmts[query] = s
	return s, nil
}

// closeStmts releases every cached statement.
func (t *Tx) closeStmts() {
	for q, s := range t.stmts {
		s.Close()
		delete(t.stmts, q)
	}
}

func (t *Tx) commit() error {
	t.closeStmts()
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	t.done = true
	return nil
}

// rollback is safe to defer after commit.
func (t *Tx) rollback() {
	if t.done {
		return
	}
	t.closeStmts()
	t.tx.Rollback()
	t.done = true
}
