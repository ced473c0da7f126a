package main

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/bce/internal/download"
	"github.com/mesh-intelligence/bce/internal/grammar"
	"github.com/mesh-intelligence/bce/internal/input"
	"github.com/mesh-intelligence/bce/pkg/types"
)

// Exit codes. These are stable; shell hooks and scripts may rely on them.
//
//	0  success, including an empty candidate list
//	1  usage or user error (bad flags, unknown command name, bad config)
//	2  completion context missing (COMP_LINE or COMP_POINT unset)
//	3  COMP_POINT is not a valid cursor position
//	4  the grammar database cannot be opened
//	5  the grammar database has an incompatible schema version
//	6  a query or write against the database failed
//	7  a grammar file could not be read, written, or downloaded
const (
	exitSuccess        = 0
	exitUserError      = 1
	exitMissingContext = 2
	exitInvalidCursor  = 3
	exitStoreOpen      = 4
	exitSchemaMismatch = 5
	exitQueryError     = 6
	exitGrammarError   = 7
)

// exitError carries the process exit code for an error returned from a
// command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCodes maps sentinel errors to exit codes, checked in order.
var exitCodes = []struct {
	err  error
	code int
}{
	{input.ErrMissingLine, exitMissingContext},
	{input.ErrMissingCursor, exitMissingContext},
	{input.ErrInvalidCursor, exitInvalidCursor},
	{types.ErrStoreOpen, exitStoreOpen},
	{types.ErrSchemaMismatch, exitSchemaMismatch},
	{grammar.ErrUnknownFormat, exitGrammarError},
	{grammar.ErrUnsupportedVersion, exitGrammarError},
	{download.ErrBadURL, exitGrammarError},
	{download.ErrBadStatus, exitGrammarError},
	{download.ErrTooLarge, exitGrammarError},
	{types.ErrInvalidName, exitGrammarError},
	{types.ErrInvalidArg, exitGrammarError},
	{types.ErrInvalidArgType, exitGrammarError},
	{types.ErrFieldTooLong, exitGrammarError},
	{types.ErrNotFound, exitUserError},
}

// classify wraps err with the exit code of the first sentinel it matches,
// or with fallback when it matches none. A nil err stays nil.
func classify(err error, fallback int) error {
	if err == nil {
		return nil
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return err
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.err) {
			return &exitError{code: ec.code, err: err}
		}
	}
	return &exitError{code: fallback, err: err}
}

// userError builds an exit-1 error from a format string.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}
