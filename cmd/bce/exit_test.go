package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bce/internal/download"
	"github.com/mesh-intelligence/bce/internal/grammar"
	"github.com/mesh-intelligence/bce/internal/input"
	"github.com/mesh-intelligence/bce/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing line", input.ErrMissingLine, exitMissingContext},
		{"missing point", input.ErrMissingCursor, exitMissingContext},
		{"bad point", fmt.Errorf("%w: %q", input.ErrInvalidCursor, "x"), exitInvalidCursor},
		{"store open", fmt.Errorf("%w: denied", types.ErrStoreOpen), exitStoreOpen},
		{"schema", fmt.Errorf("%w: v9", types.ErrSchemaMismatch), exitSchemaMismatch},
		{"bad format", grammar.ErrUnknownFormat, exitGrammarError},
		{"bad status", download.ErrBadStatus, exitGrammarError},
		{"too long", types.ErrFieldTooLong, exitGrammarError},
		{"not found", fmt.Errorf("exporting helm: %w", types.ErrNotFound), exitUserError},
		{"unknown", errors.New("disk I/O error"), exitQueryError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err, exitQueryError)
			var exitErr *exitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.want, exitErr.code)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.err.Error(), err.Error())
		})
	}
}

func TestClassify_KeepsExistingCode(t *testing.T) {
	err := classify(userError("bad %s", "flag"), exitQueryError)
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitUserError, exitErr.code)
	assert.Equal(t, "bad flag", err.Error())

	assert.NoError(t, classify(nil, exitQueryError))
}

func TestExitErrorWithoutCause(t *testing.T) {
	assert.Equal(t, "exit status 6", (&exitError{code: exitQueryError}).Error())
}
