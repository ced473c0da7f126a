package complete

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/bce/internal/input"
	"github.com/mesh-intelligence/bce/pkg/types"
)

// Loader loads the grammar tree for a root command name or alias.
// It returns types.ErrNotFound when no such root exists.
type Loader interface {
	LoadTree(ctx context.Context, nameOrAlias string) (*types.Command, error)
}

// Engine produces completion candidates for one line at a time.
type Engine struct {
	loader Loader
	logger *log.Logger
}

// NewEngine returns an Engine reading grammars from loader. A nil logger
// discards output.
func NewEngine(loader Loader, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{loader: loader, logger: logger}
}

// Complete loads the grammar for the command being typed, prunes it against
// the words on the line, and returns the candidates. An unknown command
// yields no candidates and no error.
func (e *Engine) Complete(ctx context.Context, in input.Input) ([]string, error) {
	name := in.CommandName()
	if name == "" {
		return []string{}, nil
	}

	root, err := e.loader.LoadTree(ctx, name)
	if errors.Is(err, types.ErrNotFound) {
		e.logger.Debug("no grammar", "command", name)
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	if tokens := in.ArgTokens(); len(tokens) > 0 {
		Prune(root, tokens)
	}
	previous, _ := in.PreviousWord()
	current := in.CurrentWord()
	e.logger.Debug("completing", "command", root.Name, "current", current, "previous", previous)
	return Recommend(root, current, previous), nil
}
