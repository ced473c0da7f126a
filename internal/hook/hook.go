// Package hook renders the shell lines that register bce as the completer
// for stored commands.
package hook

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrNoCommands is returned when there is nothing to register.
var ErrNoCommands = errors.New("no commands to register")

// Bash returns one `complete -C` line per command. Bash runs the -C string
// through the shell, so the executable path is quoted inside it and the
// whole string is quoted again on the line.
func Bash(executable string, commands []string) (string, error) {
	if len(commands) == 0 {
		return "", ErrNoCommands
	}
	exe, err := quote(executable)
	if err != nil {
		return "", err
	}
	completer, err := quote(exe + " complete --")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cmd := range commands {
		name, err := quote(cmd)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "complete -o default -C %s %s\n", completer, name)
	}
	return b.String(), nil
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("quoting %q: %w", s, err)
	}
	return q, nil
}
