package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxLineSize is the longest line, in runes, that is considered. Longer
// lines are truncated.
const MaxLineSize = 4096

// Environment variables bash sets for a `complete -C` program.
const (
	EnvLine  = "COMP_LINE"
	EnvPoint = "COMP_POINT"
)

// Completion context errors.
var (
	ErrMissingLine   = errors.New(EnvLine + " is not set")
	ErrMissingCursor = errors.New(EnvPoint + " is not set")
	ErrInvalidCursor = errors.New(EnvPoint + " is not a valid cursor position")
)

// Input is the line being completed and the cursor position within it,
// counted in runes.
type Input struct {
	Line   string
	Cursor int
}

// New builds an Input, truncating the line to MaxLineSize runes and
// clamping the cursor into [0, len(line)].
func New(line string, cursor int) Input {
	if utf8.RuneCountInString(line) > MaxLineSize {
		line = string([]rune(line)[:MaxLineSize])
	}
	n := utf8.RuneCountInString(line)
	cursor = max(0, min(cursor, n))
	return Input{Line: line, Cursor: cursor}
}

// FromEnv reads the completion context through getenv, normally os.Getenv.
func FromEnv(getenv func(string) string) (Input, error) {
	line := getenv(EnvLine)
	if line == "" {
		return Input{}, ErrMissingLine
	}
	point := strings.TrimSpace(getenv(EnvPoint))
	if point == "" {
		return Input{}, ErrMissingCursor
	}
	cursor, err := strconv.Atoi(point)
	if err != nil || cursor < 0 {
		return Input{}, fmt.Errorf("%w: %q", ErrInvalidCursor, point)
	}
	return New(line, cursor), nil
}

// Tokens returns every token of the full line, ignoring the cursor.
func (in Input) Tokens() []string {
	return Tokenize(in.Line, utf8.RuneCountInString(in.Line))
}

// CommandName returns the first token of the line, or "" for a blank line.
func (in Input) CommandName() string {
	tokens := in.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// ArgTokens returns the tokens after the command name.
func (in Input) ArgTokens() []string {
	tokens := in.Tokens()
	if len(tokens) <= 1 {
		return nil
	}
	return tokens[1:]
}

// CurrentWord returns the word the cursor is in. When the cursor directly
// follows an unquoted space or '=', a new word is being started and the
// current word is "".
func (in Input) CurrentWord() string {
	current, _, _ := in.words()
	return current
}

// PreviousWord returns the word before the current word. The second result
// is false when there is none.
func (in Input) PreviousWord() (string, bool) {
	_, previous, ok := in.words()
	return previous, ok
}

func (in Input) words() (current, previous string, hasPrevious bool) {
	tokens, atDelim := scan(in.Line, in.Cursor)
	if atDelim || len(tokens) == 0 {
		if len(tokens) == 0 {
			return "", "", false
		}
		return "", tokens[len(tokens)-1], true
	}
	current = tokens[len(tokens)-1]
	if len(tokens) < 2 {
		return current, "", false
	}
	return current, tokens[len(tokens)-2], true
}
