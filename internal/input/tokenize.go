// Package input turns the line a shell is completing into tokens and
// exposes the word under the cursor.
package input

import "unicode"

// scanState is the tokenizer state between runes.
type scanState int

const (
	stateIdle scanState = iota
	stateInWord
	stateInSingleQuote
	stateInDoubleQuote
)

// Tokenize splits the first limit runes of line into words. Whitespace
// separates words. An unquoted '=' ends the current word and stays attached
// to it, so "--output=wide" yields "--output=" and "wide". Single and double
// quotes group text, including whitespace and '=', into one word without the
// quotes. A word cut off by the limit, quoted or not, is still returned.
// A limit of zero or less yields no tokens.
func Tokenize(line string, limit int) []string {
	tokens, _ := scan(line, limit)
	return tokens
}

// scan tokenizes like Tokenize and also reports whether the last rune
// consumed was an unquoted delimiter, meaning the next rune starts a new word.
func scan(line string, limit int) ([]string, bool) {
	runes := []rune(line)
	n := min(limit, len(runes))
	if n <= 0 {
		return nil, false
	}

	var (
		tokens  []string
		word    []rune
		state   = stateIdle
		atDelim bool
	)
	emit := func() {
		tokens = append(tokens, string(word))
		word = word[:0]
		state = stateIdle
	}

	for _, r := range runes[:n] {
		atDelim = false
		switch state {
		case stateIdle:
			switch {
			case unicode.IsSpace(r):
				atDelim = true
			case r == '\'':
				state = stateInSingleQuote
			case r == '"':
				state = stateInDoubleQuote
			case r == '=':
				word = append(word, r)
				emit()
				atDelim = true
			default:
				word = append(word, r)
				state = stateInWord
			}
		case stateInWord:
			switch {
			case unicode.IsSpace(r):
				emit()
				atDelim = true
			case r == '=':
				word = append(word, r)
				emit()
				atDelim = true
			default:
				word = append(word, r)
			}
		case stateInSingleQuote:
			if r == '\'' {
				emit()
			} else {
				word = append(word, r)
			}
		case stateInDoubleQuote:
			if r == '"' {
				emit()
			} else {
				word = append(word, r)
			}
		}
	}
	if state != stateIdle {
		emit()
	}
	return tokens, atDelim
}
