package types

import "strings"

// ArgType describes what kind of value, if any, follows an argument.
type ArgType int

// Argument types. The zero value is ArgNone.
const (
	ArgNone   ArgType = iota // Flag takes no value.
	ArgOption                // Value is one of the argument's CommandOpts.
	ArgFile                  // Value is a file path.
	ArgText                  // Value is free text.
)

// argTypeNames maps each ArgType to its stored form.
var argTypeNames = map[ArgType]string{
	ArgNone:   "NONE",
	ArgOption: "OPTION",
	ArgFile:   "FILE",
	ArgText:   "TEXT",
}

// String returns the stored form: NONE, OPTION, FILE or TEXT.
func (t ArgType) String() string {
	if s, ok := argTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseArgType converts a stored or user-supplied arg type, in any case, to
// an ArgType. An empty string parses as ArgNone.
// Returns ErrInvalidArgType if the value is not recognized.
func ParseArgType(s string) (ArgType, error) {
	if s == "" {
		return ArgNone, nil
	}
	upper := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range argTypeNames {
		if name == upper {
			return t, nil
		}
	}
	return ArgNone, ErrInvalidArgType
}
