package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a grammar file encoding.
type Format string

// Supported formats. FormatSQLite names another grammar database; it has no
// document encoding and is handled by copying between stores.
const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

// Format errors.
var (
	ErrUnknownFormat      = errors.New("unknown grammar format")
	ErrUnsupportedVersion = errors.New("unsupported grammar document version")
)

// extFormats maps file extensions to formats.
var extFormats = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".toml":    FormatTOML,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// ParseFormat validates a user-supplied format name, in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnknownFormat, path)
}

// ResolveFormat returns the explicit format when given, otherwise the
// format implied by path.
func ResolveFormat(explicit, path string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	return FormatFromPath(path)
}

// IsDocument reports whether f is encoded as a document rather than a
// database.
func (f Format) IsDocument() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}
