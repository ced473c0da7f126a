package grammar

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// Decode reads one grammar document from r.
func Decode(r io.Reader, format Format) ([]*types.Command, error) {
	var doc document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: cannot decode %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s grammar: %w", format, err)
	}
	return doc.toTree()
}

// Encode writes cmds to w as one grammar document.
func Encode(w io.Writer, format Format, cmds []*types.Command) error {
	doc := fromTree(cmds)
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).SetIndentTables(true).Encode(doc)
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s grammar: %w", format, err)
	}
	return nil
}

// ReadFile decodes the grammar document at path.
func ReadFile(path string, format Format) ([]*types.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grammar file: %w", err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f), format)
}

// WriteFile encodes cmds to path atomically: the document is written to a
// temp file in the same directory, synced, and renamed over path.
func WriteFile(path string, format Format, cmds []*types.Command) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".grammar-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, format, cmds); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
