package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rankr/internal/ir"
)

// Catalog is a loaded item list.
type Catalog struct {
	Name   string
	Items  []ir.Item
	Source string
}

// entry is an item ID with the position it was read from.
type entry struct {
	id     string
	line   int
	column int
}

// Load reads a catalog file, choosing the format by extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, File: path, Message: fmt.Sprintf("cannot read catalog: %v", err)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			File:    path,
			Message: fmt.Sprintf("unsupported catalog extension %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}
}

// build normalizes and checks the entries read from a file.
func build(file, name string, entries []entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &LoadError{Code: ErrCodeNoItems, File: file, Message: "catalog has no items"}
	}

	items := make([]ir.Item, 0, len(entries))
	seen := make(map[string]entry, len(entries))
	for _, e := range entries {
		id := norm.NFC.String(strings.TrimSpace(e.id))
		if id == "" {
			return nil, &LoadError{Code: ErrCodeInvalidItem, File: file, Line: e.line, Column: e.column,
				Message: "item ID is empty"}
		}
		if first, dup := seen[id]; dup {
			return nil, &LoadError{Code: ErrCodeDuplicate, File: file, Line: e.line, Column: e.column,
				Message: fmt.Sprintf("duplicate item %q (first at line %d)", id, first.line)}
		}
		seen[id] = e
		items = append(items, ir.Item(id))
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return &Catalog{Name: name, Items: items, Source: file}, nil
}
