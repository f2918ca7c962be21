package objparams

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/internal/logging"
)

// Format selects an alternative rendering for a field.
type Format string

const (
	FormatHex    Format = "hex"
	FormatDisasm Format = "disasm"
)

// FieldDecl is one field of a class as written in the catalog.
type FieldDecl struct {
	Offset addr.Offsets `json:"offset"`
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	Notes  string       `json:"notes"`
	Format Format       `json:"format,omitempty"`
	Hidden bool         `json:"hidden,omitempty"`
}

// ClassDecl is a class as written in the catalog.
type ClassDecl struct {
	Offsets []FieldDecl `json:"offsets"`
}

// Catalog maps type names to their declarations.
type Catalog map[string]*ClassDecl

// ParseCatalog decodes one catalog file.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	for name, decl := range c {
		if decl == nil {
			return nil, fmt.Errorf("type %q has no declaration", name)
		}
		for i, f := range decl.Offsets {
			if f.Type == "" {
				return nil, fmt.Errorf("type %q: field %d has no type", name, i)
			}
		}
	}
	return c, nil
}

// LoadCatalog merges every *.json file in dir, in lexical order, so a
// type declared in more than one file takes its last declaration. Files
// that cannot be read or parsed are logged and skipped. Failing to list
// dir is the only error.
func LoadCatalog(dir string, log logging.Logger) (Catalog, error) {
	if log == nil {
		log = logging.NoOp{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	merged := make(Catalog)
	for _, name := range names {
		path := filepath.Join(dir, name)
		c, err := loadCatalogFile(path)
		if err != nil {
			log.Logf(logging.SeverityWarning, "skipping %s: %v", path, err)
			continue
		}
		for typ, decl := range c {
			merged[typ] = decl
		}
		log.Logf(logging.SeverityDebug, "loaded %d types from %s", len(c), path)
	}
	return merged, nil
}

func loadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCatalog(f)
}
