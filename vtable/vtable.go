// Package vtable maps virtual table addresses to the class names they
// belong to, one table per game build.
package vtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skdltmxn/smsinspect/addr"
)

// ErrInvalidAddress indicates a table key is not a hex address.
var ErrInvalidAddress = errors.New("vtable: invalid address")

// Table is an address to class name lookup. The zero value is an empty
// table.
type Table struct {
	names map[addr.Addr]string
}

// New returns a table holding names.
func New(names map[addr.Addr]string) *Table {
	t := &Table{names: make(map[addr.Addr]string, len(names))}
	for a, n := range names {
		t.names[a] = n
	}
	return t
}

// Parse reads a table in the form {"803DA1B0": "TMario", ...}.
func Parse(r io.Reader) (*Table, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("vtable: %w", err)
	}

	t := &Table{names: make(map[addr.Addr]string, len(raw))}
	for k, name := range raw {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(k), "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, k)
		}
		t.names[addr.Addr(v)] = name
	}
	return t, nil
}

// Load reads a table from a JSON file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadBuild reads <dir>/<build>.json. A missing file yields an empty
// table so class names degrade to raw addresses.
func LoadBuild(dir, build string) (*Table, error) {
	t, err := Load(filepath.Join(dir, build+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return &Table{}, nil
	}
	return t, err
}

// Lookup returns the class whose virtual table is at a.
func (t *Table) Lookup(a addr.Addr) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[a]
	return name, ok
}

// Name returns the class name for a, or the address in parentheses when
// it is not in the table.
func (t *Table) Name(a addr.Addr) string {
	if name, ok := t.Lookup(a); ok {
		return name
	}
	return "(" + a.String() + ")"
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}
