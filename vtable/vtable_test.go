package vtable

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skdltmxn/smsinspect/addr"
)

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(`{"803DA1B0": "TMario", "0x803c0000": "TMapObjBase"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		a    addr.Addr
		want string
	}{
		{0x803DA1B0, "TMario"},
		{0x803C0000, "TMapObjBase"},
		{0x80001234, "(80001234)"},
	}
	for _, tt := range tests {
		if got := tbl.Name(tt.a); got != tt.want {
			t.Errorf("Name(%v) = %q, want %q", tt.a, got, tt.want)
		}
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d", tbl.Len())
	}
}

func TestParseInvalidKey(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"zz": "Nope"}`))
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("err = %v, want ErrInvalidAddress", err)
	}
}

func TestLoadBuild(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GMSJ01.json"), []byte(`{"80400000":"TConductor"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadBuild(dir, "GMSJ01")
	if err != nil {
		t.Fatalf("LoadBuild: %v", err)
	}
	if name, ok := tbl.Lookup(0x80400000); !ok || name != "TConductor" {
		t.Errorf("Lookup = %q, %v", name, ok)
	}

	empty, err := LoadBuild(dir, "GMSE01")
	if err != nil {
		t.Fatalf("LoadBuild missing file: %v", err)
	}
	if empty.Len() != 0 || empty.Name(0x80400000) != "(80400000)" {
		t.Error("missing table is not empty")
	}

	var nilTable *Table
	if nilTable.Name(1) != "(00000001)" {
		t.Error("nil table lookup")
	}
}
