package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/skdltmxn/smsinspect/dispatch"
	"github.com/skdltmxn/smsinspect/objparams"
)

func newShellSession(t *testing.T) *dispatch.Session {
	t.Helper()
	dir := t.TempDir()
	catalog := `{"Point": {"offsets": [
		{"offset": "0", "type": "f32", "name": "x", "notes": ""},
		{"offset": "4", "type": "f32", "name": "y", "notes": ""}
	]}}`
	if err := os.WriteFile(filepath.Join(dir, "point.json"), []byte(catalog), 0o644); err != nil {
		t.Fatal(err)
	}
	return dispatch.NewSession(dispatch.Config{
		Params: objparams.NewStore(dir, objparams.Options{}),
	})
}

func TestShellRequest(t *testing.T) {
	s := newShellSession(t)

	var resp struct {
		ID     json.RawMessage `json:"id"`
		Result []string        `json:"result"`
		Error  string          `json:"error"`
	}

	if err := json.Unmarshal(shellRequest(s, "getTypes"), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "" || !slices.Contains(resp.Result, "Point") {
		t.Errorf("getTypes = %v, %q; want Point listed", resp.Result, resp.Error)
	}

	resp.Result, resp.Error = nil, ""
	if err := json.Unmarshal(shellRequest(s, `{"id": 7, "command": "getTypes"}`), &resp); err != nil {
		t.Fatal(err)
	}
	if string(resp.ID) != "7" || resp.Error != "" {
		t.Errorf("full request: id %s error %q", resp.ID, resp.Error)
	}
}

func TestShellRequestErrors(t *testing.T) {
	s := newShellSession(t)

	tests := []struct {
		line string
		want string
	}{
		{"frobnicate", "unknown command"},
		{"getFields {oops", "not valid JSON"},
		{`{"command": `, "invalid request"},
	}
	for _, tt := range tests {
		var resp dispatch.Response
		if err := json.Unmarshal(shellRequest(s, tt.line), &resp); err != nil {
			t.Fatalf("%q: %v", tt.line, err)
		}
		if !strings.Contains(resp.Error, tt.want) {
			t.Errorf("%q: error %q, want it to mention %q", tt.line, resp.Error, tt.want)
		}
	}
}

func TestCompleterListsCommands(t *testing.T) {
	pc := completer()
	var names []string
	for _, c := range pc.GetChildren() {
		names = append(names, strings.TrimSpace(string(c.GetName())))
	}
	for _, want := range append(dispatch.Commands(), "help", "exit") {
		if !slices.Contains(names, want) {
			t.Errorf("completer is missing %q", want)
		}
	}
}
