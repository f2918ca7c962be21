package procfs

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Process identifies a running process.
type Process struct {
	PID  int
	Name string
}

// DolphinNames are the executable names of the emulator builds we know.
var DolphinNames = []string{
	"dolphin-emu",
	"dolphin-emu-qt2",
	"dolphin-emu-nogui",
	"Dolphin.exe",
	"DolphinQt2.exe",
	"DolphinWx.exe",
}

// List returns every process under root (normally "/proc") whose
// command name is one of names.
func List(root string, names []string) ([]Process, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var procs []Process
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}

		comm, err := os.ReadFile(filepath.Join(root, e.Name(), "comm"))
		if err != nil {
			// process exited or is not ours to inspect
			continue
		}
		name := strings.TrimSpace(string(comm))
		if slices.Contains(names, name) {
			procs = append(procs, Process{PID: pid, Name: name})
		}
	}

	slices.SortFunc(procs, func(a, b Process) int { return a.PID - b.PID })
	return procs, nil
}

// ListDolphin returns the running emulator processes.
func ListDolphin() ([]Process, error) {
	return List("/proc", DolphinNames)
}
