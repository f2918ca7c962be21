// Package procfs reads the process information the Linux kernel exposes
// under /proc.
package procfs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Mapping is one line of /proc/<pid>/maps.
type Mapping struct {
	Start  uint64
	End    uint64
	Perms  string
	Offset uint64
	Path   string
}

// Size returns the length of the mapping in bytes.
func (m Mapping) Size() uint64 {
	return m.End - m.Start
}

// Shared reports whether the mapping is MAP_SHARED.
func (m Mapping) Shared() bool {
	return len(m.Perms) == 4 && m.Perms[3] == 's'
}

var mapsLine = regexp.MustCompile(`^([0-9a-f]+)-([0-9a-f]+)\s+([rwxps-]+)\s+([0-9a-f]+)\s+([0-9a-f]+:[0-9a-f]+)\s+(\d+)(?:\s+(.*))?$`)

// ParseMaps parses the contents of a maps file. Lines that do not match
// the expected layout are skipped.
func ParseMaps(r io.Reader) ([]Mapping, error) {
	var maps []Mapping

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		match := mapsLine.FindStringSubmatch(scanner.Text())
		if len(match) < 7 {
			continue
		}
		start, _ := strconv.ParseUint(match[1], 16, 64)
		end, _ := strconv.ParseUint(match[2], 16, 64)
		offset, _ := strconv.ParseUint(match[4], 16, 64)
		path := ""
		if len(match) > 7 {
			path = strings.TrimSpace(match[7])
		}

		maps = append(maps, Mapping{
			Start:  start,
			End:    end,
			Perms:  match[3],
			Offset: offset,
			Path:   path,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("procfs: failed to read maps: %w", err)
	}
	return maps, nil
}

// ReadMaps reads /proc/<pid>/maps.
func ReadMaps(pid int) ([]Mapping, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseMaps(f)
}
