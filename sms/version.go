// Package sms recognizes Super Mario Sunshine in a running emulator and
// walks the game's object managers.
package sms

import (
	"fmt"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
)

// Version is a release of the game.
type Version uint8

const (
	VersionUnknown Version = iota
	GMSJ01
	GMSE01
	GMSP01
	GMSJ0A
)

func (v Version) String() string {
	switch v {
	case GMSJ01:
		return "GMSJ01"
	case GMSE01:
		return "GMSE01"
	case GMSP01:
		return "GMSP01"
	case GMSJ0A:
		return "GMSJ0A"
	default:
		return "unknown"
	}
}

// BuildIDAddr is where the disc header, and with it the game id, is
// loaded.
const BuildIDAddr addr.Addr = 0x80000000

type versionInfo struct {
	id          [8]byte
	managerRoot addr.Addr
}

var versions = map[Version]versionInfo{
	GMSJ01: {id: [8]byte{'G', 'M', 'S', 'J', '0', '1', 0x00, 0x00}, managerRoot: 0x8040A6E8},
	GMSE01: {id: [8]byte{'G', 'M', 'S', 'E', '0', '1', 0x00, 0x30}, managerRoot: 0x8040D110},
	GMSP01: {id: [8]byte{'G', 'M', 'S', 'P', '0', '1', 0x00, 0x00}, managerRoot: 0x80404870},
	GMSJ0A: {id: [8]byte{'G', 'M', 'S', 'J', '0', '1', 0x00, 0x01}, managerRoot: 0x803FE048},
}

// ParseVersion returns the version called name.
func ParseVersion(name string) (Version, bool) {
	for v := range versions {
		if v.String() == name {
			return v, true
		}
	}
	return VersionUnknown, false
}

// ManagerRoot returns the address of the pointer to the game's
// conductor.
func (v Version) ManagerRoot() addr.Addr {
	return versions[v].managerRoot
}

// UnknownGameError reports a build id that is not a known release.
type UnknownGameError struct {
	ID [8]byte
}

func (e *UnknownGameError) Error() string {
	return fmt.Sprintf("sms: unknown game id %q", e.ID[:])
}

// DetectVersion reads the build id from memory.
func DetectVersion(m *dolphin.Memory) (Version, error) {
	b, ok := m.ReadBytes(BuildIDAddr, 8)
	if !ok {
		return VersionUnknown, ErrNoGameRunning
	}

	var id [8]byte
	copy(id[:], b)
	for v, info := range versions {
		if info.id == id {
			return v, nil
		}
	}
	return VersionUnknown, &UnknownGameError{ID: id}
}
