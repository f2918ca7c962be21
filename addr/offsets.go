package addr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyOffsets is returned when an offset chain has no base.
var ErrEmptyOffsets = errors.New("addr: offset array must not be empty")

// Offsets describes a path to a field: start at origin+Base, then for
// each element of Tail read a pointer at the current address and add
// the element to it.
//
// An empty Tail means no dereference at all.
type Offsets struct {
	Base uint32
	Tail []uint32
}

// At returns an offset chain without any dereference.
func At(base uint32) Offsets {
	return Offsets{Base: base}
}

// Chain returns an offset chain from a base and its dereference hops.
func Chain(base uint32, tail ...uint32) Offsets {
	return Offsets{Base: base, Tail: tail}
}

// Compose appends next onto o. The last hop of o has not been
// dereferenced yet when next starts, so next.Base is folded into that
// hop (or into o.Base when o has no hops).
func (o Offsets) Compose(next Offsets) Offsets {
	if len(o.Tail) == 0 {
		return Offsets{
			Base: o.Base + next.Base,
			Tail: append([]uint32(nil), next.Tail...),
		}
	}

	tail := make([]uint32, 0, len(o.Tail)+len(next.Tail))
	tail = append(tail, o.Tail...)
	tail[len(tail)-1] += next.Base
	tail = append(tail, next.Tail...)
	return Offsets{Base: o.Base, Tail: tail}
}

// Depth returns the number of pointer reads the chain performs.
func (o Offsets) Depth() int {
	return len(o.Tail)
}

// Resolve walks the chain from origin. deref reads the pointer stored
// at an address; when it fails the walk stops and ok is false.
func (o Offsets) Resolve(origin Addr, deref func(Addr) (Addr, bool)) (Addr, bool) {
	a := origin.Add(o.Base)
	for _, off := range o.Tail {
		p, ok := deref(a)
		if !ok {
			return 0, false
		}
		a = p.Add(off)
	}
	return a, true
}

// String formats the chain as comma separated hex, e.g. "1C,4,0".
func (o Offsets) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%X", o.Base)
	for _, off := range o.Tail {
		fmt.Fprintf(&sb, ",%X", off)
	}
	return sb.String()
}

// ParseOffsets parses the comma separated hex form produced by String.
func ParseOffsets(s string) (Offsets, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Offsets{}, ErrEmptyOffsets
	}
	return parseHexList(strings.Split(s, ","))
}

func parseHexList(parts []string) (Offsets, error) {
	if len(parts) == 0 {
		return Offsets{}, ErrEmptyOffsets
	}

	vals := make([]uint32, len(parts))
	for i, p := range parts {
		v, err := parseHex(p)
		if err != nil {
			return Offsets{}, err
		}
		vals[i] = v
	}

	o := Offsets{Base: vals[0]}
	if len(vals) > 1 {
		o.Tail = vals[1:]
	}
	return o, nil
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("addr: invalid hex offset %q: %w", s, err)
	}
	return uint32(v), nil
}

// ParseAddr parses a hex address, with or without a 0x prefix.
func ParseAddr(s string) (Addr, error) {
	v, err := parseHex(s)
	return Addr(v), err
}

// UnmarshalJSON accepts a hex string ("1C", or "1C,4" as written by
// MarshalText) or a non-empty array of hex strings (["1C", "4"]).
func (o *Offsets) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParseOffsets(s)
		if err != nil {
			return err
		}
		*o = v
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("addr: expected a hex string or a non-empty array of hex string")
	}
	v, err := parseHexList(arr)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Offsets) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
