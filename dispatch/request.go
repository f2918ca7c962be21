package dispatch

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/skdltmxn/smsinspect/addr"
)

// AddrPath is the address form accepted in request bodies: either a
// number, or [base, off1, off2, ...] meaning read the pointer at base,
// add off1, read the pointer there, add off2, and so on. Offsets may be
// negative.
type AddrPath struct {
	Base addr.Addr
	Hops []uint32
}

func (s *AddrPath) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.Number
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid addr: %s", data)
		}
		if len(raw) == 0 {
			return fmt.Errorf("invalid addr: %s", data)
		}
		base, err := parseAddrNumber(raw[0])
		if err != nil {
			return err
		}
		hops := make([]uint32, len(raw)-1)
		for i, n := range raw[1:] {
			v, err := n.Int64()
			if err != nil || v < math.MinInt32 || v > math.MaxUint32 {
				return fmt.Errorf("invalid offset: %s", n)
			}
			hops[i] = uint32(v)
		}
		s.Base, s.Hops = base, hops
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid addr: %s", data)
	}
	base, err := parseAddrNumber(n)
	if err != nil {
		return err
	}
	s.Base, s.Hops = base, nil
	return nil
}

func parseAddrNumber(n json.Number) (addr.Addr, error) {
	v, err := n.Int64()
	if err != nil || v < 0 || v > math.MaxUint32 {
		return 0, fmt.Errorf("invalid addr: %s", n)
	}
	return addr.Addr(v), nil
}

// addrBody is the {"addr": ...} request shape.
type addrBody struct {
	Addr *AddrPath `json:"addr"`
}

type readBody struct {
	Addr *AddrPath `json:"addr"`
	Type *string   `json:"type"`
	Size *int64    `json:"size"`
}

type writeBody struct {
	Addr    *AddrPath `json:"addr"`
	Payload *string   `json:"payload"`
}

type disasmBody struct {
	Addr  *AddrPath `json:"addr"`
	Count *int      `json:"count"`
}

var errMissingAddr = errors.New("addr must be specified")

func decodeBody(body json.RawMessage, v any) error {
	if len(body) == 0 {
		return fmt.Errorf("invalid body: empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}
	return nil
}

func decodePayload(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return b, nil
}
