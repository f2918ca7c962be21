package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/bigendian"
	"github.com/skdltmxn/smsinspect/objparams"
	"github.com/skdltmxn/smsinspect/reader"
	"github.com/skdltmxn/smsinspect/sms"
)

// unknownName stands in for an object name that cannot be read.
const unknownName = "�"

// maxDisasmCount bounds one disasm request.
const maxDisasmCount = 1024

func handleInit(s *Session, _ json.RawMessage) (any, error) {
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	return g.PID(), nil
}

func handleGetVersion(s *Session, _ json.RawMessage) (any, error) {
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	return g.Version().String(), nil
}

func optString(v string, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

func nameOrUnknown(v string, ok bool) string {
	if !ok {
		return unknownName
	}
	return v
}

// getManagers: [[addr, class, name, children], ...] or null.
func handleGetManagers(s *Session, _ json.RawMessage) (any, error) {
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	managers, ok := g.Managers()
	if !ok {
		return nil, nil
	}

	rows := make([][4]any, len(managers))
	for i, m := range managers {
		rows[i] = [4]any{uint32(m.Addr), optString(m.Class, m.ClassOK), nameOrUnknown(m.Name, m.NameOK), m.Children}
	}
	return rows, nil
}

// getManagees: body is the manager address; [[addr, class, name], ...].
func handleGetManagees(s *Session, body json.RawMessage) (any, error) {
	var mgr uint32
	if err := json.Unmarshal(body, &mgr); err != nil {
		return nil, errors.New(`"body" must be a manager address`)
	}
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	objs, ok := g.Managees(addr.Addr(mgr))
	if !ok {
		return nil, nil
	}

	rows := make([][3]any, len(objs))
	for i, o := range objs {
		rows[i] = [3]any{uint32(o.Addr), optString(o.Class, o.ClassOK), nameOrUnknown(o.Name, o.NameOK)}
	}
	return rows, nil
}

// resolve turns an AddrPath into an address. ok is false when a pointer
// on the way cannot be read.
func resolve(g *sms.Game, p *AddrPath) (addr.Addr, bool) {
	return g.ResolvePath(p.Base, p.Hops...)
}

// read: {addr, type} decodes a type, {addr, size} dumps hex.
func handleRead(s *Session, body json.RawMessage) (any, error) {
	var req readBody
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Addr == nil {
		return nil, errMissingAddr
	}
	switch {
	case req.Size != nil && req.Type != nil:
		return nil, errors.New(`"size" and "type" cannot be specified at the same time`)
	case req.Size == nil && req.Type == nil:
		return nil, errors.New(`either "size" or "type" must be specified`)
	case req.Size != nil && (*req.Size < 0 || *req.Size > int64(dolphin.MEM2Size)):
		return nil, errors.New(`"size" must be a positive integer`)
	}

	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	a, ok := resolve(g, req.Addr)
	if !ok {
		return nil, nil
	}

	if req.Size != nil {
		h, ok := g.DumpHex(a, uint32(*req.Size))
		if !ok {
			return nil, nil
		}
		return h, nil
	}

	v, err := s.params().Read(g, a, *req.Type)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func handleReadString(s *Session, body json.RawMessage) (any, error) {
	var req addrBody
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Addr == nil {
		return nil, errMissingAddr
	}
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	a, ok := resolve(g, req.Addr)
	if !ok {
		return nil, nil
	}
	str, ok := g.ReadString(a)
	if !ok {
		return nil, nil
	}
	return str, nil
}

// write: {addr, payload: "hex"}; reports whether the bytes were written.
func handleWrite(s *Session, body json.RawMessage) (any, error) {
	var req writeBody
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Addr == nil {
		return nil, errMissingAddr
	}
	if req.Payload == nil {
		return nil, errors.New("payload must be specified")
	}
	payload, err := decodePayload(*req.Payload)
	if err != nil {
		return nil, err
	}

	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	a, ok := resolve(g, req.Addr)
	if !ok {
		return false, nil
	}
	return g.WriteBytes(a, payload), nil
}

// getClass names the class of the object at addr.
func handleGetClass(s *Session, body json.RawMessage) (any, error) {
	var req addrBody
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Addr == nil {
		return nil, errMissingAddr
	}
	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	a, ok := resolve(g, req.Addr)
	if !ok {
		return nil, nil
	}
	return optString(g.ClassOf(a)), nil
}

// getFields: body is a type name; [[offsets, name, notes, type, class], ...].
func handleGetFields(s *Session, body json.RawMessage) (any, error) {
	var name string
	if err := json.Unmarshal(body, &name); err != nil {
		return nil, errors.New("body must be a string")
	}
	typ, err := s.params().Type(name)
	if err != nil {
		return nil, err
	}
	return typ.Rows(), nil
}

func handleGetTypes(s *Session, _ json.RawMessage) (any, error) {
	p, err := s.params().Params()
	if err != nil {
		return nil, err
	}
	return p.Types(), nil
}

func handleReload(s *Session, _ json.RawMessage) (any, error) {
	if err := s.params().Reload(); err != nil {
		return nil, err
	}
	return nil, nil
}

// disasm: {addr, count}; [[addr, word, text], ...] up to the first
// unreadable word.
func handleDisasm(s *Session, body json.RawMessage) (any, error) {
	var req disasmBody
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if req.Addr == nil {
		return nil, errMissingAddr
	}
	count := 1
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > maxDisasmCount {
		return nil, fmt.Errorf(`"count" must be between 1 and %d`, maxDisasmCount)
	}

	g, err := s.Game()
	if err != nil {
		return nil, err
	}
	a, ok := resolve(g, req.Addr)
	if !ok {
		return nil, nil
	}

	rows := make([][3]any, 0, count)
	for i := range count {
		pc := a.Add(uint32(4 * i))
		w, ok := dolphin.Read(g.Memory, pc, bigendian.U32)
		if !ok {
			break
		}
		rows = append(rows, [3]any{uint32(pc), fmt.Sprintf("%08X", w), reader.Disassemble(w, pc)})
	}
	return rows, nil
}

func (s *Session) params() *objparams.Store {
	return s.cfg.Params
}
