package sms

import (
	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/bigendian"
	"github.com/skdltmxn/smsinspect/vtable"
)

// Game is a running copy of the game. It owns its memory.
type Game struct {
	*dolphin.Memory
	version Version
	classes *vtable.Table
}

// NewGame identifies the game in m. classes may be nil. On error the
// caller still owns m.
func NewGame(m *dolphin.Memory, classes *vtable.Table) (*Game, error) {
	v, err := DetectVersion(m)
	if err != nil {
		return nil, err
	}
	return &Game{Memory: m, version: v, classes: classes}, nil
}

// Version returns the detected release.
func (g *Game) Version() Version {
	return g.version
}

// ClassName names the class whose virtual table is at vt. Unknown
// tables render as the address in parentheses.
func (g *Game) ClassName(vt addr.Addr) string {
	return g.classes.Name(vt)
}

// ClassOf names the class of the object at obj.
func (g *Game) ClassOf(obj addr.Addr) (string, bool) {
	vt, ok := g.ReadAddr(obj)
	if !ok {
		return "", false
	}
	return g.ClassName(vt), true
}

// NameOf reads the name string of the named object at obj.
func (g *Game) NameOf(obj addr.Addr) (string, bool) {
	p, ok := g.ReadAddr(obj.Add(4))
	if !ok {
		return "", false
	}
	return g.ReadString(p)
}

// Object is a named game object.
type Object struct {
	Addr    addr.Addr
	Class   string
	ClassOK bool
	Name    string
	NameOK  bool
}

// Manager is an object manager registered with the conductor.
type Manager struct {
	Object
	Children int32 // -1 when unreadable
}

// maxChildren bounds list walks over garbage counts.
const maxChildren = 0x10000

// Layout of the manager lists.
const (
	childInfoOffset = 0x14 // count, then pointer to the first child
	nodeObjOffset   = 8    // conductor list node: next, prev, obj
)

func (g *Game) childInfo(a addr.Addr) (count uint32, head addr.Addr, ok bool) {
	count, ok = dolphin.Read(g.Memory, a.Add(childInfoOffset), bigendian.U32)
	if !ok || count > maxChildren {
		return 0, 0, false
	}
	head, ok = g.ReadAddr(a.Add(childInfoOffset + 4))
	return count, head, ok
}

func (g *Game) object(a addr.Addr) Object {
	o := Object{Addr: a}
	o.Class, o.ClassOK = g.ClassOf(a)
	o.Name, o.NameOK = g.NameOf(a)
	return o
}

// Managers walks the conductor's list of managers. ok is false if any
// link of the list cannot be read.
func (g *Game) Managers() (managers []Manager, ok bool) {
	conductor, ok := g.ReadAddr(g.version.ManagerRoot())
	if !ok {
		return nil, false
	}
	count, next, ok := g.childInfo(conductor)
	if !ok {
		return nil, false
	}

	managers = make([]Manager, 0, count)
	for range count {
		var node []byte
		node, ok = g.ReadBytes(next, 12)
		if !ok {
			return nil, false
		}
		r := bigendian.NewReader(node)
		nextNode, _ := r.ReadU32()
		r.SetOffset(nodeObjOffset)
		obj, _ := r.ReadU32()

		m := Manager{Object: g.object(addr.Addr(obj)), Children: -1}
		if n, ok := dolphin.Read(g.Memory, addr.Addr(obj).Add(childInfoOffset), bigendian.S32); ok {
			m.Children = n
		}
		managers = append(managers, m)
		next = addr.Addr(nextNode)
	}
	return managers, true
}

// Managees lists the objects held by the manager at mgr.
func (g *Game) Managees(mgr addr.Addr) ([]Object, bool) {
	count, arr, ok := g.childInfo(mgr)
	if !ok {
		return nil, false
	}

	objs := make([]Object, 0, count)
	for i := range count {
		a, ok := g.ReadAddr(arr.Add(4 * i))
		if !ok {
			return nil, false
		}
		objs = append(objs, g.object(a))
	}
	return objs, true
}
