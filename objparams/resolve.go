package objparams

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/skdltmxn/smsinspect/internal/logging"
	"github.com/skdltmxn/smsinspect/reader"
)

// DefaultType names the type used when a requested type is unknown.
const DefaultType = "_default"

// FormatKey selects a formatted reader by declared type and format.
type FormatKey struct {
	Type   string
	Format Format
}

// DefaultFormats returns the formatted readers known out of the box.
func DefaultFormats() map[FormatKey]reader.Reader {
	return map[FormatKey]reader.Reader{
		{"u8", FormatHex}:     reader.Hex{Width: 1},
		{"u16", FormatHex}:    reader.Hex{Width: 2},
		{"u32", FormatHex}:    reader.Hex{Width: 4},
		{"u32", FormatDisasm}: reader.Disasm,
	}
}

func builtinTypes() map[string]*ObjectType {
	types := map[string]reader.Reader{
		"u8":     reader.U8,
		"u16":    reader.U16,
		"u32":    reader.U32,
		"s8":     reader.S8,
		"s16":    reader.S16,
		"s32":    reader.S32,
		"float":  reader.Float,
		"string": reader.String,
		"void*":  reader.ClassName,
	}
	out := make(map[string]*ObjectType, len(types))
	for name, r := range types {
		out[name] = &ObjectType{Name: name, Kind: KindPrimitive, Reader: r}
	}
	return out
}

// Options configures resolution.
type Options struct {
	Logger logging.Logger

	// Formats overrides DefaultFormats when non-nil.
	Formats map[FormatKey]reader.Reader
}

// Params is a resolved catalog. It is immutable and safe for concurrent
// use.
type Params struct {
	types map[string]*ObjectType
}

// Lookup returns the resolved type called name.
func (p *Params) Lookup(name string) (*ObjectType, bool) {
	t, ok := p.types[name]
	return t, ok
}

// Type returns the type called name, falling back to DefaultType.
func (p *Params) Type(name string) (*ObjectType, error) {
	if t, ok := p.types[name]; ok {
		return t, nil
	}
	if t, ok := p.types[DefaultType]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q (define %q in the catalog to read unknown types)", ErrUnknownType, name, DefaultType)
}

// Types returns the names of every resolved type, sorted.
func (p *Params) Types() []string {
	return slices.Sorted(maps.Keys(p.types))
}

type resolver struct {
	catalog Catalog
	formats map[FormatKey]reader.Reader
	log     logging.Logger

	types     map[string]*ObjectType
	resolving map[string]bool

	pointer *ObjectType
}

// Resolve turns a catalog into flat field lists. Every catalog type is
// resolved, so Params answers lookups without further work.
func Resolve(c Catalog, opts Options) *Params {
	r := &resolver{
		catalog:   c,
		formats:   opts.Formats,
		log:       opts.Logger,
		types:     builtinTypes(),
		resolving: make(map[string]bool),
		pointer:   &ObjectType{Name: "*", Kind: KindPrimitive, Reader: reader.Address},
	}
	if r.formats == nil {
		r.formats = DefaultFormats()
	}
	if r.log == nil {
		r.log = logging.NoOp{}
	}

	for _, name := range slices.Sorted(maps.Keys(c)) {
		r.resolve(name)
	}
	return &Params{types: r.types}
}

func (r *resolver) resolve(name string) *ObjectType {
	if t, ok := r.types[name]; ok {
		return t
	}

	// pointers are never followed, which is what ends recursion through
	// self-referencing classes
	if strings.HasSuffix(name, "*") {
		return r.pointer
	}

	decl, ok := r.catalog[name]
	if !ok {
		t := &ObjectType{Name: name, Kind: KindPrimitive, Reader: reader.Address}
		r.types[name] = t
		return t
	}

	if r.resolving[name] {
		r.log.Logf(logging.SeverityError, "class %q inlines itself; reading it as an address", name)
		return &ObjectType{Name: name, Kind: KindPrimitive, Reader: reader.Address}
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)

	var fields []ClassField
	for _, f := range decl.Offsets {
		if f.Hidden {
			continue
		}

		if f.Format != "" {
			if fr, ok := r.formats[FormatKey{f.Type, f.Format}]; ok {
				fields = append(fields, ClassField{
					Offset: f.Offset,
					Type:   f.Type,
					Name:   f.Name,
					Notes:  f.Notes,
					Class:  name,
					Reader: fr,
				})
				continue
			}
			r.log.Logf(logging.SeverityWarning, "format %q cannot be used for type %q (in class %q)", f.Format, f.Type, name)
		}

		sub := r.resolve(f.Type)
		if sub.IsPrimitive() {
			fields = append(fields, ClassField{
				Offset: f.Offset,
				Type:   f.Type,
				Name:   f.Name,
				Notes:  f.Notes,
				Class:  name,
				Reader: sub.Reader,
			})
			continue
		}

		template := strings.Contains(f.Name, "*")
		for _, sf := range sub.Fields {
			fname := sf.Name
			if template {
				fname = strings.ReplaceAll(f.Name, "*", sf.Name)
			}
			fields = append(fields, ClassField{
				Offset: f.Offset.Compose(sf.Offset),
				Type:   sf.Type,
				Name:   fname,
				Notes:  sf.Notes,
				Class:  sf.Class,
				Reader: sf.Reader,
			})
		}
	}

	t := &ObjectType{Name: name, Kind: KindClass, Fields: fields}
	r.types[name] = t
	return t
}
