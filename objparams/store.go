package objparams

import (
	"sync"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/reader"
)

// Store holds the resolved catalog of a directory and swaps in a new one
// on Reload. Readers see either the old or the new catalog, never a
// partly built one.
type Store struct {
	dir  string
	opts Options

	mu     sync.RWMutex
	params *Params
	err    error // why the first load failed, until one succeeds
	loaded bool
}

// NewStore returns a store for the catalog in dir. Nothing is read until
// the first use or Reload.
func NewStore(dir string, opts Options) *Store {
	return &Store{dir: dir, opts: opts}
}

// Dir returns the catalog directory.
func (s *Store) Dir() string {
	return s.dir
}

// Reload reads and resolves the catalog again. On failure the previous
// catalog stays in place.
func (s *Store) Reload() error {
	c, err := LoadCatalog(s.dir, s.opts.Logger)
	if err != nil {
		s.mu.Lock()
		s.loaded = true
		if s.params == nil {
			s.err = err
		}
		s.mu.Unlock()
		return err
	}
	p := Resolve(c, s.opts)

	s.mu.Lock()
	s.params, s.err, s.loaded = p, nil, true
	s.mu.Unlock()
	return nil
}

func (s *Store) ensureLoaded() {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		s.Reload()
	}
}

// Params returns the current resolved catalog.
func (s *Store) Params() (*Params, error) {
	s.ensureLoaded()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params, s.err
}

// Type returns the resolved type called name, falling back to
// DefaultType.
func (s *Store) Type(name string) (*ObjectType, error) {
	p, err := s.Params()
	if err != nil {
		return nil, err
	}
	return p.Type(name)
}

// Read decodes typeName at a. A primitive yields one value; a class
// yields one value per field. Values that cannot be read are nil.
func (s *Store) Read(t reader.Target, a addr.Addr, typeName string) (any, error) {
	s.ensureLoaded()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	typ, err := s.params.Type(typeName)
	if err != nil {
		return nil, err
	}
	return ReadValues(typ, t, a), nil
}

// ReadValues decodes typ at a in the shape Store.Read returns.
func ReadValues(typ *ObjectType, t reader.Target, a addr.Addr) any {
	if typ.IsPrimitive() {
		v, ok := typ.Read(t, a)
		if !ok {
			return nil
		}
		return &v
	}

	fields := typ.ReadFields(t, a)
	out := make([]*reader.Value, len(fields))
	for i, f := range fields {
		if f.OK {
			out[i] = &fields[i].Value
		}
	}
	return out
}
