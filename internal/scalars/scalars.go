// Package scalars maps Go value types onto GraphQL scalar definitions.
package scalars

import (
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
)

// Coercing serializes host values of a scalar and parses request values into
// the scalar's canonical Go value.
type Coercing interface {
	Serialize(value any) (any, error)
	ParseValue(value any) (any, error)
}

// Scalar is a scalar definition with its coercion.
type Scalar struct {
	Definition *ast.Definition
	Coercing   Coercing
}

// Name returns the scalar's schema name.
func (s *Scalar) Name() string { return s.Definition.Name }

// Entry maps one host type onto a Scalar.
type Entry struct {
	Type   reflect.Type
	Scalar *Scalar
	// FromValue converts a request value into a value of Type. Nil means the
	// canonical value from Coercing.ParseValue is used as is.
	FromValue func(value any) (any, error)
}

// Parse converts a request value to the entry's host type.
func (e *Entry) Parse(value any) (any, error) {
	v, err := e.Scalar.Coercing.ParseValue(value)
	if err != nil || e.FromValue == nil {
		return v, err
	}
	return e.FromValue(v)
}

type memoKey struct {
	generation uint64
	t          reflect.Type
}

type memoResult struct {
	entry *Entry
}

// Repository is a registry of host type → scalar mappings. It is safe for
// concurrent registration and lookup.
type Repository struct {
	mu         sync.RWMutex
	exact      map[reflect.Type]*Entry
	interfaces []*Entry
	scalars    map[string]*Scalar
	generation atomic.Uint64
	memo       sync.Map
}

// New creates a repository preloaded with the built-in and well-known scalars.
func New() *Repository {
	r := NewEmpty()
	registerBuiltins(r)
	registerProtobuf(r)
	return r
}

// NewEmpty creates a repository without any mapping.
func NewEmpty() *Repository {
	return &Repository{
		exact:   make(map[reflect.Type]*Entry),
		scalars: make(map[string]*Scalar),
	}
}

var defaultRepository = sync.OnceValue(New)

// Default returns the process-wide repository.
func Default() *Repository { return defaultRepository() }

// Register maps t onto scalar. Registering an interface type maps every type
// implementing it.
func (r *Repository) Register(t reflect.Type, scalar *Scalar, fromValue func(any) (any, error)) *Repository {
	entry := &Entry{Type: t, Scalar: scalar, FromValue: fromValue}
	r.mu.Lock()
	if t.Kind() == reflect.Interface {
		r.interfaces = append(r.interfaces, entry)
	} else {
		r.exact[introspect.Indirect(t)] = entry
	}
	if _, ok := r.scalars[scalar.Name()]; !ok {
		r.scalars[scalar.Name()] = scalar
	}
	r.generation.Add(1)
	r.mu.Unlock()
	r.memo.Clear()
	return r
}

// Lookup finds the entry for t: an exact match, then the most specific
// registered interface t implements, then the entry of t's underlying
// predeclared type.
func (r *Repository) Lookup(t reflect.Type) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	key := memoKey{r.generation.Load(), t}
	if v, ok := r.memo.Load(key); ok {
		res := v.(memoResult)
		return res.entry, res.entry != nil
	}
	entry := r.lookup(t)
	r.memo.Store(key, memoResult{entry: entry})
	return entry, entry != nil
}

// Supports reports whether t maps onto a scalar.
func (r *Repository) Supports(t reflect.Type) bool {
	_, ok := r.Lookup(t)
	return ok
}

// Scalar returns the scalar registered under name.
func (r *Repository) Scalar(name string) (*Scalar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scalars[name]
	return s, ok
}

// Scalars returns every registered scalar ordered by name.
func (r *Repository) Scalars() []*Scalar {
	r.mu.RLock()
	ret := make([]*Scalar, 0, len(r.scalars))
	for _, s := range r.scalars {
		ret = append(ret, s)
	}
	r.mu.RUnlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name() < ret[j].Name() })
	return ret
}

func (r *Repository) lookup(t reflect.Type) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.exact[t]; ok {
		return e
	}
	base := introspect.Indirect(t)
	if e, ok := r.exact[base]; ok {
		return e
	}
	var best *Entry
	for _, e := range r.interfaces {
		if !t.Implements(e.Type) && !reflect.PointerTo(base).Implements(e.Type) {
			continue
		}
		if best == nil || e.Type.NumMethod() > best.Type.NumMethod() {
			best = e
		}
	}
	if best != nil {
		return best
	}
	if predeclared, ok := predeclaredTypes[base.Kind()]; ok && base != predeclared {
		return r.exact[predeclared]
	}
	return nil
}

var predeclaredTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.String:  reflect.TypeFor[string](),
}
