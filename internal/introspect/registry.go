package introspect

import (
	"reflect"
	"sync"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

type memberKey struct {
	t    reflect.Type
	name string
}

type paramKey struct {
	t      reflect.Type
	method string
	index  int
}

// Registry holds attributes that cannot be expressed as struct tags: type level
// attributes, method attributes and parameter attributes.
type Registry struct {
	mu      sync.RWMutex
	types   map[reflect.Type]Attributes
	members map[memberKey]Attributes
	params  map[paramKey]Attributes
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[reflect.Type]Attributes),
		members: make(map[memberKey]Attributes),
		params:  make(map[paramKey]Attributes),
	}
}

// Type attaches attributes to t.
func (r *Registry) Type(t reflect.Type, attrs ...meta.Attribute) *Registry {
	t = Indirect(t)
	r.mu.Lock()
	r.types[t] = append(r.types[t], attrs...)
	r.mu.Unlock()
	return r
}

// Member attaches attributes to the field or method goName of t.
func (r *Registry) Member(t reflect.Type, goName string, attrs ...meta.Attribute) *Registry {
	key := memberKey{Indirect(t), goName}
	r.mu.Lock()
	r.members[key] = append(r.members[key], attrs...)
	r.mu.Unlock()
	return r
}

// Param attaches attributes to the parameter at index of method on t. Index 0
// is the first parameter after the receiver.
func (r *Registry) Param(t reflect.Type, method string, index int, attrs ...meta.Attribute) *Registry {
	key := paramKey{Indirect(t), method, index}
	r.mu.Lock()
	r.params[key] = append(r.params[key], attrs...)
	r.mu.Unlock()
	return r
}

func (r *Registry) typeAttributes(t reflect.Type) Attributes {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Attributes(nil), r.types[t]...)
}

func (r *Registry) memberAttributes(t reflect.Type, goName string) Attributes {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Attributes(nil), r.members[memberKey{t, goName}]...)
}

func (r *Registry) paramAttributes(t reflect.Type, method string, index int) Attributes {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Attributes(nil), r.params[paramKey{t, method, index}]...)
}
