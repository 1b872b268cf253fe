package resolve

import (
	"reflect"
	"sync"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
)

// enumIndex maps enum Go types to their value tables. It is filled during the
// build and read by argument conversion at request time.
type enumIndex struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*enumTable
}

type enumTable struct {
	raw   map[string]any
	names map[any]string
}

func newEnumIndex() *enumIndex {
	return &enumIndex{tables: map[reflect.Type]*enumTable{}}
}

// add records values for t. The first value of a name wins.
func (x *enumIndex) add(t reflect.Type, values []enumValue) {
	t = introspect.Indirect(t)
	x.mu.Lock()
	defer x.mu.Unlock()
	table, ok := x.tables[t]
	if !ok {
		table = &enumTable{raw: map[string]any{}, names: map[any]string{}}
		x.tables[t] = table
	}
	for _, v := range values {
		if _, ok := table.raw[v.name]; ok {
			continue
		}
		table.raw[v.name] = v.raw
		if hashable(v.raw) {
			if _, ok := table.names[v.raw]; !ok {
				table.names[v.raw] = v.name
			}
		}
	}
}

func (x *enumIndex) IsEnum(t reflect.Type) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.tables[introspect.Indirect(t)]
	return ok
}

func (x *enumIndex) EnumRaw(t reflect.Type, name string) (any, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	table, ok := x.tables[introspect.Indirect(t)]
	if !ok {
		return nil, false
	}
	raw, ok := table.raw[name]
	return raw, ok
}

func (x *enumIndex) name(t reflect.Type, raw any) (string, bool) {
	if !hashable(raw) {
		return "", false
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	table, ok := x.tables[introspect.Indirect(t)]
	if !ok {
		return "", false
	}
	name, ok := table.names[raw]
	return name, ok
}

func hashable(v any) bool {
	return v != nil && reflect.ValueOf(v).Comparable()
}
