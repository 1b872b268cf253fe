// Package wiring collects the runtime side of a built schema: field
// resolvers, enum value tables, abstract type resolution and scalar coercion.
//
// Resolvers contribute to the wiring through Operators, pure functions from a
// partially built Builder to an updated one. Operators are applied in the order
// providers are produced; the first registration for any key wins, so an
// extension can add to a type but never replace what the base declared.
package wiring

import (
	"context"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/scalars"
)

// FieldResolver produces the value of one field. source is the parent value
// (nil for root fields) and args holds the request's argument values.
type FieldResolver func(ctx context.Context, source any, args map[string]any) (any, error)

// TypeResolver returns the concrete object name for a value of an abstract type.
type TypeResolver func(ctx context.Context, value any) (string, error)

// Operator updates a wiring Builder.
type Operator func(*Builder) *Builder

// Compose returns an operator applying ops in order. Nil operators are skipped.
func Compose(ops ...Operator) Operator {
	return func(b *Builder) *Builder {
		for _, op := range ops {
			if op != nil {
				b = op(b)
			}
		}
		return b
	}
}

type fieldKey struct {
	typ, field string
}

type enumTable struct {
	raw   map[string]any
	names map[any]string
	order []string
}

func (t *enumTable) clone() *enumTable {
	c := &enumTable{
		raw:   make(map[string]any, len(t.raw)),
		names: make(map[any]string, len(t.names)),
		order: append([]string(nil), t.order...),
	}
	for k, v := range t.raw {
		c.raw[k] = v
	}
	for k, v := range t.names {
		c.names[k] = v
	}
	return c
}

// Builder accumulates wiring registrations.
type Builder struct {
	fields        map[fieldKey]FieldResolver
	enums         map[string]*enumTable
	typeResolvers map[string]TypeResolver
	scalars       map[string]*scalars.Scalar
	objects       map[reflect.Type]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		fields:        make(map[fieldKey]FieldResolver),
		enums:         make(map[string]*enumTable),
		typeResolvers: make(map[string]TypeResolver),
		scalars:       make(map[string]*scalars.Scalar),
		objects:       make(map[reflect.Type]string),
	}
}

// Field registers the resolver of typ.field.
func (b *Builder) Field(typ, field string, r FieldResolver) *Builder {
	key := fieldKey{typ, field}
	if _, ok := b.fields[key]; !ok {
		b.fields[key] = r
	}
	return b
}

// EnumValue maps the enum value name of typ to its raw Go value.
func (b *Builder) EnumValue(typ, name string, raw any) *Builder {
	table, ok := b.enums[typ]
	if !ok {
		table = &enumTable{raw: map[string]any{}, names: map[any]string{}}
		b.enums[typ] = table
	}
	if _, ok := table.raw[name]; ok {
		return b
	}
	table.raw[name] = raw
	table.order = append(table.order, name)
	if raw != nil && reflect.ValueOf(raw).Comparable() {
		if _, ok := table.names[raw]; !ok {
			table.names[raw] = name
		}
	}
	return b
}

// TypeResolver registers the concrete type resolution of an interface or union.
func (b *Builder) TypeResolver(typ string, r TypeResolver) *Builder {
	if _, ok := b.typeResolvers[typ]; !ok {
		b.typeResolvers[typ] = r
	}
	return b
}

// Scalar registers a scalar's coercion.
func (b *Builder) Scalar(s *scalars.Scalar) *Builder {
	if _, ok := b.scalars[s.Name()]; !ok {
		b.scalars[s.Name()] = s
	}
	return b
}

// Object records the object name a Go type is exposed as. It is used to
// resolve abstract types without an explicit TypeResolver.
func (b *Builder) Object(t reflect.Type, name string) *Builder {
	t = indirect(t)
	if _, ok := b.objects[t]; !ok {
		b.objects[t] = name
	}
	return b
}

// Build freezes the registrations into a Runtime.
func (b *Builder) Build() *Runtime {
	r := &Runtime{
		fields:        make(map[fieldKey]FieldResolver, len(b.fields)),
		enums:         make(map[string]*enumTable, len(b.enums)),
		typeResolvers: make(map[string]TypeResolver, len(b.typeResolvers)),
		scalars:       make(map[string]*scalars.Scalar, len(b.scalars)),
		objects:       make(map[reflect.Type]string, len(b.objects)),
	}
	for k, v := range b.fields {
		r.fields[k] = v
	}
	for k, v := range b.enums {
		r.enums[k] = v.clone()
	}
	for k, v := range b.typeResolvers {
		r.typeResolvers[k] = v
	}
	for k, v := range b.scalars {
		r.scalars[k] = v
	}
	for k, v := range b.objects {
		r.objects[k] = v
	}
	return r
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
