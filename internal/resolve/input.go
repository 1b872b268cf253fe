package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// inputResolver maps types declared with an Input attribute onto input object
// types built from their setter shaped members.
type inputResolver struct {
	in introspect.Introspector
}

func (r *inputResolver) Kind() language.DefinitionKind { return language.InputObject }

func (r *inputResolver) Supports(t reflect.Type) bool {
	return introspect.Has[meta.Input](attributes(r.in, t))
}

func (r *inputResolver) Name(t reflect.Type) string {
	if i, ok := introspect.Lookup[meta.Input](attributes(r.in, t)); ok && i.Name != "" {
		return i.Name
	}
	return typeName(t)
}

func (r *inputResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, false)
}

func (r *inputResolver) extend(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, true)
}

func (r *inputResolver) resolve(t reflect.Type, name string, ctx *Context, extension bool) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "input", name)
	}
	attrs, err := ctx.TypeAttributes(t)
	if err != nil {
		return nil, err
	}
	fields, err := ctx.Descriptors.Fields(t, descriptor.Input, extension)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 && !extension {
		return nil, violation.EmptyType(t, "input", name)
	}
	directives, err := ctx.Descriptors.Directives(attrs)
	if err != nil {
		return nil, err
	}
	def := &language.Definition{
		Kind:        language.InputObject,
		Name:        name,
		Description: typeDescription(attrs),
		Directives:  directives,
	}
	for _, f := range fields {
		def.Fields = append(def.Fields, f.InputDefinition())
	}
	return &Provider{Kind: language.InputObject, Name: name, Definition: def}, nil
}
