package resolve

import (
	"context"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// interfaceResolver maps Go interfaces and structs declared with an Interface
// attribute onto interface types. Objects implementing them carry the field
// bindings; the interface only contributes concrete type resolution.
type interfaceResolver struct {
	in introspect.Introspector
}

func (r *interfaceResolver) Kind() language.DefinitionKind { return language.Interface }

func (r *interfaceResolver) Supports(t reflect.Type) bool {
	return introspect.Has[meta.Interface](attributes(r.in, t))
}

func (r *interfaceResolver) Name(t reflect.Type) string {
	if i, ok := introspect.Lookup[meta.Interface](attributes(r.in, t)); ok && i.Name != "" {
		return i.Name
	}
	return typeName(t)
}

func (r *interfaceResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, false)
}

func (r *interfaceResolver) extend(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, true)
}

func (r *interfaceResolver) resolve(t reflect.Type, name string, ctx *Context, extension bool) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "interface", name)
	}
	attrs, err := ctx.TypeAttributes(t)
	if err != nil {
		return nil, err
	}
	fields, err := ctx.Descriptors.Fields(t, descriptor.Output, extension)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 && !extension {
		return nil, violation.EmptyType(t, "interface", name)
	}
	directives, err := ctx.Descriptors.Directives(attrs)
	if err != nil {
		return nil, err
	}
	def := &language.Definition{
		Kind:        language.Interface,
		Name:        name,
		Description: typeDescription(attrs),
		Directives:  directives,
	}
	for _, f := range fields {
		def.Fields = append(def.Fields, f.Definition())
	}
	var resolveType wiring.TypeResolver
	if i, ok := introspect.Lookup[meta.Interface](attrs); ok && i.Resolver != nil {
		if resolveType, err = typeResolver(ctx.Instantiator, i.Resolver); err != nil {
			return nil, violation.UnsupportedValue(t, "type resolver", err)
		}
	}
	return &Provider{
		Kind:       language.Interface,
		Name:       name,
		Definition: def,
		Operator:   typeResolverOperator(name, resolveType),
	}, nil
}

// typeResolver instantiates a meta.TypeResolver implementation.
func typeResolver(in instance.Instantiator, t reflect.Type) (wiring.TypeResolver, error) {
	tr, err := instance.As[meta.TypeResolver](in, t)
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, value any) (string, error) {
		return tr.ResolveType(value)
	}, nil
}

func typeResolverOperator(name string, resolveType wiring.TypeResolver) wiring.Operator {
	if resolveType == nil {
		return nil
	}
	return func(w *wiring.Builder) *wiring.Builder {
		return w.TypeResolver(name, resolveType)
	}
}
