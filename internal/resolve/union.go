package resolve

import (
	"context"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// unionResolver maps types declared with a Union attribute onto union types.
type unionResolver struct {
	in introspect.Introspector
}

func (r *unionResolver) Kind() language.DefinitionKind { return language.Union }

func (r *unionResolver) Supports(t reflect.Type) bool {
	return introspect.Has[meta.Union](attributes(r.in, t))
}

func (r *unionResolver) Name(t reflect.Type) string {
	if u, ok := introspect.Lookup[meta.Union](attributes(r.in, t)); ok && u.Name != "" {
		return u.Name
	}
	return typeName(t)
}

func (r *unionResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, false)
}

func (r *unionResolver) extend(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, true)
}

func (r *unionResolver) resolve(t reflect.Type, name string, ctx *Context, extension bool) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "union", name)
	}
	attrs, err := ctx.TypeAttributes(t)
	if err != nil {
		return nil, err
	}
	decl, _ := introspect.Lookup[meta.Union](attrs)
	directives, err := ctx.Descriptors.Directives(attrs)
	if err != nil {
		return nil, err
	}
	def := &language.Definition{
		Kind:        language.Union,
		Name:        name,
		Description: typeDescription(attrs),
		Directives:  directives,
	}
	seen := map[string]bool{}
	for _, member := range decl.Members {
		p, err := ctx.Register(member)
		if err != nil {
			return nil, err
		}
		if p.Kind != language.Object {
			return nil, violation.UnionMemberNotObject(t, member, string(p.Kind))
		}
		if seen[p.Name] {
			if extension {
				return nil, violation.DuplicateField(t, "union", p.Name, name)
			}
			continue
		}
		seen[p.Name] = true
		def.Types = append(def.Types, p.Name)
	}
	if len(def.Types) == 0 && !extension {
		return nil, violation.EmptyType(t, "union", name)
	}

	var resolveType wiring.TypeResolver
	switch {
	case decl.ResolveType != nil:
		fn := decl.ResolveType
		resolveType = func(_ context.Context, value any) (string, error) { return fn(value) }
	case decl.Resolver != nil:
		if resolveType, err = typeResolver(ctx.Instantiator, decl.Resolver); err != nil {
			return nil, violation.UnsupportedValue(t, "type resolver", err)
		}
	}
	return &Provider{
		Kind:       language.Union,
		Name:       name,
		Definition: def,
		Operator:   typeResolverOperator(name, resolveType),
	}, nil
}
