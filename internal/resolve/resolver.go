package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/generics"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

// TypeResolver turns Go types of one schema kind into providers. Resolvers
// are tried in order; the first whose Supports accepts a type resolves it.
type TypeResolver interface {
	Kind() language.DefinitionKind
	Supports(t reflect.Type) bool
	// Name returns the schema name t resolves to.
	Name(t reflect.Type) string
	// Resolve builds the provider of t. Other types are reached only through
	// ctx.Register.
	Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error)
}

// extender is implemented by resolvers whose kind can be extended. Extension
// resolution rejects repeated member names and skips base-only checks.
type extender interface {
	extend(t reflect.Type, name string, ctx *Context) (*Provider, error)
}

// DefaultResolvers returns the built-in resolvers in evaluation order.
// Enums, unions, interfaces and inputs are declared through metadata and are
// tested before scalars, so named types over predeclared kinds can be enums;
// plain structs fall through to objects.
func DefaultResolvers(e *Engine) []TypeResolver {
	in := e.opts.Introspector
	return []TypeResolver{
		&extensionResolver{in: in, engine: e},
		&directiveResolver{in: in},
		&enumResolver{in: in},
		&unionResolver{in: in},
		&interfaceResolver{in: in},
		&inputResolver{in: in},
		&scalarResolver{repo: e.opts.Scalars},
		&objectResolver{in: in},
	}
}

// attributes reads type attributes, treating unreadable ones as absent.
// Resolution reports the read error later through Context.TypeAttributes.
func attributes(in introspect.Introspector, t reflect.Type) introspect.Attributes {
	attrs, _ := in.TypeAttributes(t)
	return attrs
}

// typeName derives the default schema name of t.
func typeName(t reflect.Type) string {
	return generics.SchemaName(t)
}

// typeDescription returns the description declared on the kind attribute of
// a type, or its Description attribute.
func typeDescription(attrs introspect.Attributes) string {
	for _, a := range attrs {
		var text string
		switch a := a.(type) {
		case meta.Object:
			text = a.Description
		case meta.Interface:
			text = a.Description
		case meta.Input:
			text = a.Description
		case meta.Enum:
			text = a.Description
		case meta.Union:
			text = a.Description
		case meta.Directive:
			text = a.Description
		}
		if text != "" {
			return text
		}
	}
	return descriptor.Description(attrs)
}
