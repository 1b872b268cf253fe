package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// directiveResolver maps structs declared with a Directive attribute onto
// directive definitions. The struct's settable fields are its arguments.
type directiveResolver struct {
	in introspect.Introspector
}

func (r *directiveResolver) Kind() language.DefinitionKind { return language.DirectiveKind }

func (r *directiveResolver) Supports(t reflect.Type) bool {
	return introspect.Has[meta.Directive](attributes(r.in, t))
}

func (r *directiveResolver) Name(t reflect.Type) string {
	if d, ok := introspect.Lookup[meta.Directive](attributes(r.in, t)); ok && d.Name != "" {
		return d.Name
	}
	return introspect.LowerCamel(typeName(t))
}

func (r *directiveResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "directive", name)
	}
	attrs, err := ctx.TypeAttributes(t)
	if err != nil {
		return nil, err
	}
	decl, _ := introspect.Lookup[meta.Directive](attrs)
	if len(decl.Locations) == 0 {
		return nil, violation.Invalid(t, "directive @%s declares no locations", name)
	}
	def := &language.DirectiveDefinition{
		Name:         name,
		Description:  typeDescription(attrs),
		IsRepeatable: decl.Repeatable,
		Position:     &language.Position{Src: language.Generated},
	}
	for _, l := range decl.Locations {
		loc, ok := language.ParseDirectiveLocation(l)
		if !ok {
			return nil, violation.UnknownDirectiveLocation(t, l)
		}
		def.Locations = append(def.Locations, loc)
	}
	args, err := ctx.Descriptors.Fields(t, descriptor.Input, true)
	if err != nil {
		return nil, err
	}
	for _, f := range args {
		def.Arguments = append(def.Arguments, &language.ArgumentDefinition{
			Name:         f.Name,
			Description:  f.Description,
			Type:         f.Type,
			DefaultValue: f.Default,
			Directives:   f.Directives,
		})
	}
	return &Provider{Kind: language.DirectiveKind, Name: name, Directive: def}, nil
}
