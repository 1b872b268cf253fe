package resolve

import (
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/argument"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// objectResolver maps structs onto object types. Every exposed field gets a
// binding that reads the property or invokes the method.
type objectResolver struct {
	in introspect.Introspector
}

func (r *objectResolver) Kind() language.DefinitionKind { return language.Object }

func (r *objectResolver) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Struct || introspect.Has[meta.Object](attributes(r.in, t))
}

func (r *objectResolver) Name(t reflect.Type) string {
	if o, ok := introspect.Lookup[meta.Object](attributes(r.in, t)); ok && o.Name != "" {
		return o.Name
	}
	return typeName(t)
}

func (r *objectResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, false)
}

func (r *objectResolver) extend(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, true)
}

func (r *objectResolver) resolve(t reflect.Type, name string, ctx *Context, extension bool) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "type", name)
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
		return nil, violation.EmptyType(t, "type", name)
	}
	interfaces, err := implemented(t, attrs, ctx)
	if err != nil {
		return nil, err
	}
	directives, err := ctx.Descriptors.Directives(attrs)
	if err != nil {
		return nil, err
	}
	def := &language.Definition{
		Kind:        language.Object,
		Name:        name,
		Description: typeDescription(attrs),
		Interfaces:  interfaces,
		Directives:  directives,
	}
	bindings := make([]*argument.Binding, 0, len(fields))
	for _, f := range fields {
		def.Fields = append(def.Fields, f.Definition())
		b, err := argument.Bind(name, f, ctx.Env, ctx.Factories)
		if err != nil {
			return nil, violation.At(violation.Invalid(t, "%v", err), f.Name)
		}
		bindings = append(bindings, b)
	}
	return &Provider{
		Kind:       language.Object,
		Name:       name,
		Definition: def,
		Operator: func(w *wiring.Builder) *wiring.Builder {
			if !extension {
				w = w.Object(t, name)
			}
			for i, f := range fields {
				w = w.Field(name, f.Name, bindings[i].Resolve)
			}
			return w
		},
	}, nil
}

// implemented resolves the interfaces t implements: those listed on its
// Object attribute, then embedded structs declared as interfaces.
func implemented(t reflect.Type, attrs introspect.Attributes, ctx *Context) ([]string, error) {
	var candidates []reflect.Type
	if o, ok := introspect.Lookup[meta.Object](attrs); ok {
		candidates = append(candidates, o.Implements...)
	}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			embedded := introspect.Indirect(f.Type)
			if introspect.Has[meta.Interface](attributes(ctx.Introspector, embedded)) {
				candidates = append(candidates, embedded)
			}
		}
	}
	var ret []string
	seen := map[string]bool{}
	for _, iface := range candidates {
		p, err := ctx.Register(iface)
		if err != nil {
			return nil, err
		}
		if p.Kind != language.Interface {
			return nil, violation.NotInterface(t, iface, string(p.Kind))
		}
		if !seen[p.Name] {
			seen[p.Name] = true
			ret = append(ret, p.Name)
		}
	}
	return ret, nil
}
