package resolve

import (
	"fmt"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/descriptor"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/wiring"
)

// enumResolver maps types declared with an Enum attribute onto enum types.
// Values are named by their EnumValue attribute, their String method or their
// formatted value, in that order.
type enumResolver struct {
	in introspect.Introspector
}

func (r *enumResolver) Kind() language.DefinitionKind { return language.Enum }

func (r *enumResolver) Supports(t reflect.Type) bool {
	return introspect.Has[meta.Enum](attributes(r.in, t))
}

func (r *enumResolver) Name(t reflect.Type) string {
	if e, ok := introspect.Lookup[meta.Enum](attributes(r.in, t)); ok && e.Name != "" {
		return e.Name
	}
	return typeName(t)
}

func (r *enumResolver) Resolve(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, false)
}

func (r *enumResolver) extend(t reflect.Type, name string, ctx *Context) (*Provider, error) {
	return r.resolve(t, name, ctx, true)
}

func (r *enumResolver) resolve(t reflect.Type, name string, ctx *Context, extension bool) (*Provider, error) {
	if !descriptor.ValidName(name) {
		return nil, violation.InvalidName(t, "enum", name)
	}
	attrs, err := ctx.TypeAttributes(t)
	if err != nil {
		return nil, err
	}
	decl, _ := introspect.Lookup[meta.Enum](attrs)
	host := t
	if ext, ok := introspect.Lookup[meta.Extends](attrs); ok && ext.Target != nil {
		host = introspect.Indirect(ext.Target)
	}
	overrides := introspect.All[meta.EnumValue](attrs)
	directives, err := ctx.Descriptors.Directives(attrs)
	if err != nil {
		return nil, err
	}
	def := &language.Definition{
		Kind:        language.Enum,
		Name:        name,
		Description: typeDescription(attrs),
		Directives:  directives,
	}
	var values []enumValue
	seen := map[string]bool{}
	for _, raw := range decl.Values {
		raw = enumerant(raw, host)
		override, _ := lookupEnumValue(overrides, raw)
		if override.Ignore {
			continue
		}
		valueName := override.Name
		if valueName == "" {
			valueName = enumValueName(raw)
		}
		if !descriptor.ValidName(valueName) {
			return nil, violation.InvalidName(t, "enum value", valueName)
		}
		if seen[valueName] {
			if extension {
				return nil, violation.DuplicateEnumValue(t, valueName, name)
			}
			continue
		}
		seen[valueName] = true
		value := &language.EnumValueDefinition{Name: valueName, Description: override.Description}
		if override.Deprecated != "" {
			value.Directives = append(value.Directives, descriptor.Deprecation(override.Deprecated))
		}
		def.EnumValues = append(def.EnumValues, value)
		values = append(values, enumValue{name: valueName, raw: raw})
	}
	if len(values) == 0 && !extension {
		return nil, violation.EmptyType(t, "enum", name)
	}
	return &Provider{
		Kind:       language.Enum,
		Name:       name,
		Definition: def,
		enumValues: values,
		Operator: func(w *wiring.Builder) *wiring.Builder {
			for _, v := range values {
				w = w.EnumValue(name, v.name, v.raw)
			}
			return w
		},
	}, nil
}

// enumerant converts raw to the enum's Go type when it was declared through
// an untyped constant or the underlying type.
func enumerant(raw any, host reflect.Type) any {
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || rv.Type() == host || !rv.Type().ConvertibleTo(host) || rv.Kind() != host.Kind() {
		return raw
	}
	return rv.Convert(host).Interface()
}

func lookupEnumValue(overrides []meta.EnumValue, raw any) (meta.EnumValue, bool) {
	for _, o := range overrides {
		if sameEnumerant(o.Value, raw) {
			return o, true
		}
	}
	return meta.EnumValue{}, false
}

// sameEnumerant compares an override value to an enumerant of a possibly
// different but convertible type.
func sameEnumerant(declared, raw any) bool {
	if !hashable(declared) || !hashable(raw) {
		return false
	}
	return enumerant(declared, reflect.TypeOf(raw)) == raw
}

func enumValueName(raw any) string {
	if s, ok := raw.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(raw)
}
