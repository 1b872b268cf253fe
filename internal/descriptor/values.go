package descriptor

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/instance"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/introspect"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/language"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/violation"
)

// DefaultDeprecationReason is used when Deprecated carries no reason.
const DefaultDeprecationReason = "No longer supported"

var literalJSON = jsoniter.Config{UseNumber: true}.Froze()

// Literal converts a Go value into a schema literal. Enumerants become enum
// values and structs become objects keyed by their schema field names.
func (b *Builder) Literal(v any) (*language.Value, error) {
	return b.literal().ValueOf(v)
}

func (b *Builder) literal() language.Literal {
	return language.Literal{
		Enum: func(v reflect.Value) (string, bool) {
			return b.types.EnumName(v.Type(), v)
		},
		Fields: b.structFields,
	}
}

// structFields reads the readable fields of a struct value keyed by schema
// name. Nil values are left out.
func (b *Builder) structFields(v reflect.Value) (map[string]any, error) {
	members, err := b.Members(v.Type(), Output)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]any, len(members))
	for _, m := range members {
		if m.Kind != introspect.Property {
			continue
		}
		field, err := v.FieldByIndexErr(m.Index)
		if err != nil || isNil(field) {
			continue
		}
		if _, ok := ret[m.Name]; !ok {
			ret[m.Name] = field.Interface()
		}
	}
	return ret, nil
}

// defaultValue reads a Default attribute: a JSON literal, or a value produced
// by an instantiated DefaultValuer. Strings default to enum values for enum
// typed fields; bare words that are not JSON are taken as strings.
func (b *Builder) defaultValue(attrs introspect.Attributes, kind language.DefinitionKind) (*language.Value, error) {
	d, ok := introspect.Lookup[meta.Default](attrs)
	if !ok {
		return nil, nil
	}
	var value any
	if d.Provider != nil {
		valuer, err := instance.As[meta.DefaultValuer](b.opts.Instantiator, d.Provider)
		if err != nil {
			return nil, violation.UnsupportedValue(d.Provider, "default", err)
		}
		value = valuer.DefaultValue()
	} else if err := literalJSON.UnmarshalFromString(d.Value, &value); err != nil {
		value = d.Value
	}
	lit, err := b.Literal(value)
	if err != nil {
		return nil, violation.UnsupportedValue(nil, "default", err)
	}
	if kind == language.Enum {
		enumify(lit)
	}
	return lit, nil
}

func enumify(v *language.Value) {
	switch v.Kind {
	case language.StringValue:
		v.Kind = language.EnumValue
	case language.ListValue:
		for _, c := range v.Children {
			enumify(c.Value)
		}
	}
}

// Directives materializes the directive instances attrs carries: one per
// Apply, plus @deprecated for Deprecated.
func (b *Builder) Directives(attrs introspect.Attributes) (language.DirectiveList, error) {
	var ret language.DirectiveList
	for _, apply := range introspect.All[meta.Apply](attrs) {
		d, err := b.directive(apply.Value)
		if err != nil {
			return nil, err
		}
		ret = append(ret, d)
	}
	if d, ok := introspect.Lookup[meta.Deprecated](attrs); ok {
		ret = append(ret, Deprecation(d.Reason))
	}
	return ret, nil
}

func (b *Builder) directive(v any) (*language.Directive, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, violation.Invalid(reflect.TypeOf(v), "directive instance must be a struct value")
	}
	name, kind, err := b.types.Named(rv.Type())
	if err != nil {
		return nil, err
	}
	if kind != language.DirectiveKind {
		return nil, violation.Invalid(rv.Type(), "applied value is a %s, not a directive", kind)
	}
	members, err := b.Members(rv.Type(), Output)
	if err != nil {
		return nil, err
	}
	d := &language.Directive{Name: name}
	for _, m := range members {
		if m.Kind != introspect.Property {
			continue
		}
		field, err := rv.FieldByIndexErr(m.Index)
		if err != nil || isNil(field) {
			continue
		}
		lit, err := b.Literal(field.Interface())
		if err != nil {
			return nil, violation.At(violation.UnsupportedValue(rv.Type(), "directive argument", err), m.Name)
		}
		d.Arguments = append(d.Arguments, &language.Argument{Name: m.Name, Value: lit})
	}
	return d, nil
}

// Deprecation returns a @deprecated directive instance.
func Deprecation(reason string) *language.Directive {
	if reason == "" {
		reason = DefaultDeprecationReason
	}
	return &language.Directive{
		Name: "deprecated",
		Arguments: language.ArgumentList{{
			Name:  "reason",
			Value: &language.Value{Kind: language.StringValue, Raw: reason},
		}},
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
