package introspect

import (
	"fmt"
	"reflect"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/meta"
)

var errorType = reflect.TypeFor[error]()

// conventionMethods are never exposed as members.
var conventionMethods = map[string]bool{
	"String":        true,
	"GoString":      true,
	"Error":         true,
	"Format":        true,
	"MarshalJSON":   true,
	"UnmarshalJSON": true,
	"MarshalText":   true,
	"UnmarshalText": true,
}

// reflectIntrospector reads struct tags, blank marker fields and a Registry.
type reflectIntrospector struct {
	registry *Registry
}

// New returns the reflection based Introspector. registry may be nil.
func New(registry *Registry) Introspector {
	return &reflectIntrospector{registry: registry}
}

// TypeAttributes implements Introspector.
func (r *reflectIntrospector) TypeAttributes(t reflect.Type) (Attributes, error) {
	t = Indirect(t)
	var ret Attributes
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Name != "_" {
				continue
			}
			attrs, err := parseTypeTag(field.Tag)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t, err)
			}
			ret = append(ret, attrs...)
		}
	}
	return append(ret, r.registry.typeAttributes(t)...), nil
}

// Members implements Introspector.
func (r *reflectIntrospector) Members(t reflect.Type) ([]Member, error) {
	t = Indirect(t)
	var ret []Member
	if t.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(t) {
			if !field.IsExported() || field.Anonymous {
				continue
			}
			tag, err := parseFieldTag(field.Tag)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t, field.Name, err)
			}
			if tag.Skip {
				continue
			}
			attrs := append(tag.Attrs, r.registry.memberAttributes(t, field.Name)...)
			ret = append(ret, Member{
				GoName:     field.Name,
				Name:       memberName(field.Name, tag.Name, Property, false, attrs),
				Kind:       Property,
				Type:       field.Type,
				Index:      field.Index,
				Attributes: attrs,
				Declaring:  declaringType(t, field.Index),
			})
		}
	}
	ret = append(ret, r.methods(t)...)
	return ret, nil
}

func (r *reflectIntrospector) methods(t reflect.Type) []Member {
	var ret []Member
	set := t
	if t.Kind() != reflect.Interface {
		set = reflect.PointerTo(t)
	}
	offset := 1
	if t.Kind() == reflect.Interface {
		offset = 0
	}
	for i := 0; i < set.NumMethod(); i++ {
		method := set.Method(i)
		if !method.IsExported() || conventionMethods[method.Name] {
			continue
		}
		ft := method.Type
		numIn := ft.NumIn() - offset
		m := Member{
			GoName:    method.Name,
			Kind:      Method,
			Func:      method,
			Declaring: t,
		}
		switch {
		case ft.NumOut() == 0 && numIn == 1 && isSetterName(method.Name):
			m.Setter = true
			m.Type = ft.In(offset)
		case ft.NumOut() == 1 && ft.Out(0) != errorType:
			m.Type = ft.Out(0)
		case ft.NumOut() == 2 && ft.Out(1) == errorType:
			m.Type = ft.Out(0)
			m.ReturnsError = true
		default:
			continue
		}
		m.Attributes = r.registry.memberAttributes(t, method.Name)
		m.Name = memberName(method.Name, "", Method, m.Setter, m.Attributes)
		ret = append(ret, m)
	}
	return ret
}

// Params implements Introspector.
func (r *reflectIntrospector) Params(t reflect.Type, m Member) []Param {
	if m.Kind != Method {
		return nil
	}
	t = Indirect(t)
	ft := m.Func.Type
	offset := 1
	if t.Kind() == reflect.Interface {
		offset = 0
	}
	var names []string
	if params, ok := Lookup[meta.Params](m.Attributes); ok {
		names = params.Names
	}
	ret := make([]Param, 0, ft.NumIn()-offset)
	for i := offset; i < ft.NumIn(); i++ {
		index := i - offset
		attrs := r.registry.paramAttributes(t, m.GoName, index)
		name := fmt.Sprintf("arg%d", index)
		if index < len(names) && names[index] != "" {
			name = names[index]
		}
		if arg, ok := Lookup[meta.Arg](attrs); ok && arg.Name != "" {
			name = arg.Name
		}
		ret = append(ret, Param{Index: index, Name: name, Type: ft.In(i), Attributes: attrs})
	}
	return ret
}

// Bindings implements Introspector.
func (r *reflectIntrospector) Bindings(t reflect.Type) map[string]reflect.Type {
	attrs, _ := r.TypeAttributes(t)
	ret := map[string]reflect.Type{}
	for _, bind := range All[meta.Bind](attrs) {
		for name, bound := range bind.Vars {
			if _, ok := ret[name]; !ok {
				ret[name] = bound
			}
		}
	}
	return ret
}

func memberName(goName, tagName string, kind MemberKind, setter bool, attrs Attributes) string {
	if field, ok := Lookup[meta.Field](attrs); ok && field.Name != "" {
		return field.Name
	}
	if tagName != "" {
		return tagName
	}
	if kind == Method {
		if setter {
			return LowerCamel(trimAccessor(goName, "Set"))
		}
		return LowerCamel(trimAccessor(goName, "Get"))
	}
	return LowerCamel(goName)
}

// declaringType walks an embedding index path to the struct that declares the
// field.
func declaringType(t reflect.Type, index []int) reflect.Type {
	for _, i := range index[:len(index)-1] {
		t = Indirect(t.Field(i).Type)
	}
	return t
}
